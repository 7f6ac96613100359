package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = []Rule{
	{Param: "title", Column: "bk.title", Lookup: IContains, Kind: Text},
	{Param: "title_exact", Column: "bk.title", Lookup: Exact, Kind: Text},
	{Param: "year__gte", Column: "bk.publication_year", Lookup: GTE, Kind: Int},
	{Param: "year__lt", Column: "bk.publication_year", Lookup: LT, Kind: Int},
	{Param: "author", Column: "bk.author_id", Lookup: Exact, Kind: Int},
	{Param: "id__in", Column: "bk.id", Lookup: In, Kind: IntList},
}

func TestParse(t *testing.T) {
	t.Run("absent parameters produce no conditions", func(t *testing.T) {
		conds, err := Parse(url.Values{}, testRules)
		require.NoError(t, err)
		assert.Empty(t, conds)
	})

	t.Run("unrecognized parameters are ignored", func(t *testing.T) {
		values := url.Values{"nonsense": {"x"}, "format": {"json"}}
		conds, err := Parse(values, testRules)
		require.NoError(t, err)
		assert.Empty(t, conds)
	})

	t.Run("text and int conditions are typed", func(t *testing.T) {
		values := url.Values{"title": {"Harry"}, "year__gte": {"1997"}}
		conds, err := Parse(values, testRules)
		require.NoError(t, err)
		require.Len(t, conds, 2)

		assert.Equal(t, "bk.title", conds[0].Column)
		assert.Equal(t, IContains, conds[0].Lookup)
		assert.Equal(t, "Harry", conds[0].Text)

		assert.Equal(t, "bk.publication_year", conds[1].Column)
		assert.Equal(t, GTE, conds[1].Lookup)
		assert.Equal(t, int64(1997), conds[1].Int)
	})

	t.Run("malformed int surfaces as a field error", func(t *testing.T) {
		values := url.Values{"year__gte": {"abc"}}
		_, err := Parse(values, testRules)
		require.Error(t, err)

		fieldErrs, ok := err.(FieldErrors)
		require.True(t, ok)
		assert.Equal(t, []string{"Enter a number."}, fieldErrs["year__gte"])
	})

	t.Run("multiple malformed ints are all reported", func(t *testing.T) {
		values := url.Values{"year__gte": {"abc"}, "author": {"xyz"}}
		_, err := Parse(values, testRules)
		require.Error(t, err)

		fieldErrs := err.(FieldErrors)
		assert.Len(t, fieldErrs, 2)
		assert.Contains(t, fieldErrs, "year__gte")
		assert.Contains(t, fieldErrs, "author")
	})

	t.Run("int list drops invalid entries", func(t *testing.T) {
		values := url.Values{"id__in": {"1,abc,3"}}
		conds, err := Parse(values, testRules)
		require.NoError(t, err)
		require.Len(t, conds, 1)
		assert.Equal(t, []int64{1, 3}, conds[0].Ints)
	})

	t.Run("all-invalid int list still yields a condition", func(t *testing.T) {
		values := url.Values{"id__in": {"abc,def"}}
		conds, err := Parse(values, testRules)
		require.NoError(t, err)
		require.Len(t, conds, 1)
		assert.Empty(t, conds[0].Ints)
	})

	t.Run("present-but-empty int list still yields a condition", func(t *testing.T) {
		values, err := url.ParseQuery("id__in=")
		require.NoError(t, err)

		conds, err := Parse(values, testRules)
		require.NoError(t, err)
		require.Len(t, conds, 1)
		assert.Equal(t, In, conds[0].Lookup)
		assert.Empty(t, conds[0].Ints)
	})

	t.Run("empty non-list parameters are still treated as absent", func(t *testing.T) {
		values, err := url.ParseQuery("title=&year__gte=")
		require.NoError(t, err)

		conds, err := Parse(values, testRules)
		require.NoError(t, err)
		assert.Empty(t, conds)
	})
}

func TestBuilderClause(t *testing.T) {
	tests := []struct {
		name       string
		cond       Condition
		wantClause string
		wantArgs   []interface{}
	}{
		{
			name:       "exact text",
			cond:       Condition{Column: "bk.title", Lookup: Exact, Text: "1984"},
			wantClause: "bk.title = $1",
			wantArgs:   []interface{}{"1984"},
		},
		{
			name:       "icontains wraps with wildcards",
			cond:       Condition{Column: "bk.title", Lookup: IContains, Text: "Harry"},
			wantClause: "bk.title ILIKE $1",
			wantArgs:   []interface{}{"%Harry%"},
		},
		{
			name:       "istartswith appends wildcard",
			cond:       Condition{Column: "a.name", Lookup: IStartsWith, Text: "J"},
			wantClause: "a.name ILIKE $1",
			wantArgs:   []interface{}{"J%"},
		},
		{
			name:       "gt",
			cond:       Condition{Column: "bk.publication_year", Lookup: GT, Int: 1997},
			wantClause: "bk.publication_year > $1",
			wantArgs:   []interface{}{int64(1997)},
		},
		{
			name:       "lte",
			cond:       Condition{Column: "bk.publication_year", Lookup: LTE, Int: 2000},
			wantClause: "bk.publication_year <= $1",
			wantArgs:   []interface{}{int64(2000)},
		},
		{
			name:       "in renders as ANY",
			cond:       Condition{Column: "bk.id", Lookup: In, Ints: []int64{1, 2, 3}},
			wantClause: "bk.id = ANY($1)",
			wantArgs:   []interface{}{[]int64{1, 2, 3}},
		},
		{
			name:       "empty in matches nothing",
			cond:       Condition{Column: "bk.id", Lookup: In, Ints: []int64{}},
			wantClause: "FALSE",
			wantArgs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(1)
			b.Add(tt.cond)
			clause, args := b.Clause()
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuilderComposition(t *testing.T) {
	t.Run("empty builder yields TRUE", func(t *testing.T) {
		b := NewBuilder(1)
		clause, args := b.Clause()
		assert.Equal(t, "TRUE", clause)
		assert.Nil(t, args)
	})

	t.Run("conditions are AND-joined with sequential args", func(t *testing.T) {
		b := NewBuilder(1)
		b.AddAll([]Condition{
			{Column: "bk.title", Lookup: IContains, Text: "Harry"},
			{Column: "bk.publication_year", Lookup: GTE, Int: 1997},
		})
		clause, args := b.Clause()
		assert.Equal(t, "bk.title ILIKE $1 AND bk.publication_year >= $2", clause)
		assert.Equal(t, []interface{}{"%Harry%", int64(1997)}, args)
		assert.Equal(t, 3, b.NextArg())
	})

	t.Run("or group is parenthesized and AND-joined", func(t *testing.T) {
		b := NewBuilder(1)
		b.Add(Condition{Column: "bk.publication_year", Lookup: GTE, Int: 1900})
		b.AddOr(
			Condition{Column: "bk.title", Lookup: IContains, Text: "potter"},
			Condition{Column: "a.name", Lookup: IContains, Text: "potter"},
		)
		clause, args := b.Clause()
		assert.Equal(t,
			"bk.publication_year >= $1 AND (bk.title ILIKE $2 OR a.name ILIKE $3)",
			clause)
		assert.Equal(t, []interface{}{int64(1900), "%potter%", "%potter%"}, args)
	})

	t.Run("start position offsets every placeholder", func(t *testing.T) {
		b := NewBuilder(3)
		b.Add(Condition{Column: "bk.title", Lookup: Exact, Text: "Emma"})
		clause, _ := b.Clause()
		assert.Equal(t, "bk.title = $3", clause)
		assert.Equal(t, 4, b.NextArg())
	})

	t.Run("empty in does not consume an arg position", func(t *testing.T) {
		b := NewBuilder(1)
		b.Add(Condition{Column: "bk.id", Lookup: In})
		b.Add(Condition{Column: "bk.title", Lookup: Exact, Text: "Emma"})
		clause, args := b.Clause()
		assert.Equal(t, "FALSE AND bk.title = $1", clause)
		assert.Equal(t, []interface{}{"Emma"}, args)
	})
}
