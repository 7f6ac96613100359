package model

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"library-api/internal/shared/query"
)

// filterRules is the static table of recognized book list parameters: each
// entry binds a query parameter to a column, lookup and value kind. Anything
// not listed here (other than search, handled below) is ignored.
var filterRules = []query.Rule{
	{Param: "title", Column: "bk.title", Lookup: query.IContains, Kind: query.Text},
	{Param: "title_exact", Column: "bk.title", Lookup: query.Exact, Kind: query.Text},
	{Param: "title_startswith", Column: "bk.title", Lookup: query.IStartsWith, Kind: query.Text},
	{Param: "author__name", Column: "a.name", Lookup: query.IContains, Kind: query.Text},
	{Param: "author__name_exact", Column: "a.name", Lookup: query.Exact, Kind: query.Text},
	{Param: "author", Column: "bk.author_id", Lookup: query.Exact, Kind: query.Int},
	{Param: "publication_year", Column: "bk.publication_year", Lookup: query.Exact, Kind: query.Int},
	{Param: "publication_year__gte", Column: "bk.publication_year", Lookup: query.GTE, Kind: query.Int},
	{Param: "publication_year__lte", Column: "bk.publication_year", Lookup: query.LTE, Kind: query.Int},
	{Param: "publication_year__gt", Column: "bk.publication_year", Lookup: query.GT, Kind: query.Int},
	{Param: "publication_year__lt", Column: "bk.publication_year", Lookup: query.LT, Kind: query.Int},
	{Param: "publication_year_range_min", Column: "bk.publication_year", Lookup: query.GTE, Kind: query.Int},
	{Param: "publication_year_range_max", Column: "bk.publication_year", Lookup: query.LTE, Kind: query.Int},
	{Param: "id", Column: "bk.id", Lookup: query.Exact, Kind: query.Int},
	{Param: "id__in", Column: "bk.id", Lookup: query.In, Kind: query.IntList},
}

var ordering = query.Ordering{
	Whitelist: map[string]string{
		"title":            "bk.title",
		"publication_year": "bk.publication_year",
		"author__name":     "a.name",
		"id":               "bk.id",
		"author":           "bk.author_id",
	},
	Default:  "title",
	TieBreak: "bk.id",
}

// ListQuery is the parsed book list request.
type ListQuery struct {
	Conditions []query.Condition
	// Search is the raw cross-field search term; it becomes an OR-group over
	// title and author name, AND-composed with every other condition.
	Search     string
	OrderBy    string
	Pagination query.Pagination
}

// ParseListQuery builds a ListQuery from the request. Malformed numeric
// parameters surface as query.FieldErrors; unrecognized parameters are
// ignored.
func ParseListQuery(r *http.Request) (ListQuery, error) {
	values := r.URL.Query()

	conds, err := query.Parse(values, filterRules)
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Conditions: conds,
		Search:     strings.TrimSpace(values.Get("search")),
		OrderBy:    ordering.Resolve(values.Get("ordering")),
		Pagination: query.ParsePagination(values),
	}, nil
}

// WhereClause renders the parsed conditions (and the search OR-group, when
// present) into an AND-joined SQL fragment with positional arguments starting
// at $1, and reports the next free argument index.
func (q ListQuery) WhereClause() (string, []interface{}, int) {
	b := query.NewBuilder(1)
	b.AddAll(q.Conditions)
	if q.Search != "" {
		b.AddOr(
			query.Condition{Column: "bk.title", Lookup: query.IContains, Text: q.Search},
			query.Condition{Column: "a.name", Lookup: query.IContains, Text: q.Search},
		)
	}
	clause, args := b.Clause()
	return clause, args, b.NextArg()
}

// SearchQuery is the parsed /search/ request: a free-text term plus optional
// structured narrowing.
type SearchQuery struct {
	Q        string
	YearMin  *int64
	YearMax  *int64
	AuthorID *int64
	Limit    int
}

const defaultSearchLimit = 20

// ParseSearchQuery reads q, year_min, year_max, author_id and limit.
// Numeric parameters that fail to parse are validation errors.
func ParseSearchQuery(values url.Values) (SearchQuery, error) {
	errs := query.FieldErrors{}
	q := SearchQuery{
		Q:     strings.TrimSpace(values.Get("q")),
		Limit: defaultSearchLimit,
	}

	q.YearMin = parseOptionalInt(values, "year_min", errs)
	q.YearMax = parseOptionalInt(values, "year_max", errs)
	q.AuthorID = parseOptionalInt(values, "author_id", errs)

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 {
			errs.Add("limit", "Enter a positive number.")
		} else {
			q.Limit = n
			if q.Limit > query.MaxPageSize {
				q.Limit = query.MaxPageSize
			}
		}
	}

	if len(errs) > 0 {
		return SearchQuery{}, errs
	}
	return q, nil
}

func parseOptionalInt(values url.Values, param string, errs query.FieldErrors) *int64 {
	raw := values.Get(param)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		errs.Add(param, "Enter a number.")
		return nil
	}
	return &n
}
