package model

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/query"
)

func TestParseListQuery(t *testing.T) {
	t.Run("name filter with ordering", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/?name=austen&ordering=-books_count", nil)

		q, err := ParseListQuery(r)
		require.NoError(t, err)

		clause, args, nextArg := q.WhereClause()
		assert.Equal(t, "a.name ILIKE $1", clause)
		assert.Equal(t, []interface{}{"%austen%"}, args)
		assert.Equal(t, 2, nextArg)
		assert.Equal(t, "books_count DESC, a.id ASC", q.OrderBy)
	})

	t.Run("aggregate filter renders the count subquery", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/?books_count__gte=2", nil)

		q, err := ParseListQuery(r)
		require.NoError(t, err)

		clause, args, _ := q.WhereClause()
		assert.Equal(t,
			"(SELECT COUNT(*) FROM books b WHERE b.author_id = a.id) >= $1",
			clause)
		assert.Equal(t, []interface{}{int64(2)}, args)
	})

	t.Run("search filters on name", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/?search=Rowling", nil)

		q, err := ParseListQuery(r)
		require.NoError(t, err)

		clause, args, _ := q.WhereClause()
		assert.Equal(t, "a.name ILIKE $1", clause)
		assert.Equal(t, []interface{}{"%Rowling%"}, args)
	})

	t.Run("malformed books_count is a field error", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/?books_count=many", nil)

		_, err := ParseListQuery(r)
		require.Error(t, err)

		errs, ok := err.(query.FieldErrors)
		require.True(t, ok)
		assert.Contains(t, errs, "books_count")
	})

	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/", nil)

		q, err := ParseListQuery(r)
		require.NoError(t, err)

		clause, _, _ := q.WhereClause()
		assert.Equal(t, "TRUE", clause)
		assert.Equal(t, "a.name ASC, a.id ASC", q.OrderBy)
	})
}

func TestParseAnalyticsQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/analytics/", nil)

		q, err := ParseAnalyticsQuery(r)
		require.NoError(t, err)
		assert.Equal(t, int64(0), q.MinBooks)
		assert.Equal(t, SortByName, q.SortBy)
	})

	t.Run("explicit parameters", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/analytics/?min_books=2&sort_by=latest_book", nil)

		q, err := ParseAnalyticsQuery(r)
		require.NoError(t, err)
		assert.Equal(t, int64(2), q.MinBooks)
		assert.Equal(t, SortByLatestBook, q.SortBy)
	})

	t.Run("negative min_books is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/analytics/?min_books=-1", nil)

		_, err := ParseAnalyticsQuery(r)
		require.Error(t, err)

		errs := err.(query.FieldErrors)
		assert.Equal(t, []string{"Enter a non-negative number."}, errs["min_books"])
	})

	t.Run("unknown sort_by is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/authors/analytics/?sort_by=height", nil)

		_, err := ParseAnalyticsQuery(r)
		require.Error(t, err)

		errs := err.(query.FieldErrors)
		assert.Equal(t, []string{"Must be one of: name, book_count, latest_book."}, errs["sort_by"])
	})
}
