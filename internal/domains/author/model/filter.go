package model

import (
	"net/http"
	"strconv"
	"strings"

	"library-api/internal/shared/query"
)

// booksCountExpr is the per-author book count, recomputed inside every query
// that filters or sorts on it.
const booksCountExpr = "(SELECT COUNT(*) FROM books b WHERE b.author_id = a.id)"

// latestBookExpr is the publication year of the author's newest book.
const latestBookExpr = "(SELECT MAX(b.publication_year) FROM books b WHERE b.author_id = a.id)"

// filterRules is the static table of recognized author list parameters.
// Anything not listed here is ignored.
var filterRules = []query.Rule{
	{Param: "name", Column: "a.name", Lookup: query.IContains, Kind: query.Text},
	{Param: "name_exact", Column: "a.name", Lookup: query.Exact, Kind: query.Text},
	{Param: "name_startswith", Column: "a.name", Lookup: query.IStartsWith, Kind: query.Text},
	{Param: "search", Column: "a.name", Lookup: query.IContains, Kind: query.Text},
	{Param: "books_count", Column: booksCountExpr, Lookup: query.Exact, Kind: query.Int},
	{Param: "books_count__gte", Column: booksCountExpr, Lookup: query.GTE, Kind: query.Int},
	{Param: "books_count__lte", Column: booksCountExpr, Lookup: query.LTE, Kind: query.Int},
}

// ordering whitelists the sortable keys; books_count and latest_book resolve
// to the select-list aliases of the aggregate expressions.
var ordering = query.Ordering{
	Whitelist: map[string]string{
		"name":        "a.name",
		"books_count": "books_count",
		"latest_book": "latest_book",
	},
	Default:  "name",
	TieBreak: "a.id",
}

// ListQuery is the parsed author list request.
type ListQuery struct {
	Conditions []query.Condition
	OrderBy    string
	Pagination query.Pagination
}

// ParseListQuery builds a ListQuery from the request. Malformed numeric
// parameters surface as query.FieldErrors.
func ParseListQuery(r *http.Request) (ListQuery, error) {
	values := r.URL.Query()

	conds, err := query.Parse(values, filterRules)
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Conditions: conds,
		OrderBy:    ordering.Resolve(values.Get("ordering")),
		Pagination: query.ParsePagination(values),
	}, nil
}

// WhereClause renders the parsed conditions into an AND-joined SQL fragment
// with positional arguments starting at $1, and reports the next free
// argument index.
func (q ListQuery) WhereClause() (string, []interface{}, int) {
	b := query.NewBuilder(1)
	b.AddAll(q.Conditions)
	clause, args := b.Clause()
	return clause, args, b.NextArg()
}

// Analytics sort keys.
const (
	SortByName       = "name"
	SortByBookCount  = "book_count"
	SortByLatestBook = "latest_book"
)

// AnalyticsQuery is the parsed /authors/analytics/ request.
type AnalyticsQuery struct {
	MinBooks int64
	SortBy   string
}

// ParseAnalyticsQuery reads min_books (default 0) and sort_by (default name).
// An unknown sort_by key and a malformed min_books are both validation errors:
// this endpoint, unlike generic list ordering, names its parameters explicitly.
func ParseAnalyticsQuery(r *http.Request) (AnalyticsQuery, error) {
	values := r.URL.Query()
	errs := query.FieldErrors{}

	q := AnalyticsQuery{SortBy: SortByName}

	if raw := values.Get("min_books"); raw != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || n < 0 {
			errs.Add("min_books", "Enter a non-negative number.")
		} else {
			q.MinBooks = n
		}
	}

	if raw := values.Get("sort_by"); raw != "" {
		switch raw {
		case SortByName, SortByBookCount, SortByLatestBook:
			q.SortBy = raw
		default:
			errs.Add("sort_by", "Must be one of: name, book_count, latest_book.")
		}
	}

	if len(errs) > 0 {
		return AnalyticsQuery{}, errs
	}
	return q, nil
}
