package query

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is the parsed page-number pagination for list endpoints.
type Pagination struct {
	Page     int
	PageSize int
}

// ParsePagination reads page and page_size, falling back to defaults on
// missing or unusable values and capping page_size.
func ParsePagination(values url.Values) Pagination {
	p := Pagination{Page: 1, PageSize: DefaultPageSize}

	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = n
		}
	}
	if raw := values.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageSize = n
			if p.PageSize > MaxPageSize {
				p.PageSize = MaxPageSize
			}
		}
	}
	return p
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the paginated list envelope.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage wraps results in the pagination envelope, deriving next/previous
// links from the request URL with the page parameter rewritten.
func NewPage(r *http.Request, p Pagination, count int64, results interface{}) Page {
	page := Page{Count: count, Results: results}

	if int64(p.Page)*int64(p.PageSize) < count {
		page.Next = pageURL(r, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageURL(r, p.Page-1)
	}
	return page
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	link := u.String()
	if r.Host != "" && u.Host == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		link = scheme + "://" + r.Host + link
	}
	return &link
}
