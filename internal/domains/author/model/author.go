package model

import (
	"strconv"
	"time"
)

// Author is the domain entity backed by the authors table.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorRow is one row of the author list: the entity plus the aggregates the
// list endpoint can filter and sort on. Both aggregates are computed per query
// and never stored or cached: book counts change between requests.
type AuthorRow struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	BooksCount int64     `json:"books_count"`
	LatestBook *int      `json:"latest_book"` // publication year of the newest book, null when none
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AuthorBook is the nested representation of a book inside an author detail.
type AuthorBook struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
}

// AuthorDetail is the single-author read, with its books nested.
type AuthorDetail struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Books     []AuthorBook `json:"books"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// AuthorAnalytics is one row of the analytics endpoint.
//
// latest_book is defined as the maximum publication_year across the author's
// books (null when the author has none); when sorting by it, ties are broken
// by author id ascending.
type AuthorAnalytics struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BookCount  int64  `json:"book_count"`
	LatestBook *int   `json:"latest_book"`
}

const detailCacheKeyPrefix = "author:detail:"

// DetailCacheKey is the cache key for a single author read. The book
// repository invalidates it too, since author details embed books.
func DetailCacheKey(id int64) string {
	return detailCacheKeyPrefix + strconv.FormatInt(id, 10)
}
