// Package model holds the aggregate shapes returned by the stats endpoint.
package model

type YearCount struct {
	PublicationYear int   `json:"publication_year"`
	Count           int64 `json:"count"`
}

type TopAuthor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BookCount int64  `json:"book_count"`
}

type Stats struct {
	TotalBooks        int64       `json:"total_books"`
	TotalAuthors      int64       `json:"total_authors"`
	RecentBooksByYear []YearCount `json:"recent_books_by_year"`
	TopAuthors        []TopAuthor `json:"top_authors"`
}
