package model

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/query"
)

// Book is the domain entity backed by the books table. AuthorName is joined
// data, populated on reads.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        int64     `json:"author"`
	AuthorName      string    `json:"author_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookRequest is the write payload for create and full (PUT) update.
// The author field carries the author id, matching the read shape.
type BookRequest struct {
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Author          int64  `json:"author"`
}

// Validate enforces the field-level constraints. publication_year must be a
// plausible 4-digit year no later than the current calendar year.
func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("This field is required."),
			validation.Length(1, 500),
		),
		validation.Field(&r.PublicationYear,
			validation.Required.Error("This field is required."),
			validation.Min(1000).Error("Publication year must be a 4-digit year."),
			validation.Max(time.Now().Year()).Error("Publication year cannot be in the future."),
		),
		validation.Field(&r.Author,
			validation.Required.Error("This field is required."),
		),
	)
}

// UpdateBookRequest is the partial (PATCH) update payload. Pointer fields
// distinguish "not provided" from zero values.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Author          *int64  `json:"author"`
}

// Validate checks only the fields that were provided.
func (r UpdateBookRequest) Validate() error {
	errs := query.FieldErrors{}

	if r.Title != nil && *r.Title == "" {
		errs.Add("title", "This field may not be blank.")
	}
	if r.PublicationYear != nil {
		year := *r.PublicationYear
		if year < 1000 {
			errs.Add("publication_year", "Publication year must be a 4-digit year.")
		} else if year > time.Now().Year() {
			errs.Add("publication_year", "Publication year cannot be in the future.")
		}
	}
	if r.Author != nil && *r.Author <= 0 {
		errs.Add("author", "Enter a valid author id.")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the provided fields onto an existing book.
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
	if r.Author != nil {
		b.AuthorID = *r.Author
	}
}

const detailCacheKeyPrefix = "book:detail:"

// DetailCacheKey is the cache key for a single book read.
func DetailCacheKey(id int64) string {
	return detailCacheKeyPrefix + strconv.FormatInt(id, 10)
}
