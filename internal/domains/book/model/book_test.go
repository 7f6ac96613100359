package model

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/query"
)

func TestBookRequestValidate(t *testing.T) {
	currentYear := time.Now().Year()

	t.Run("valid request passes", func(t *testing.T) {
		req := BookRequest{Title: "1984", PublicationYear: 1949, Author: 1}
		assert.NoError(t, req.Validate())
	})

	t.Run("current year is allowed", func(t *testing.T) {
		req := BookRequest{Title: "New Release", PublicationYear: currentYear, Author: 1}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		req := BookRequest{PublicationYear: 1949, Author: 1}
		err := req.Validate()
		require.Error(t, err)

		errs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, errs, "title")
		assert.Equal(t, "This field is required.", errs["title"].Error())
	})

	t.Run("future year is rejected", func(t *testing.T) {
		req := BookRequest{Title: "From Tomorrow", PublicationYear: currentYear + 1, Author: 1}
		err := req.Validate()
		require.Error(t, err)

		errs := err.(validation.Errors)
		require.Contains(t, errs, "publication_year")
		assert.Equal(t, "Publication year cannot be in the future.", errs["publication_year"].Error())
	})

	t.Run("three digit year is rejected", func(t *testing.T) {
		req := BookRequest{Title: "Beowulf", PublicationYear: 900, Author: 1}
		err := req.Validate()
		require.Error(t, err)

		errs := err.(validation.Errors)
		require.Contains(t, errs, "publication_year")
		assert.Equal(t, "Publication year must be a 4-digit year.", errs["publication_year"].Error())
	})

	t.Run("missing author", func(t *testing.T) {
		req := BookRequest{Title: "1984", PublicationYear: 1949}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.(validation.Errors), "author")
	})
}

func TestUpdateBookRequestValidate(t *testing.T) {
	currentYear := time.Now().Year()
	title := "Emma"
	blank := ""
	futureYear := currentYear + 1
	badAuthor := int64(0)

	t.Run("empty patch is valid", func(t *testing.T) {
		assert.NoError(t, UpdateBookRequest{}.Validate())
	})

	t.Run("provided fields are checked", func(t *testing.T) {
		req := UpdateBookRequest{Title: &blank, PublicationYear: &futureYear, Author: &badAuthor}
		err := req.Validate()
		require.Error(t, err)

		errs, ok := err.(query.FieldErrors)
		require.True(t, ok)
		assert.Equal(t, []string{"This field may not be blank."}, errs["title"])
		assert.Equal(t, []string{"Publication year cannot be in the future."}, errs["publication_year"])
		assert.Equal(t, []string{"Enter a valid author id."}, errs["author"])
	})

	t.Run("apply copies only provided fields", func(t *testing.T) {
		year := 1816
		b := Book{ID: 8, Title: "Emma?", PublicationYear: 1815, AuthorID: 5}

		UpdateBookRequest{Title: &title, PublicationYear: &year}.Apply(&b)

		assert.Equal(t, "Emma", b.Title)
		assert.Equal(t, 1816, b.PublicationYear)
		assert.Equal(t, int64(5), b.AuthorID)
	})
}
