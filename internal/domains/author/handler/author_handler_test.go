package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/author/model"
)

type stubService struct {
	rows      []model.AuthorRow
	total     int64
	detail    *model.AuthorDetail
	analytics []model.AuthorAnalytics
	err       error
}

func (s *stubService) ListAuthors(_ context.Context, _ model.ListQuery) ([]model.AuthorRow, int64, error) {
	return s.rows, s.total, s.err
}

func (s *stubService) GetAuthor(_ context.Context, _ int64) (*model.AuthorDetail, error) {
	return s.detail, s.err
}

func (s *stubService) Analytics(_ context.Context, _ model.AnalyticsQuery) ([]model.AuthorAnalytics, error) {
	return s.analytics, s.err
}

func newAuthorRouter(s *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(s)

	router := gin.New()
	router.GET("/api/authors/", h.ListAuthors)
	router.GET("/api/authors/analytics/", h.Analytics)
	router.GET("/api/authors/:id/", h.GetAuthor)
	return router
}

func TestListAuthors(t *testing.T) {
	t.Run("rows carry aggregates", func(t *testing.T) {
		year := 1998
		s := &stubService{
			rows: []model.AuthorRow{
				{ID: 2, Name: "J.K. Rowling", BooksCount: 2, LatestBook: &year},
				{ID: 5, Name: "Jane Austen", BooksCount: 2},
			},
			total: 2,
		}
		router := newAuthorRouter(s)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "http://example.com/api/authors/", nil)
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Count   int64             `json:"count"`
			Results []model.AuthorRow `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(2), body.Count)
		require.Len(t, body.Results, 2)
		require.NotNil(t, body.Results[0].LatestBook)
		assert.Equal(t, 1998, *body.Results[0].LatestBook)
		assert.Nil(t, body.Results[1].LatestBook)
	})

	t.Run("malformed aggregate filter", func(t *testing.T) {
		router := newAuthorRouter(&stubService{})

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/authors/?books_count__gte=lots", nil)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"books_count__gte":["Enter a number."]}`, w.Body.String())
	})
}

func TestGetAuthor(t *testing.T) {
	t.Run("detail embeds books", func(t *testing.T) {
		s := &stubService{detail: &model.AuthorDetail{
			ID:   2,
			Name: "J.K. Rowling",
			Books: []model.AuthorBook{
				{ID: 3, Title: "Harry Potter and the Philosopher's Stone", PublicationYear: 1997},
			},
		}}
		router := newAuthorRouter(s)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/authors/2/", nil)
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var detail model.AuthorDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		require.Len(t, detail.Books, 1)
		assert.Equal(t, 1997, detail.Books[0].PublicationYear)
	})

	t.Run("unknown author", func(t *testing.T) {
		s := &stubService{err: model.ErrAuthorNotFound}
		router := newAuthorRouter(s)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/authors/999/", nil)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())
	})
}

func TestAnalytics(t *testing.T) {
	t.Run("returns count and results", func(t *testing.T) {
		year := 1949
		s := &stubService{analytics: []model.AuthorAnalytics{
			{ID: 1, Name: "George Orwell", BookCount: 2, LatestBook: &year},
		}}
		router := newAuthorRouter(s)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/authors/analytics/?min_books=2", nil)
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Count   int                     `json:"count"`
			Results []model.AuthorAnalytics `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, int64(2), body.Results[0].BookCount)
	})

	t.Run("invalid sort key", func(t *testing.T) {
		router := newAuthorRouter(&stubService{})

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/authors/analytics/?sort_by=age", nil)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"sort_by":["Must be one of: name, book_count, latest_book."]}`, w.Body.String())
	})
}
