package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/service"
	"library-api/internal/shared/query"
	"library-api/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(service service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// ListAuthors - GET /authors/
// Supports name filters, books_count aggregate filters, ordering, pagination.
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	q, err := model.ParseListQuery(c.Request)
	if err != nil {
		if response.FromValidation(c, err) {
			return
		}
		response.ServerError(c, err)
		return
	}

	authors, total, err := h.service.ListAuthors(c.Request.Context(), q)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.OK(c, query.NewPage(c.Request, q.Pagination, total, authors))
}

// GetAuthor - GET /authors/:id/
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return
	}

	detail, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c, err)
		return
	}

	response.OK(c, detail)
}

// Analytics - GET /authors/analytics/
// Query params: min_books, sort_by in {name, book_count, latest_book}.
func (h *AuthorHandler) Analytics(c *gin.Context) {
	q, err := model.ParseAnalyticsQuery(c.Request)
	if err != nil {
		if response.FromValidation(c, err) {
			return
		}
		response.ServerError(c, err)
		return
	}

	results, err := h.service.Analytics(c.Request.Context(), q)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.OK(c, gin.H{
		"count":   len(results),
		"results": results,
	})
}
