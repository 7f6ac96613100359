package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/service"
	"library-api/internal/shared/query"
	"library-api/internal/shared/response"
)

const malformedBodyDetail = "Malformed request body."

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// ListBooks - GET /books/
// Supports title/author/year filters, search, ordering, pagination.
func (h *BookHandler) ListBooks(c *gin.Context) {
	q, err := model.ParseListQuery(c.Request)
	if err != nil {
		if response.FromValidation(c, err) {
			return
		}
		response.ServerError(c, err)
		return
	}

	books, total, err := h.service.ListBooks(c.Request.Context(), q)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.OK(c, query.NewPage(c.Request, q.Pagination, total, books))
}

// GetBook - GET /books/:id/
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, book)
}

// CreateBook - POST /books/create/
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, malformedBodyDetail)
		return
	}
	if err := req.Validate(); err != nil {
		response.FromValidation(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, "Book created successfully", book)
}

// UpdateBook - PUT/PATCH /books/update/:id/
// PUT replaces every field; PATCH applies only the fields present in the body.
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var (
		book *model.Book
		err  error
	)
	if c.Request.Method == http.MethodPatch {
		var req model.UpdateBookRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.BadRequest(c, malformedBodyDetail)
			return
		}
		if err = req.Validate(); err != nil {
			response.FromValidation(c, err)
			return
		}
		book, err = h.service.PatchBook(c.Request.Context(), id, req)
	} else {
		var req model.BookRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.BadRequest(c, malformedBodyDetail)
			return
		}
		if err = req.Validate(); err != nil {
			response.FromValidation(c, err)
			return
		}
		book, err = h.service.UpdateBook(c.Request.Context(), id, req)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Updated(c, "Book updated successfully", book)
}

// DeleteBook - DELETE /books/delete/:id/
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	title, err := h.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Deleted(c, fmt.Sprintf("Book %q deleted successfully", title))
}

// SearchBooks - GET /search/
// Query params: q, year_min, year_max, author_id, limit.
func (h *BookHandler) SearchBooks(c *gin.Context) {
	q, err := model.ParseSearchQuery(c.Request.URL.Query())
	if err != nil {
		if response.FromValidation(c, err) {
			return
		}
		response.ServerError(c, err)
		return
	}

	books, err := h.service.SearchBooks(c.Request.Context(), q)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.OK(c, gin.H{
		"count":   len(books),
		"results": books,
	})
}

// bookID parses the id path segment. A non-numeric id renders 404, matching
// the list/detail URL split.
func bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return 0, false
	}
	return id, true
}

// writeError maps the domain errors a book mutation can surface. An unknown
// author arrives as a field error on "author", mirroring body validation.
func (h *BookHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c)
	case errors.Is(err, model.ErrAuthorNotFound):
		response.ValidationFailed(c, query.FieldErrors{"author": {"Author not found."}})
	default:
		if response.FromValidation(c, err) {
			return
		}
		response.ServerError(c, err)
	}
}
