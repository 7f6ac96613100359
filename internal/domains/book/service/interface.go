package service

import (
	"context"

	"library-api/internal/domains/book/model"
)

// ServiceInterface is the book business-logic contract the handlers depend on.
type ServiceInterface interface {
	ListBooks(ctx context.Context, q model.ListQuery) ([]model.Book, int64, error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	CreateBook(ctx context.Context, req model.BookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id int64, req model.BookRequest) (*model.Book, error)
	PatchBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id int64) (string, error)
	SearchBooks(ctx context.Context, q model.SearchQuery) ([]model.Book, error)
}
