package repository

import (
	"context"

	"library-api/internal/domains/book/model"
)

// RepositoryInterface is the book data-access contract.
type RepositoryInterface interface {
	List(ctx context.Context, q model.ListQuery) ([]model.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q model.SearchQuery) ([]model.Book, error)
}
