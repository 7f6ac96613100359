package repository

import (
	"context"

	"library-api/internal/domains/author/model"
)

// RepositoryInterface is the author data-access contract.
type RepositoryInterface interface {
	List(ctx context.Context, q model.ListQuery) ([]model.AuthorRow, int64, error)
	GetByID(ctx context.Context, id int64) (*model.AuthorDetail, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Analytics(ctx context.Context, q model.AnalyticsQuery) ([]model.AuthorAnalytics, error)
}
