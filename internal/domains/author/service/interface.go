package service

import (
	"context"

	"library-api/internal/domains/author/model"
)

// ServiceInterface is the author business-logic contract the handler depends on.
type ServiceInterface interface {
	ListAuthors(ctx context.Context, q model.ListQuery) ([]model.AuthorRow, int64, error)
	GetAuthor(ctx context.Context, id int64) (*model.AuthorDetail, error)
	Analytics(ctx context.Context, q model.AnalyticsQuery) ([]model.AuthorAnalytics, error)
}
