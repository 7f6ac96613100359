package repository

import (
	"context"

	"library-api/internal/domains/stats/model"
)

type RepositoryInterface interface {
	Collect(ctx context.Context) (*model.Stats, error)
}
