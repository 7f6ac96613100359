package repository

import (
	"context"

	"library-api/internal/domains/user/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
