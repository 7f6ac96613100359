package service

import (
	"context"

	"library-api/internal/domains/user/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
}
