package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"library-api/internal/domains/user/model"
	"library-api/internal/domains/user/repository"
	"library-api/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	repo   repository.RepositoryInterface
	tokens *jwt.Manager
}

func NewUserService(repo repository.RepositoryInterface, tokens *jwt.Manager) ServiceInterface {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &model.User{Email: req.Email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	// Same error for a wrong password as for an unknown email.
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *model.User) (*model.AuthResponse, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		User:         *u,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
