// Package service exposes the read-only stats use case.
package service

import (
	"context"

	"library-api/internal/domains/stats/model"
	"library-api/internal/domains/stats/repository"
)

type ServiceInterface interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

type statsService struct {
	repo repository.RepositoryInterface
}

func NewStatsService(repo repository.RepositoryInterface) ServiceInterface {
	return &statsService{repo: repo}
}

func (s *statsService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.repo.Collect(ctx)
}
