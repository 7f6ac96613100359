package service

import (
	"context"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/repository"
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) ListAuthors(ctx context.Context, q model.ListQuery) ([]model.AuthorRow, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *authorService) GetAuthor(ctx context.Context, id int64) (*model.AuthorDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Analytics(ctx context.Context, q model.AnalyticsQuery) ([]model.AuthorAnalytics, error) {
	return s.repo.Analytics(ctx, q)
}
