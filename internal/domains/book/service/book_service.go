package service

import (
	"context"
	"fmt"

	authorrepo "library-api/internal/domains/author/repository"
	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
)

type bookService struct {
	repo    repository.RepositoryInterface
	authors authorrepo.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface, authors authorrepo.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo, authors: authors}
}

func (s *bookService) ListBooks(ctx context.Context, q model.ListQuery) ([]model.Book, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) CreateBook(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	if err := s.checkAuthor(ctx, req.Author); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.Author,
	}
	return s.repo.Create(ctx, book)
}

// UpdateBook is the full (PUT) update: every field is replaced.
func (s *bookService) UpdateBook(ctx context.Context, id int64, req model.BookRequest) (*model.Book, error) {
	if err := s.checkAuthor(ctx, req.Author); err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:              id,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.Author,
	}
	return s.repo.Update(ctx, book)
}

// PatchBook applies only the provided fields on top of the stored book.
func (s *bookService) PatchBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Author != nil {
		if err := s.checkAuthor(ctx, *req.Author); err != nil {
			return nil, err
		}
	}

	req.Apply(existing)
	return s.repo.Update(ctx, existing)
}

// DeleteBook removes the book and returns its title for the response message.
func (s *bookService) DeleteBook(ctx context.Context, id int64) (string, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return existing.Title, nil
}

func (s *bookService) SearchBooks(ctx context.Context, q model.SearchQuery) ([]model.Book, error) {
	return s.repo.Search(ctx, q)
}

func (s *bookService) checkAuthor(ctx context.Context, authorID int64) error {
	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return fmt.Errorf("failed to check author: %w", err)
	}
	if !exists {
		return model.ErrAuthorNotFound
	}
	return nil
}
