package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domains/author/model"
	"library-api/pkg/cache"
)

// postgresRepository implements RepositoryInterface on pgxpool, with a Redis
// read-through cache on single-author reads. List and analytics results are
// deliberately uncached: their aggregates must be fresh on every request.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

const detailCacheTTL = 15 * time.Minute

const listSelect = `
        SELECT a.id, a.name,
               (SELECT COUNT(*) FROM books b WHERE b.author_id = a.id) AS books_count,
               (SELECT MAX(b.publication_year) FROM books b WHERE b.author_id = a.id) AS latest_book,
               a.created_at, a.updated_at
        FROM authors a
    `

// List retrieves a page of authors matching the parsed filter, plus the total
// match count for the pagination envelope.
func (r *postgresRepository) List(ctx context.Context, q model.ListQuery) ([]model.AuthorRow, int64, error) {
	where, args, nextArg := q.WhereClause()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(listSelect)
	queryBuilder.WriteString(" WHERE ")
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(q.OrderBy)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", nextArg, nextArg+1))
	args = append(args, q.Pagination.Limit(), q.Pagination.Offset())

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.AuthorRow{}
	for rows.Next() {
		var a model.AuthorRow
		if err := rows.Scan(&a.ID, &a.Name, &a.BooksCount, &a.LatestBook, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	countWhere, countArgs, _ := q.WhereClause()
	var total int64
	countQuery := "SELECT COUNT(*) FROM authors a WHERE " + countWhere
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return authors, total, nil
}

// GetByID retrieves an author with nested books, cached.
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.AuthorDetail, error) {
	cacheKey := model.DetailCacheKey(id)

	var detail model.AuthorDetail
	if found, err := r.cache.Get(ctx, cacheKey, &detail); err == nil && found {
		return &detail, nil
	}

	query := `
        SELECT id, name, created_at, updated_at
        FROM authors
        WHERE id = $1
    `
	err := r.pool.QueryRow(ctx, query, id).Scan(&detail.ID, &detail.Name, &detail.CreatedAt, &detail.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	booksQuery := `
        SELECT id, title, publication_year
        FROM books
        WHERE author_id = $1
        ORDER BY publication_year, id
    `
	rows, err := r.pool.Query(ctx, booksQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query author books: %w", err)
	}
	defer rows.Close()

	detail.Books = []model.AuthorBook{}
	for rows.Next() {
		var b model.AuthorBook
		if err := rows.Scan(&b.ID, &b.Title, &b.PublicationYear); err != nil {
			return nil, fmt.Errorf("failed to scan author book: %w", err)
		}
		detail.Books = append(detail.Books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author books: %w", err)
	}

	r.cache.Set(ctx, cacheKey, detail, detailCacheTTL)

	return &detail, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

// Analytics computes book_count and latest_book per author, filtered by a
// minimum book count. sort_by name sorts ascending; the aggregate sorts are
// descending with NULLs last, ties broken by author id ascending.
func (r *postgresRepository) Analytics(ctx context.Context, q model.AnalyticsQuery) ([]model.AuthorAnalytics, error) {
	orderBy := "a.name ASC, a.id ASC"
	switch q.SortBy {
	case model.SortByBookCount:
		orderBy = "book_count DESC, a.id ASC"
	case model.SortByLatestBook:
		orderBy = "latest_book DESC NULLS LAST, a.id ASC"
	}

	query := fmt.Sprintf(`
        SELECT a.id, a.name,
               (SELECT COUNT(*) FROM books b WHERE b.author_id = a.id) AS book_count,
               (SELECT MAX(b.publication_year) FROM books b WHERE b.author_id = a.id) AS latest_book
        FROM authors a
        WHERE (SELECT COUNT(*) FROM books b WHERE b.author_id = a.id) >= $1
        ORDER BY %s
    `, orderBy)

	rows, err := r.pool.Query(ctx, query, q.MinBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to query author analytics: %w", err)
	}
	defer rows.Close()

	results := []model.AuthorAnalytics{}
	for rows.Next() {
		var a model.AuthorAnalytics
		if err := rows.Scan(&a.ID, &a.Name, &a.BookCount, &a.LatestBook); err != nil {
			return nil, fmt.Errorf("failed to scan author analytics: %w", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author analytics: %w", err)
	}

	return results, nil
}
