package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "library-api/internal/domains/author/model"
	"library-api/internal/domains/book/model"
	"library-api/pkg/cache"
)

// postgresRepository implements RepositoryInterface on pgxpool. Single-book
// reads go through a Redis read-through cache; every write invalidates the
// book's entry and the affected authors' detail entries (author details embed
// their books). Lists and search are never cached.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

const detailCacheTTL = 15 * time.Minute

const bookSelect = `
        SELECT bk.id, bk.title, bk.publication_year, bk.author_id, a.name AS author_name,
               bk.created_at, bk.updated_at
        FROM books bk
        JOIN authors a ON a.id = bk.author_id
    `

// List retrieves a page of books matching the parsed filter plus the total
// match count. The author join is always present: filters, search and
// ordering may all reference the author's name.
func (r *postgresRepository) List(ctx context.Context, q model.ListQuery) ([]model.Book, int64, error) {
	where, args, nextArg := q.WhereClause()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(bookSelect)
	queryBuilder.WriteString(" WHERE ")
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(q.OrderBy)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", nextArg, nextArg+1))
	args = append(args, q.Pagination.Limit(), q.Pagination.Offset())

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	countWhere, countArgs, _ := q.WhereClause()
	countQuery := "SELECT COUNT(*) FROM books bk JOIN authors a ON a.id = bk.author_id WHERE " + countWhere

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// GetByID retrieves a single book, cached.
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	cacheKey := model.DetailCacheKey(id)

	var b model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	book, err := r.fetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, book, detailCacheTTL)

	return book, nil
}

func (r *postgresRepository) fetchByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := r.pool.QueryRow(ctx, bookSelect+" WHERE bk.id = $1", id).Scan(
		&b.ID, &b.Title, &b.PublicationYear, &b.AuthorID, &b.AuthorName, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return &b, nil
}

// Create inserts a new book. A foreign-key violation on author_id maps to
// ErrAuthorNotFound.
func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, publication_year, author_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, query, b.Title, b.PublicationYear, b.AuthorID).Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.cache.Delete(ctx, authormodel.DetailCacheKey(b.AuthorID))

	return r.fetchByID(ctx, b.ID)
}

// Update writes the full row. The previous author_id is read first so both
// the old and new authors' cached details can be invalidated.
func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	var oldAuthorID int64
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM books WHERE id = $1`, b.ID).Scan(&oldAuthorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book for update: %w", err)
	}

	query := `
        UPDATE books
        SET title = $1, publication_year = $2, author_id = $3, updated_at = NOW()
        WHERE id = $4
    `
	cmdTag, err := r.pool.Exec(ctx, query, b.Title, b.PublicationYear, b.AuthorID, b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, model.ErrBookNotFound
	}

	r.cache.Delete(ctx,
		model.DetailCacheKey(b.ID),
		authormodel.DetailCacheKey(oldAuthorID),
		authormodel.DetailCacheKey(b.AuthorID),
	)

	return r.fetchByID(ctx, b.ID)
}

// Delete removes a book, invalidating its cache entry and its author's.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	var authorID int64
	err := r.pool.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING author_id`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	r.cache.Delete(ctx,
		model.DetailCacheKey(id),
		authormodel.DetailCacheKey(authorID),
	)

	return nil
}

// Search runs the /search/ cross-field query: the term matches title or
// author name, optionally narrowed by year range and author id. Ordered by
// title with an id tie-break; capped, not paginated.
func (r *postgresRepository) Search(ctx context.Context, q model.SearchQuery) ([]model.Book, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(bookSelect)
	queryBuilder.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argPos := 1

	if q.Q != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (bk.title ILIKE $%d OR a.name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+q.Q+"%")
		argPos++
	}
	if q.YearMin != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND bk.publication_year >= $%d", argPos))
		args = append(args, *q.YearMin)
		argPos++
	}
	if q.YearMax != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND bk.publication_year <= $%d", argPos))
		args = append(args, *q.YearMax)
		argPos++
	}
	if q.AuthorID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND bk.author_id = $%d", argPos))
		args = append(args, *q.AuthorID)
		argPos++
	}

	queryBuilder.WriteString(" ORDER BY bk.title ASC, bk.id ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argPos))
	args = append(args, q.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func scanBooks(rows pgx.Rows) ([]model.Book, error) {
	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.PublicationYear, &b.AuthorID, &b.AuthorName, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}
	return books, nil
}
