package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domains/stats/model"
)

const topLimit = 5

// postgresRepository computes the stats from live data on every call.
// Aggregates are deliberately uncached so the numbers always reflect the
// current rows.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Collect(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{
		RecentBooksByYear: []model.YearCount{},
		TopAuthors:        []model.TopAuthor{},
	}

	countsQuery := `
        SELECT
            (SELECT COUNT(*) FROM books),
            (SELECT COUNT(*) FROM authors)
    `
	if err := r.pool.QueryRow(ctx, countsQuery).Scan(&stats.TotalBooks, &stats.TotalAuthors); err != nil {
		return nil, fmt.Errorf("failed to count books and authors: %w", err)
	}

	yearsQuery := `
        SELECT publication_year, COUNT(*)
        FROM books
        GROUP BY publication_year
        ORDER BY publication_year DESC
        LIMIT $1
    `
	rows, err := r.pool.Query(ctx, yearsQuery, topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by year: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var yc model.YearCount
		if err := rows.Scan(&yc.PublicationYear, &yc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan year count: %w", err)
		}
		stats.RecentBooksByYear = append(stats.RecentBooksByYear, yc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate year counts: %w", err)
	}

	topQuery := `
        SELECT a.id, a.name, COUNT(b.id) AS book_count
        FROM authors a
        JOIN books b ON b.author_id = a.id
        GROUP BY a.id, a.name
        ORDER BY book_count DESC, a.name ASC
        LIMIT $1
    `
	rows, err = r.pool.Query(ctx, topQuery, topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top authors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ta model.TopAuthor
		if err := rows.Scan(&ta.ID, &ta.Name, &ta.BookCount); err != nil {
			return nil, fmt.Errorf("failed to scan top author: %w", err)
		}
		stats.TopAuthors = append(stats.TopAuthors, ta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top authors: %w", err)
	}

	return stats, nil
}
