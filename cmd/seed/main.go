// Command seed populates the database with a small sample set of authors and
// books for local development. Running it twice is safe: existing rows are
// left alone.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"library-api/internal/config"
	"library-api/internal/infrastructure/database"
)

type seedBook struct {
	title  string
	year   int
	author string
}

var seedAuthors = []string{
	"George Orwell",
	"J.K. Rowling",
	"Harper Lee",
	"F. Scott Fitzgerald",
	"Jane Austen",
}

var seedBooks = []seedBook{
	{"1984", 1949, "George Orwell"},
	{"Animal Farm", 1945, "George Orwell"},
	{"Harry Potter and the Philosopher's Stone", 1997, "J.K. Rowling"},
	{"Harry Potter and the Chamber of Secrets", 1998, "J.K. Rowling"},
	{"To Kill a Mockingbird", 1960, "Harper Lee"},
	{"The Great Gatsby", 1925, "F. Scott Fitzgerald"},
	{"Pride and Prejudice", 1813, "Jane Austen"},
	{"Emma", 1815, "Jane Austen"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	authorIDs := make(map[string]int64, len(seedAuthors))
	for _, name := range seedAuthors {
		id, created, err := upsertAuthor(ctx, db, name)
		if err != nil {
			log.Fatalf("failed to seed author %q: %v", name, err)
		}
		authorIDs[name] = id
		if created {
			log.Printf("created author: %s", name)
		} else {
			log.Printf("author already exists: %s", name)
		}
	}

	for _, b := range seedBooks {
		created, err := upsertBook(ctx, db, b, authorIDs[b.author])
		if err != nil {
			log.Fatalf("failed to seed book %q: %v", b.title, err)
		}
		if created {
			log.Printf("created book: %s by %s", b.title, b.author)
		} else {
			log.Printf("book already exists: %s by %s", b.title, b.author)
		}
	}

	log.Println("seeding complete")
}

func upsertAuthor(ctx context.Context, db *database.PostgresDB, name string) (int64, bool, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `SELECT id FROM authors WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	err = db.Pool.QueryRow(ctx, `INSERT INTO authors (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func upsertBook(ctx context.Context, db *database.PostgresDB, b seedBook, authorID int64) (bool, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM books WHERE title = $1 AND author_id = $2`, b.title, authorID).Scan(&id)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO books (title, publication_year, author_id) VALUES ($1, $2, $3)`,
		b.title, b.year, authorID)
	if err != nil {
		return false, err
	}
	return true, nil
}
