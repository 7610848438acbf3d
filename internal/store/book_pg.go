package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/book"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// BookPG is the Postgres implementation of book.Repository.
type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
	now     func() time.Time
}

var _ book.Repository = (*BookPG)(nil)

func NewBookPG(db *pgxpool.Pool, timeout time.Duration) *BookPG {
	return &BookPG{db: db, timeout: timeout, now: time.Now}
}

// OpenPostgres creates a pool and verifies the server is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func (r *BookPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BookPG) Insert(ctx context.Context, b *book.Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO books (title, authors, genre, isbn, published_date, number_of_pages, cover_url, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (isbn) DO NOTHING
	RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		b.Title, b.Authors, b.Genre, b.ISBN, b.PublishedDate, b.NumberOfPages, b.CoverURL, r.now().UTC(),
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.ErrDuplicate
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return book.ErrDuplicate
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookPG) List(ctx context.Context, q book.Query) ([]book.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, title, authors, genre, isbn, published_date, number_of_pages, cover_url, created_at
	FROM books
	ORDER BY ` + orderBy(q, ` COLLATE "C"`)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Authors, &b.Genre, &b.ISBN, &b.PublishedDate,
			&b.NumberOfPages, &b.CoverURL, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *BookPG) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *BookPG) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(ctx)
}
