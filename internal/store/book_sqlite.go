package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/book"

	_ "modernc.org/sqlite"
)

// BookSQLite is the SQLite implementation of book.Repository.
// created_at is stored as unix nanoseconds so ordering stays exact.
type BookSQLite struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

var _ book.Repository = (*BookSQLite)(nil)

func NewBookSQLite(db *sql.DB, timeout time.Duration) *BookSQLite {
	return &BookSQLite{db: db, timeout: timeout, now: time.Now}
}

// OpenSQLite opens the database file at path (or ":memory:") and applies connection pragmas.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return db, nil
}

func (r *BookSQLite) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BookSQLite) Insert(ctx context.Context, b *book.Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	createdAt := r.now().UTC()
	query := `
	INSERT INTO books (title, authors, genre, isbn, published_date, number_of_pages, cover_url, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (isbn) DO NOTHING
	RETURNING id
	`
	var pages sql.NullInt64
	if b.NumberOfPages != nil {
		pages = sql.NullInt64{Int64: int64(*b.NumberOfPages), Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query,
		b.Title, b.Authors, b.Genre, b.ISBN, b.PublishedDate, pages, b.CoverURL, createdAt.UnixNano(),
	).Scan(&b.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.ErrDuplicate
		}
		return fmt.Errorf("insert book: %w", err)
	}
	b.CreatedAt = createdAt
	return nil
}

func (r *BookSQLite) List(ctx context.Context, q book.Query) ([]book.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, title, authors, genre, isbn, published_date, number_of_pages, cover_url, created_at
	FROM books
	ORDER BY ` + orderBy(q, "")

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		var (
			b         book.Book
			pages     sql.NullInt64
			createdAt int64
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Authors, &b.Genre, &b.ISBN, &b.PublishedDate,
			&pages, &b.CoverURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		if pages.Valid {
			n := int(pages.Int64)
			b.NumberOfPages = &n
		}
		b.CreatedAt = time.Unix(0, createdAt).UTC()
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *BookSQLite) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if n == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *BookSQLite) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.PingContext(ctx)
}
