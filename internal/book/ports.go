package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
// Implementations must enforce ISBN uniqueness atomically.
type Repository interface {
	Insert(ctx context.Context, b *Book) error
	List(ctx context.Context, q Query) ([]Book, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
