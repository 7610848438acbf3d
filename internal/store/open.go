package store

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/book"

	"github.com/jackc/pgx/v5/stdlib"
)

// Open connects the repository for driver and applies pending migrations when
// migrate is set. The returned func releases the connection.
func Open(ctx context.Context, driver, dsn string, timeout time.Duration, migrate bool) (book.Repository, func(), error) {
	switch driver {
	case DriverPostgres:
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		pool, err := OpenPostgres(pingCtx, dsn)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			db := stdlib.OpenDBFromPool(pool)
			err := Migrate(db, DriverPostgres)
			_ = db.Close()
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return NewBookPG(pool, timeout), pool.Close, nil

	case DriverSQLite:
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := Migrate(db, DriverSQLite); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return NewBookSQLite(db, timeout), func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", driver)
}
