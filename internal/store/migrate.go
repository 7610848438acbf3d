package store

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS

// MigrationsDir returns the directory inside Migrations holding the driver's SQL files.
func MigrationsDir(driver string) string {
	return "migrations/" + driver
}

// UseEmbeddedMigrations points goose at the embedded SQL for driver.
func UseEmbeddedMigrations(driver string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(Migrations)
	return goose.SetDialect(dialect)
}

// Migrate applies every pending migration for driver.
func Migrate(db *sql.DB, driver string) error {
	if err := UseEmbeddedMigrations(driver); err != nil {
		return err
	}
	if err := goose.Up(db, MigrationsDir(driver)); err != nil {
		return fmt.Errorf("apply %s migrations: %w", driver, err)
	}
	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported store driver %q", driver)
}

// gooseLogger routes goose progress lines into zap.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(strings.TrimSpace(format), v...)
}

// SetMigrationLogger sends migration output to log.
func SetMigrationLogger(log *zap.Logger) {
	goose.SetLogger(gooseLogger{log: log.Named("migrate").Sugar()})
}
