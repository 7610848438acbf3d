package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookshelf/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

type options struct {
	driver string
	dsn    string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the bookshelf database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "Store driver: sqlite or postgres (default $STORE_DRIVER or sqlite)")
	rootCmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "Database DSN or sqlite path (default $DB_DSN)")

	rootCmd.AddCommand(newApplyCommand(opts, "up", "Apply all pending migrations", goose.Up))
	rootCmd.AddCommand(newApplyCommand(opts, "down", "Roll back the most recent migration", goose.Down))
	rootCmd.AddCommand(newApplyCommand(opts, "status", "Show applied and pending migrations", goose.Status))
	rootCmd.AddCommand(newCreateCommand(opts))

	return rootCmd
}

func (o *options) resolve() error {
	if o.driver == "" {
		o.driver = envOr("STORE_DRIVER", store.DriverSQLite)
	}
	o.driver = strings.ToLower(o.driver)
	if o.dsn == "" {
		o.dsn = envOr("DB_DSN", "")
	}

	switch o.driver {
	case store.DriverSQLite:
		if o.dsn == "" {
			o.dsn = "bookshelf.db"
		}
	case store.DriverPostgres:
		if o.dsn == "" {
			return errors.New("--dsn or DB_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported driver %q (want sqlite or postgres)", o.driver)
	}
	return nil
}

type gooseFunc func(db *sql.DB, dir string, opts ...goose.OptionsFunc) error

func newApplyCommand(opts *options, use, short string, run gooseFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := store.UseEmbeddedMigrations(opts.driver); err != nil {
				return err
			}
			if err := run(db, store.MigrationsDir(opts.driver)); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s finished for %s\n", use, opts.driver)
			return nil
		},
	}
}

func newCreateCommand(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Write a new empty SQL migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = migrationsDir(opts.driver)
			}
			goose.SetBaseFS(nil)
			goose.SetSequential(true)
			if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
				return fmt.Errorf("create migration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration created in %s: %s\n", dir, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default $MIGRATIONS_DIR or internal/store/migrations/<driver>)")
	return cmd
}

func openDB(ctx context.Context, opts *options) (*sql.DB, func(), error) {
	if opts.driver == store.DriverSQLite {
		db, err := store.OpenSQLite(opts.dsn)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := pgxpool.New(ctx, opts.dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	return db, func() {
		_ = db.Close()
		pool.Close()
	}, nil
}
