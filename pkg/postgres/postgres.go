package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	matchPairConstraint = "matches_volunteer_event_key"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx, so tests can run every
// query inside a transaction that is rolled back afterwards
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB provides database operations using PostgreSQL
type DB struct {
	pool *pgxpool.Pool
	q    querier
}

// NewDB creates a new PostgreSQL database connection
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w: %w", model.ErrUnavailable, err)
	}

	return &DB{pool: pool, q: pool}, nil
}

// Close closes the database connection pool
func (d *DB) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// Ping checks the database is reachable
func (d *DB) Ping(ctx context.Context) error {
	if d.pool == nil {
		return nil
	}
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w: %w", model.ErrUnavailable, err)
	}
	return nil
}

// RunMigrations applies all pending goose migrations embedded in the binary
// and returns the paths of the migrations that were applied
func (d *DB) RunMigrations(ctx context.Context) ([]string, error) {
	if d.pool == nil {
		return nil, fmt.Errorf("migrations require a connection pool")
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(d.pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	applied := make([]string, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Path)
	}
	return applied, nil
}

// unavailable wraps a driver failure so callers can classify it
func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUnavailable, err)
}

// scanner is satisfied by both pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func pgErrorCode(err error) (code string, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
