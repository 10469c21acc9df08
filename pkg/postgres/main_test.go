package postgres

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMain applies all migrations to the test database once for the package.
// Without TEST_DATABASE_URL the integration tests skip themselves.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	database, err := NewDB(context.Background(), dsn)
	if err != nil {
		log.Fatalf("TestMain: connect: %v", err)
	}

	if _, err := database.RunMigrations(context.Background()); err != nil {
		database.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	database.Close()

	os.Exit(m.Run())
}

// newTestDB returns a DB whose queries run inside a transaction that is
// rolled back when the test finishes
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	database, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	tx, err := database.pool.Begin(ctx)
	require.NoError(t, err, "begin transaction")
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return &DB{q: tx}
}
