// Package testutil provides shared helpers for the opt-in Postgres
// integration tests. Every helper skips the calling test when
// TEST_DATABASE_URL is not set, so unit tests run without a database.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/rfcoelho/medidas/internal/docstore"
)

// NewDocumentStore opens a docstore.Postgres against the database named by
// TEST_DATABASE_URL, running any pending migrations. The store is closed
// automatically when the test (and all its subtests) finish.
func NewDocumentStore(t *testing.T) *docstore.Postgres {
	t.Helper()

	store, err := docstore.OpenPostgres(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewDocumentStore: open: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store
}

// NewSQLDB opens a *sql.DB connected to the database named by
// TEST_DATABASE_URL using the pgx database/sql driver. Use this when a test
// drives goose migrations directly rather than going through a store.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// requireDSN returns the TEST_DATABASE_URL environment variable value,
// skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
