package repository

import (
	"context"
	"testing"

	"github.com/benx421/payment-gateway/disputes/internal/db"
	"github.com/benx421/payment-gateway/disputes/internal/db/dbtest"
)

// forEachDriver runs fn against a fresh SQLite database and, when enabled,
// against Postgres.
func forEachDriver(t *testing.T, fn func(t *testing.T, database *db.DB)) {
	t.Helper()

	t.Run("sqlite3", func(t *testing.T) {
		database := setupTestDB(t)
		fn(t, database)
	})

	t.Run("postgres", func(t *testing.T) {
		database := dbtest.Postgres(t)
		fn(t, database)
	})
}

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.OpenInMemory(context.Background())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
