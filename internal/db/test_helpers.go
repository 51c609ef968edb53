package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/benx421/payment-gateway/disputes/internal/config"
)

// NewTestDB creates a DB instance for testing with a no-op logger
// This is only for use in tests where logging output is not needed
func NewTestDB(sqlDB *sql.DB, driver string) *DB {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &DB{
		DB:     sqlDB,
		logger: logger,
		driver: driver,
	}
}

// OpenInMemory opens a migrated, private in-memory SQLite database.
func OpenInMemory(ctx context.Context) (*DB, error) {
	sqlDB, err := sql.Open(config.DriverSQLite, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// every new connection would see an empty database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	database := NewTestDB(sqlDB, config.DriverSQLite)
	if err := database.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return database, nil
}
