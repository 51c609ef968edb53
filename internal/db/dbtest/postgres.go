// Package dbtest boots throwaway Postgres databases for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/benx421/payment-gateway/disputes/internal/config"
	"github.com/benx421/payment-gateway/disputes/internal/db"
)

// Postgres returns a migrated Postgres database. It reuses TEST_PG_DSN when set
// and otherwise starts a postgres:16 container. The test is skipped in -short
// mode or when neither TEST_PG_DSN nor TEST_PG_CONTAINER=1 is set.
func Postgres(t *testing.T) *db.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}

	ctx := context.Background()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		if os.Getenv("TEST_PG_CONTAINER") != "1" {
			t.Skip("set TEST_PG_DSN or TEST_PG_CONTAINER=1 to run postgres tests")
		}

		var err error
		dsn, err = startContainer(ctx, t)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}
	}

	sqlDB, err := sql.Open(config.DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	database := db.NewTestDB(sqlDB, config.DriverPostgres)
	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate postgres: %v", err)
	}

	for _, table := range []string{"disputes", "refunds", "idempotency_keys"} {
		if _, err := database.ExecContext(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}

	return database
}

func startContainer(ctx context.Context, t *testing.T) (string, error) {
	t.Helper()

	pgC, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("disputes"),
		postgres.WithUsername("disputes"),
		postgres.WithPassword("disputes"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", err
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgC); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("resolve connection string: %w", err)
	}
	return dsn, nil
}
