package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benx421/payment-gateway/disputes/internal/config"
	"github.com/benx421/payment-gateway/disputes/internal/db"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "disputes",
		Short:         "Payment dispute resolution service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, builds a logger writing to logOut and opens a
// migrated database. Commands that print results log to stderr.
func setup(ctx context.Context, logOut io.Writer) (*config.Config, *slog.Logger, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := cfg.Logger.NewLoggerTo(logOut)
	slog.SetDefault(logger)

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, nil, nil, err
	}

	return cfg, logger, database, nil
}
