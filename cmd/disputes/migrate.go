package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, database, err := setup(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer database.Close()

			logger.Info("schema applied", "driver", database.Driver())
			fmt.Fprintf(cmd.OutOrStdout(), "Schema applied (%s)\n", database.Driver())
			return nil
		},
	}
}
