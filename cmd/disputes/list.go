package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/benx421/payment-gateway/disputes/internal/repository"
	"github.com/spf13/cobra"
)

var listJSON bool

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored disputes",
		RunE:  runList,
	}

	cmd.Flags().BoolVarP(&listJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	_, _, database, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := repository.NewDisputeRepository(database).ListAll(ctx)
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No disputes recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRANSACTION\tBANK\tMERCHANT\tVERIFICATION\tFINAL STATUS\tCREATED")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.TransactionID, r.BankStatus, r.MerchantStatus,
			r.VerificationResult, r.FinalStatus, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
