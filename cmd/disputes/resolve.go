package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/disputes/internal/app"
	"github.com/benx421/payment-gateway/disputes/internal/service"
	"github.com/spf13/cobra"
)

var (
	resolveReason  string
	resolveMessage string
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [transaction-id]",
		Short: "Resolve one dispute and print the result as JSON",
		Long: `Resolve one dispute without starting the server.

With a transaction id the dispute is evaluated directly. With --message the
text is interpreted first, exactly as the chat endpoint does.

Examples:
  disputes resolve TXN101 --reason "charged but payment failed"
  disputes resolve --message "Money debited for TXN1002 but order not placed"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().StringVarP(&resolveReason, "reason", "r", "", "dispute reason")
	cmd.Flags().StringVarP(&resolveMessage, "message", "m", "", "free-text complaint")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (resolveMessage == "") {
		return fmt.Errorf("give either a transaction id or --message")
	}

	ctx := cmd.Context()

	cfg, logger, database, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer database.Close()

	application, err := app.New(database, cfg, logger)
	if err != nil {
		return err
	}

	var res *service.Resolution
	if resolveMessage != "" {
		res, err = application.Disputes.Submit(ctx, resolveMessage)
	} else {
		res, err = application.Disputes.SubmitDirect(ctx, args[0], resolveReason)
	}
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return fmt.Errorf("%s: %s", svcErr.Code, svcErr.Message)
	}
	if err != nil {
		return err
	}

	out := map[string]any{"status": res.Status}
	if res.NeedsMoreInfo() {
		out["questions"] = res.Questions
	} else {
		out["transaction_id"] = res.TransactionID
		out["verification_result"] = res.Outcome.VerificationResult
		out["reason_code"] = res.Outcome.ReasonCode
		out["decision_reason"] = res.Decision.Reason
		if res.Explanation != nil {
			out["explanation"] = *res.Explanation
		}
		if res.Refund != nil {
			out["refund"] = res.Refund
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
