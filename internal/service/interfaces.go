package service

import (
	"context"

	"github.com/benx421/payment-gateway/disputes/internal/llm"
	"github.com/benx421/payment-gateway/disputes/internal/models"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Reconciler compares bank and merchant status for a transaction
type Reconciler interface {
	Reconcile(ctx context.Context, transactionID string) models.VerificationOutcome
}

// RefundTrigger initiates refunds; retries for one transaction are idempotent
type RefundTrigger interface {
	TriggerRefund(ctx context.Context, transactionID string) (*models.RefundRecord, error)
}

// Interpreter turns free text into a structured dispute
type Interpreter interface {
	Interpret(ctx context.Context, text string) models.ParsedInput
	Followups(ctx context.Context, parsed models.ParsedInput) []string
}

// Explainer produces the user-facing explanation of an outcome. It never fails.
type Explainer interface {
	Explain(ctx context.Context, summary models.OutcomeSummary) string
}

// OpinionSource supplies an optional AI recommendation
type OpinionSource interface {
	Opinion(ctx context.Context, outcome models.VerificationOutcome, reason string) (*models.AIOpinion, error)
}

// DisputeResolver handles dispute submissions and lookups
type DisputeResolver interface {
	Submit(ctx context.Context, message string) (*Resolution, error)
	SubmitDirect(ctx context.Context, transactionID, reason string) (*Resolution, error)
	List(ctx context.Context) ([]models.DisputeRecord, error)
	Get(ctx context.Context, transactionID string) (*models.DisputeRecord, error)
}

// Ensure concrete types implement interfaces
var (
	_ Reconciler      = (*ReconcileService)(nil)
	_ RefundTrigger   = (*RefundService)(nil)
	_ DisputeResolver = (*DisputeService)(nil)
	_ Interpreter     = (*llm.Interpreter)(nil)
	_ Explainer       = (*llm.Explainer)(nil)
	_ OpinionSource   = (*llm.Advisor)(nil)
)
