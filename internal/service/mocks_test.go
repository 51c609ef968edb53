package service

import (
	"context"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) Reconcile(ctx context.Context, transactionID string) models.VerificationOutcome {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(models.VerificationOutcome)
}

type mockRefundTrigger struct {
	mock.Mock
}

func (m *mockRefundTrigger) TriggerRefund(ctx context.Context, transactionID string) (*models.RefundRecord, error) {
	args := m.Called(ctx, transactionID)
	refund, _ := args.Get(0).(*models.RefundRecord)
	return refund, args.Error(1)
}

type mockInterpreter struct {
	mock.Mock
}

func (m *mockInterpreter) Interpret(ctx context.Context, text string) models.ParsedInput {
	args := m.Called(ctx, text)
	return args.Get(0).(models.ParsedInput)
}

func (m *mockInterpreter) Followups(ctx context.Context, parsed models.ParsedInput) []string {
	args := m.Called(ctx, parsed)
	questions, _ := args.Get(0).([]string)
	return questions
}

type mockExplainer struct {
	mock.Mock
}

func (m *mockExplainer) Explain(ctx context.Context, summary models.OutcomeSummary) string {
	args := m.Called(ctx, summary)
	return args.String(0)
}

type mockOpinionSource struct {
	mock.Mock
}

func (m *mockOpinionSource) Opinion(ctx context.Context, outcome models.VerificationOutcome, reason string) (*models.AIOpinion, error) {
	args := m.Called(ctx, outcome, reason)
	opinion, _ := args.Get(0).(*models.AIOpinion)
	return opinion, args.Error(1)
}
