package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/repository"
)

// StatusNeedMoreInfo is returned when a submission lacks a transaction id
const StatusNeedMoreInfo = "NEED_MORE_INFO"

// Resolution is the answer to one dispute submission: either a request for
// more information or a terminal decision backed by a stored record.
type Resolution struct {
	Refund        *models.RefundRecord
	Record        *models.DisputeRecord
	Explanation   *string
	Status        string
	TransactionID string
	Questions     []string
	Outcome       models.VerificationOutcome
	Decision      models.Decision
}

// NeedsMoreInfo reports whether the caller must answer Questions first
func (r *Resolution) NeedsMoreInfo() bool {
	return r.Status == StatusNeedMoreInfo
}

// DisputeService runs a dispute from submission to stored record
type DisputeService struct {
	reconciler  Reconciler
	refunds     RefundTrigger
	disputes    repository.DisputeRepository
	interpreter Interpreter
	explainer   Explainer
	advisor     OpinionSource
	logger      *slog.Logger
	now         func() time.Time
}

// DisputeServiceOption configures a DisputeService
type DisputeServiceOption func(*DisputeService)

// WithAdvisor consults an AI opinion for cases the status rules leave open
func WithAdvisor(advisor OpinionSource) DisputeServiceOption {
	return func(s *DisputeService) {
		s.advisor = advisor
	}
}

// NewDisputeService creates a new DisputeService
func NewDisputeService(
	reconciler Reconciler,
	refunds RefundTrigger,
	disputes repository.DisputeRepository,
	interpreter Interpreter,
	explainer Explainer,
	logger *slog.Logger,
	opts ...DisputeServiceOption,
) *DisputeService {
	s := &DisputeService{
		reconciler:  reconciler,
		refunds:     refunds,
		disputes:    disputes,
		interpreter: interpreter,
		explainer:   explainer,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit handles a free-text complaint. Without a transaction id it asks one
// clarifying question; otherwise it evaluates, explains and stores the dispute.
func (s *DisputeService) Submit(ctx context.Context, message string) (*Resolution, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidRequest,
			Message: "message is required",
		}
	}

	// a caller hanging up does not abort an evaluation half way
	ctx = context.WithoutCancel(ctx)

	parsed := s.interpreter.Interpret(ctx, message)
	if parsed.HasTransactionID() {
		if err := ValidateTransactionID(*parsed.TransactionID); err != nil {
			s.logger.Warn("extracted transaction id rejected",
				"transaction_id", *parsed.TransactionID,
				"error", err,
			)
			parsed.TransactionID = nil
			if ValidateTransactionID(parsed.PatternID) == nil {
				patternID := parsed.PatternID
				parsed.TransactionID = &patternID
			}
		}
	}

	if !parsed.HasTransactionID() {
		return &Resolution{
			Status:    StatusNeedMoreInfo,
			Questions: s.interpreter.Followups(ctx, parsed),
		}, nil
	}

	return s.resolve(ctx, *parsed.TransactionID, truncateReason(parsed.DisputeReason), true)
}

// SubmitDirect evaluates a structured dispute. No language-model call is made
// unless the AI advisor is enabled.
func (s *DisputeService) SubmitDirect(ctx context.Context, transactionID, reason string) (*Resolution, error) {
	transactionID = strings.TrimSpace(transactionID)
	if err := ValidateTransactionID(transactionID); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidTransactionID,
			Message: err.Error(),
		}
	}

	reason = strings.TrimSpace(reason)
	if err := ValidateDisputeReason(reason); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidReason,
			Message: err.Error(),
		}
	}

	return s.resolve(context.WithoutCancel(ctx), transactionID, reason, false)
}

func (s *DisputeService) resolve(ctx context.Context, transactionID, reason string, explain bool) (*Resolution, error) {
	outcome := s.reconciler.Reconcile(ctx, transactionID)
	opinion := s.opinion(ctx, transactionID, outcome, reason)
	decision := Decide(outcome.MerchantStatus, outcome.BankStatus, opinion)

	record := &models.DisputeRecord{
		TransactionID:      transactionID,
		MerchantStatus:     outcome.MerchantStatus,
		BankStatus:         outcome.BankStatus,
		DisputeReason:      reason,
		VerificationResult: outcome.VerificationResult,
		FinalStatus:        decision.FinalDecision,
	}
	if opinion != nil {
		record.AIDecision = &opinion.Decision
		record.Confidence = &opinion.Confidence
	}

	res := &Resolution{
		TransactionID: transactionID,
		Outcome:       outcome,
		Decision:      decision,
		Record:        record,
	}

	if outcome.VerificationResult == models.VerificationRefundEligible {
		record.FinalStatus = models.DecisionRefundInitiated

		refund, err := s.refunds.TriggerRefund(ctx, transactionID)
		if err != nil {
			s.logger.Error("refund could not be confirmed",
				"transaction_id", transactionID,
				"needs_followup", true,
				"error", err,
			)
		} else {
			record.RefundConfirmed = true
			res.Refund = refund
		}
	}

	if explain {
		explanation := s.explainer.Explain(ctx, models.OutcomeSummary{
			FinalStatus:    record.FinalStatus,
			BankStatus:     outcome.BankStatus,
			MerchantStatus: outcome.MerchantStatus,
		})
		record.Explanation = &explanation
		res.Explanation = &explanation
	}

	record.CreatedAt = s.now().UTC()
	if _, err := s.disputes.Insert(ctx, record); err != nil {
		s.logger.Error("failed to store dispute",
			"transaction_id", transactionID,
			"final_status", record.FinalStatus,
			"refund_confirmed", record.RefundConfirmed,
			"error", err,
		)
		return nil, &ServiceError{
			Code:    ErrCodeStorageFailure,
			Message: "failed to store dispute",
			Err:     err,
		}
	}

	res.Status = record.FinalStatus

	s.logger.Info("dispute resolved",
		"dispute_id", record.ID,
		"transaction_id", transactionID,
		"verification_result", outcome.VerificationResult,
		"final_status", record.FinalStatus,
		"decision_reason", decision.Reason,
	)

	return res, nil
}

// opinion asks the advisor only when its answer could change the decision.
// Unknown transactions are never handed to it.
func (s *DisputeService) opinion(ctx context.Context, transactionID string, outcome models.VerificationOutcome, reason string) *models.AIOpinion {
	if s.advisor == nil {
		return nil
	}
	if SettledByStatus(outcome.MerchantStatus, outcome.BankStatus) {
		return nil
	}
	if outcome.BankStatus == models.TransactionStatusUnknown || outcome.MerchantStatus == models.TransactionStatusUnknown {
		return nil
	}

	opinion, err := s.advisor.Opinion(ctx, outcome, reason)
	if err != nil {
		s.logger.Warn("ai opinion unavailable",
			"transaction_id", transactionID,
			"error", err,
		)
		return nil
	}
	return opinion
}

// List returns every stored dispute in insertion order
func (s *DisputeService) List(ctx context.Context) ([]models.DisputeRecord, error) {
	records, err := s.disputes.ListAll(ctx)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeStorageFailure,
			Message: "failed to list disputes",
			Err:     err,
		}
	}
	return records, nil
}

// Get returns the latest dispute stored for a transaction
func (s *DisputeService) Get(ctx context.Context, transactionID string) (*models.DisputeRecord, error) {
	if err := ValidateTransactionID(transactionID); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidTransactionID,
			Message: err.Error(),
		}
	}

	record, err := s.disputes.FindLatestByTransactionID(ctx, transactionID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, &ServiceError{
			Code:    ErrCodeDisputeNotFound,
			Message: "no dispute found for transaction",
			Err:     err,
		}
	}
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeStorageFailure,
			Message: "failed to load dispute",
			Err:     err,
		}
	}
	return record, nil
}

// truncateReason keeps model-extracted reasons within the stored limit
func truncateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	runes := []rune(reason)
	if len(runes) <= maxDisputeReasonLength {
		return reason
	}
	return string(runes[:maxDisputeReasonLength])
}
