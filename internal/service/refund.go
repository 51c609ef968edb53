package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/repository"
	"github.com/google/uuid"
)

// RefundInitiatedMessage is the confirmation stored with every refund
const RefundInitiatedMessage = "Refund has been successfully initiated"

// refundNamespace scopes the name-based UUIDs derived from transaction ids
var refundNamespace = uuid.MustParse("6f1c2a8e-4b7d-5e90-a3c1-2d8f0b9e7a14")

// RefundService initiates refunds for refund-eligible transactions
type RefundService struct {
	refunds repository.RefundRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewRefundService creates a new RefundService
func NewRefundService(refunds repository.RefundRepository, logger *slog.Logger) *RefundService {
	return &RefundService{
		refunds: refunds,
		logger:  logger,
		now:     time.Now,
	}
}

// RefundIDFor returns the refund id for a transaction. It is stable, so a
// retried refund carries the same id as the first attempt.
func RefundIDFor(transactionID string) uuid.UUID {
	return uuid.NewSHA1(refundNamespace, []byte(transactionID))
}

// TriggerRefund records a refund for the transaction. Calling it again for the
// same transaction returns the stored refund instead of creating another.
func (s *RefundService) TriggerRefund(ctx context.Context, transactionID string) (*models.RefundRecord, error) {
	if err := ValidateTransactionID(transactionID); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidTransactionID,
			Message: err.Error(),
		}
	}

	refund := &models.RefundRecord{
		RefundID:      RefundIDFor(transactionID),
		TransactionID: transactionID,
		RefundStatus:  models.RefundStatusInitiated,
		Message:       RefundInitiatedMessage,
		CreatedAt:     s.now().UTC(),
	}

	stored, err := s.refunds.CreateIfAbsent(ctx, refund)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeRefundFailed,
			Message: "failed to initiate refund",
			Err:     err,
		}
	}

	s.logger.Info("refund initiated",
		"transaction_id", stored.TransactionID,
		"refund_id", stored.RefundID,
	)

	return stored, nil
}
