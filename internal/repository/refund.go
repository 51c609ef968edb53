package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

// RefundRepository is the refund ledger, one row per transaction
type RefundRepository interface {
	// CreateIfAbsent stores the refund unless one already exists for the
	// transaction, and returns whichever record is stored.
	CreateIfAbsent(ctx context.Context, refund *models.RefundRecord) (*models.RefundRecord, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.RefundRecord, error)
}

type refundRepository struct {
	db DBTX
}

// NewRefundRepository creates a new RefundRepository
func NewRefundRepository(database DBTX) RefundRepository {
	return &refundRepository{db: database}
}

func (r *refundRepository) CreateIfAbsent(ctx context.Context, refund *models.RefundRecord) (*models.RefundRecord, error) {
	query := `
		INSERT INTO refunds (transaction_id, refund_id, refund_status, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (transaction_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		refund.TransactionID,
		refund.RefundID.String(),
		refund.RefundStatus,
		refund.Message,
		refund.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store refund: %w", err)
	}

	return r.FindByTransactionID(ctx, refund.TransactionID)
}

func (r *refundRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.RefundRecord, error) {
	query := `
		SELECT transaction_id, refund_id, refund_status, message, created_at
		FROM refunds
		WHERE transaction_id = $1
	`

	var refund models.RefundRecord
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&refund.TransactionID,
		&refund.RefundID,
		&refund.RefundStatus,
		&refund.Message,
		&refund.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("refund for %s: %w", transactionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refund: %w", err)
	}

	return &refund, nil
}
