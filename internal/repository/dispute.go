package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

// DisputeRepository is the append-only store of dispute evaluations
type DisputeRepository interface {
	Insert(ctx context.Context, record *models.DisputeRecord) (int64, error)
	FindLatestByTransactionID(ctx context.Context, transactionID string) (*models.DisputeRecord, error)
	ListAll(ctx context.Context) ([]models.DisputeRecord, error)
}

type disputeRepository struct {
	db DBTX
}

// NewDisputeRepository creates a new DisputeRepository
func NewDisputeRepository(database DBTX) DisputeRepository {
	return &disputeRepository{db: database}
}

const disputeColumns = `
	id, transaction_id, merchant_status, bank_status, dispute_reason,
	verification_result, ai_decision, confidence, explanation,
	final_status, refund_confirmed, created_at`

// Insert appends a dispute record and assigns its ID and creation time
func (r *disputeRepository) Insert(ctx context.Context, record *models.DisputeRecord) (int64, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO disputes (
			transaction_id, merchant_status, bank_status, dispute_reason,
			verification_result, ai_decision, confidence, explanation,
			final_status, refund_confirmed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		record.TransactionID,
		string(record.MerchantStatus),
		string(record.BankStatus),
		record.DisputeReason,
		string(record.VerificationResult),
		record.AIDecision,
		record.Confidence,
		record.Explanation,
		record.FinalStatus,
		record.RefundConfirmed,
		record.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dispute: %w", err)
	}

	record.ID = id
	return id, nil
}

// FindLatestByTransactionID returns the most recent record for a transaction
func (r *disputeRepository) FindLatestByTransactionID(ctx context.Context, transactionID string) (*models.DisputeRecord, error) {
	query := `SELECT` + disputeColumns + `
		FROM disputes
		WHERE transaction_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	record, err := scanDispute(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dispute for %s: %w", transactionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find dispute by transaction id: %w", err)
	}

	return record, nil
}

// ListAll returns every record in insertion order
func (r *disputeRepository) ListAll(ctx context.Context) ([]models.DisputeRecord, error) {
	query := `SELECT` + disputeColumns + `
		FROM disputes
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list disputes: %w", err)
	}
	defer rows.Close()

	records := make([]models.DisputeRecord, 0, 16)
	for rows.Next() {
		record, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dispute: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate disputes: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDispute(row rowScanner) (*models.DisputeRecord, error) {
	var (
		record      models.DisputeRecord
		aiDecision  sql.NullString
		confidence  sql.NullFloat64
		explanation sql.NullString
	)

	err := row.Scan(
		&record.ID,
		&record.TransactionID,
		&record.MerchantStatus,
		&record.BankStatus,
		&record.DisputeReason,
		&record.VerificationResult,
		&aiDecision,
		&confidence,
		&explanation,
		&record.FinalStatus,
		&record.RefundConfirmed,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if aiDecision.Valid {
		record.AIDecision = &aiDecision.String
	}
	if confidence.Valid {
		record.Confidence = &confidence.Float64
	}
	if explanation.Valid {
		record.Explanation = &explanation.String
	}

	return &record, nil
}
