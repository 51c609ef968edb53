package models

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatusInitiated is the only terminal state the refund trigger reports.
const RefundStatusInitiated = "REFUND_INITIATED"

// RefundRecord confirms a refund for a transaction. One record exists per
// transaction id no matter how often the refund is triggered.
type RefundRecord struct {
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	RefundStatus  string    `json:"refund_status" db:"refund_status"`
	Message       string    `json:"message" db:"message"`
	RefundID      uuid.UUID `json:"refund_id" db:"refund_id"`
}
