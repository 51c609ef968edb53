package models

import "time"

// DisputeRecord is the persisted result of one dispute evaluation. Records are
// appended, never updated.
type DisputeRecord struct {
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	AIDecision         *string            `json:"ai_decision" db:"ai_decision"`
	Confidence         *float64           `json:"confidence" db:"confidence"`
	Explanation        *string            `json:"explanation" db:"explanation"`
	TransactionID      string             `json:"transaction_id" db:"transaction_id"`
	MerchantStatus     TransactionStatus  `json:"merchant_status" db:"merchant_status"`
	BankStatus         TransactionStatus  `json:"bank_status" db:"bank_status"`
	DisputeReason      string             `json:"dispute_reason" db:"dispute_reason"`
	VerificationResult VerificationResult `json:"verification_result" db:"verification_result"`
	FinalStatus        string             `json:"final_status" db:"final_status"`
	ID                 int64              `json:"id" db:"id"`
	RefundConfirmed    bool               `json:"refund_confirmed" db:"refund_confirmed"`
}

// IdempotencyKey tracks processed requests to prevent duplicate evaluations
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	RequestHash    string    `db:"request_hash"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}
