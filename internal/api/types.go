package api

import (
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/google/uuid"
)

// ErrorCode is the machine-readable error in an ErrorResponse
type ErrorCode string

// Defines values for ErrorCode.
const (
	ErrorCodeInvalidRequest       ErrorCode = "invalid_request"
	ErrorCodeInvalidTransactionID ErrorCode = "invalid_transaction_id"
	ErrorCodeInvalidDisputeReason ErrorCode = "invalid_dispute_reason"
	ErrorCodeNotFound             ErrorCode = "not_found"
	ErrorCodeDisputeNotFound      ErrorCode = "dispute_not_found"
	ErrorCodeInternalError        ErrorCode = "internal_error"
	ErrorCodeServiceUnavailable   ErrorCode = "service_unavailable"
	ErrorCodeIdempotencyKeyReused ErrorCode = "idempotency_key_reused"
)

// HealthStatus reports whether the service can reach its store
type HealthStatus string

// Defines values for HealthStatus.
const (
	Healthy   HealthStatus = "healthy"
	Unhealthy HealthStatus = "unhealthy"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error   ErrorCode `json:"error"`
	Message string    `json:"message"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status HealthStatus `json:"status"`
}

// CreateDisputeRequest carries either a free-text message or a structured dispute
type CreateDisputeRequest struct {
	Message       *string `json:"message,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
	DisputeReason *string `json:"dispute_reason,omitempty"`
}

// DirectDisputeRequest defines model for DirectDisputeRequest.
type DirectDisputeRequest struct {
	DisputeReason *string `json:"dispute_reason,omitempty"`
	TransactionID string  `json:"transaction_id"`
}

// Refund defines model for Refund.
type Refund struct {
	CreatedAt     time.Time `json:"created_at"`
	TransactionID string    `json:"transaction_id"`
	RefundStatus  string    `json:"refund_status"`
	Message       string    `json:"message"`
	RefundID      uuid.UUID `json:"refund_id"`
}

// DisputeResponse is either NEED_MORE_INFO with questions or a terminal result
type DisputeResponse struct {
	TransactionID *string  `json:"transaction_id,omitempty"`
	Explanation   *string  `json:"explanation,omitempty"`
	Refund        *Refund  `json:"refund,omitempty"`
	Status        string   `json:"status"`
	Questions     []string `json:"questions,omitempty"`
}

// DirectDisputeResponse defines model for DirectDisputeResponse.
type DirectDisputeResponse struct {
	Refund             *Refund                   `json:"refund,omitempty"`
	TransactionID      string                    `json:"transaction_id"`
	VerificationResult models.VerificationResult `json:"verification_result"`
	ReasonCode         string                    `json:"reason_code"`
	Status             string                    `json:"status"`
}

// TransactionStatusResponse is returned by the sample bank and merchant services
type TransactionStatusResponse struct {
	TransactionID string                   `json:"transaction_id"`
	Status        models.TransactionStatus `json:"status"`
}

// NewRefund converts a stored refund to its API form
func NewRefund(r *models.RefundRecord) *Refund {
	if r == nil {
		return nil
	}
	return &Refund{
		RefundID:      r.RefundID,
		TransactionID: r.TransactionID,
		RefundStatus:  r.RefundStatus,
		Message:       r.Message,
		CreatedAt:     r.CreatedAt,
	}
}
