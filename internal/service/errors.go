package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidRequest       = "invalid_request"
	ErrCodeInvalidTransactionID = "invalid_transaction_id"
	ErrCodeInvalidReason        = "invalid_dispute_reason"
	ErrCodeDisputeNotFound      = "dispute_not_found"
	ErrCodeRefundFailed         = "refund_failed"
	ErrCodeStorageFailure       = "storage_failure"
	ErrCodeInternalError        = "internal_error"
)
