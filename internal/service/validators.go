package service

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTransactionIDLength = 64
	maxDisputeReasonLength = 500
)

// ValidateTransactionID checks the id is present and uses a safe charset
func ValidateTransactionID(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return fmt.Errorf("transaction_id is required")
	}

	if len(transactionID) > maxTransactionIDLength {
		return fmt.Errorf("transaction_id must be at most %d characters", maxTransactionIDLength)
	}

	for _, r := range transactionID {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum && r != '-' && r != '_' {
			return fmt.Errorf("transaction_id may only contain letters, digits, '-' and '_'")
		}
	}

	return nil
}

// ValidateDisputeReason bounds the free-text reason stored with a dispute
func ValidateDisputeReason(reason string) error {
	if utf8.RuneCountInString(reason) > maxDisputeReasonLength {
		return fmt.Errorf("dispute_reason must be at most %d characters", maxDisputeReasonLength)
	}
	return nil
}
