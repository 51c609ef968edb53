// Package provider implements the bank and merchant transaction status sources.
package provider

import (
	"context"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

// StatusProvider reports the status of a transaction as one side sees it.
// Implementations return models.ErrTransactionNotFound when they have no record.
type StatusProvider interface {
	Status(ctx context.Context, transactionID string) (models.TransactionStatus, error)
}

// Side names which party a provider speaks for
type Side string

const (
	SideBank     Side = "bank"
	SideMerchant Side = "merchant"
)

var (
	_ StatusProvider = (*Table)(nil)
	_ StatusProvider = (*HTTPProvider)(nil)
)
