package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/provider"
	"golang.org/x/sync/errgroup"
)

// ReconcileService compares what the bank and the merchant report for a
// transaction.
type ReconcileService struct {
	bank     provider.StatusProvider
	merchant provider.StatusProvider
	logger   *slog.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(bank, merchant provider.StatusProvider, logger *slog.Logger) *ReconcileService {
	return &ReconcileService{
		bank:     bank,
		merchant: merchant,
		logger:   logger,
	}
}

type lookup struct {
	err    error
	status models.TransactionStatus
}

// Reconcile asks both providers once, concurrently, and classifies the pair.
// Provider failures never escape: the affected side becomes UNKNOWN.
func (s *ReconcileService) Reconcile(ctx context.Context, transactionID string) models.VerificationOutcome {
	var bank, merchant lookup

	var g errgroup.Group
	g.Go(func() error {
		bank.status, bank.err = s.bank.Status(ctx, transactionID)
		return nil
	})
	g.Go(func() error {
		merchant.status, merchant.err = s.merchant.Status(ctx, transactionID)
		return nil
	})
	_ = g.Wait() //nolint:errcheck // lookups report through their own error fields

	s.logLookup(provider.SideBank, transactionID, bank)
	s.logLookup(provider.SideMerchant, transactionID, merchant)

	outcome := Classify(resolve(bank), resolve(merchant))
	switch outcome.ReasonCode {
	case models.ReasonTxnNotFound:
		switch {
		case bank.failed():
			outcome.ReasonCode = models.ReasonBankStatusUnavailable
		case merchant.failed():
			outcome.ReasonCode = models.ReasonMerchantStatusUnavailable
		}
	case models.ReasonBankStatusUnavailable:
		if isNotFound(bank.err) {
			outcome.ReasonCode = models.ReasonBankTxnNotFound
		}
	case models.ReasonMerchantStatusUnavailable:
		if isNotFound(merchant.err) {
			outcome.ReasonCode = models.ReasonMerchantTxnNotFound
		}
	}

	s.logger.Info("transaction reconciled",
		"transaction_id", transactionID,
		"bank_status", outcome.BankStatus,
		"merchant_status", outcome.MerchantStatus,
		"verification_result", outcome.VerificationResult,
		"reason_code", outcome.ReasonCode,
	)

	return outcome
}

func (s *ReconcileService) logLookup(side provider.Side, transactionID string, l lookup) {
	if !l.failed() {
		return
	}
	s.logger.Warn("status provider failed",
		"side", side,
		"transaction_id", transactionID,
		"error", l.err,
	)
}

// Classify maps a bank/merchant status pair to a verification outcome. It only
// sees statuses, so a one-sided UNKNOWN is reported as unavailable; Reconcile
// narrows it to *_TXN_NOT_FOUND when that provider had no record.
func Classify(bank, merchant models.TransactionStatus) models.VerificationOutcome {
	outcome := models.VerificationOutcome{
		BankStatus:         bank,
		MerchantStatus:     merchant,
		VerificationResult: models.VerificationEscalate,
	}

	switch {
	case bank == models.TransactionStatusUnknown && merchant == models.TransactionStatusUnknown:
		outcome.ReasonCode = models.ReasonTxnNotFound
	case bank == models.TransactionStatusUnknown:
		outcome.ReasonCode = models.ReasonBankStatusUnavailable
	case merchant == models.TransactionStatusUnknown:
		outcome.ReasonCode = models.ReasonMerchantStatusUnavailable
	case bank == models.TransactionStatusFailed && merchant == models.TransactionStatusSuccess:
		outcome.VerificationResult = models.VerificationRefundEligible
		outcome.ReasonCode = models.ReasonBankFailedMerchantSuccess
	case bank == models.TransactionStatusSuccess && merchant == models.TransactionStatusFailed:
		outcome.ReasonCode = models.ReasonBankSuccessMerchantFailed
	case bank == models.TransactionStatusSuccess && merchant == models.TransactionStatusSuccess:
		outcome.VerificationResult = models.VerificationRefundNotApplicable
		outcome.ReasonCode = models.ReasonBothSuccess
	default:
		outcome.ReasonCode = models.ReasonStatusUnresolved
	}

	return outcome
}

// failed reports a provider error other than a missing record
func (l lookup) failed() bool {
	return l.err != nil && !isNotFound(l.err)
}

func resolve(l lookup) models.TransactionStatus {
	if l.err != nil {
		return models.TransactionStatusUnknown
	}
	return models.ParseTransactionStatus(string(l.status))
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrTransactionNotFound)
}
