package models

// TransactionStatus is a payment status as reported by a bank or merchant.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusUnknown TransactionStatus = "UNKNOWN"
)

// ParseTransactionStatus maps provider output onto the status vocabulary.
// Anything outside it is UNKNOWN.
func ParseTransactionStatus(s string) TransactionStatus {
	switch TransactionStatus(s) {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusPending:
		return TransactionStatus(s)
	default:
		return TransactionStatusUnknown
	}
}

// VerificationResult is the reconciler's classification of a status pair.
type VerificationResult string

const (
	VerificationRefundEligible      VerificationResult = "REFUND_ELIGIBLE"
	VerificationEscalate            VerificationResult = "ESCALATE"
	VerificationUpdateStatus        VerificationResult = "UPDATE_STATUS"
	VerificationRefundNotApplicable VerificationResult = "REFUND_NOT_APPLICABLE"
)

// Reason codes attached to a VerificationOutcome
const (
	ReasonTxnNotFound               = "TXN_NOT_FOUND"
	ReasonBankFailedMerchantSuccess = "BANK_FAILED_MERCHANT_SUCCESS"
	ReasonBankSuccessMerchantFailed = "BANK_SUCCESS_MERCHANT_FAILED"
	ReasonBothSuccess               = "BOTH_SUCCESS"
	ReasonStatusUnresolved          = "STATUS_UNRESOLVED"
	ReasonBankStatusUnavailable     = "BANK_STATUS_UNAVAILABLE"
	ReasonMerchantStatusUnavailable = "MERCHANT_STATUS_UNAVAILABLE"
	ReasonBankTxnNotFound           = "BANK_TXN_NOT_FOUND"
	ReasonMerchantTxnNotFound       = "MERCHANT_TXN_NOT_FOUND"
)

// VerificationOutcome is produced once per reconciliation call and never cached.
type VerificationOutcome struct {
	BankStatus         TransactionStatus  `json:"bank_status"`
	MerchantStatus     TransactionStatus  `json:"merchant_status"`
	VerificationResult VerificationResult `json:"verification_result"`
	ReasonCode         string             `json:"reason_code"`
}
