package models

// Final decisions produced by the decision engine. An accepted AI opinion may
// carry a value outside this set.
const (
	DecisionAutoRefund      = "AUTO_REFUND"
	DecisionUpdateStatus    = "UPDATE_STATUS"
	DecisionEscalate        = "ESCALATE"
	DecisionRefundInitiated = "REFUND_INITIATED"
)

// AIOpinion is an optional, lower-confidence recommendation.
type AIOpinion struct {
	Decision   string  `json:"decision"`
	Confidence float64 `json:"confidence"`
}

// Decision is the authoritative outcome of one dispute evaluation.
type Decision struct {
	FinalDecision string `json:"final_decision"`
	Reason        string `json:"reason"`
}

// OutcomeSummary is what the explanation generator is told about a decision.
type OutcomeSummary struct {
	FinalStatus    string            `json:"final_status"`
	BankStatus     TransactionStatus `json:"bank_status"`
	MerchantStatus TransactionStatus `json:"merchant_status"`
}

// ParsedInput is the structured form of a free-text complaint. PatternID is
// the id found by pattern in the raw text, kept even when the model's id won.
type ParsedInput struct {
	TransactionID *string `json:"transaction_id"`
	DisputeReason string  `json:"dispute_reason"`
	PatternID     string  `json:"-"`
}

// HasTransactionID reports whether a non-empty transaction id was extracted.
func (p ParsedInput) HasTransactionID() bool {
	return p.TransactionID != nil && *p.TransactionID != ""
}
