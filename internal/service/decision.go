package service

import "github.com/benx421/payment-gateway/disputes/internal/models"

// AIConfidenceThreshold is the minimum confidence at which an AI opinion is
// adopted. The comparison is inclusive.
const AIConfidenceThreshold = 0.80

// Rule reasons
const (
	ReasonRuleBankFailure    = "Rule-based override: Bank failure with merchant success"
	ReasonRuleBankSuccess    = "Rule-based override: Bank success with merchant failure"
	ReasonBothEndsSuccessful = "Payment successful at both ends"
	ReasonAIAccepted         = "AI decision accepted (high confidence)"
	ReasonLowConfidence      = "Low AI confidence, manual review required"
)

type decisionRule struct {
	matches func(bank, merchant models.TransactionStatus, ai *models.AIOpinion) bool
	decide  func(ai *models.AIOpinion) models.Decision

	// statusOnly rules look at bank and merchant status alone
	statusOnly bool
}

func statusPair(bank, merchant models.TransactionStatus) func(models.TransactionStatus, models.TransactionStatus, *models.AIOpinion) bool {
	return func(b, m models.TransactionStatus, _ *models.AIOpinion) bool {
		return b == bank && m == merchant
	}
}

func fixed(finalDecision, reason string) func(*models.AIOpinion) models.Decision {
	return func(*models.AIOpinion) models.Decision {
		return models.Decision{FinalDecision: finalDecision, Reason: reason}
	}
}

// decisionRules is evaluated in order; the first match wins.
var decisionRules = []decisionRule{
	{
		matches:    statusPair(models.TransactionStatusFailed, models.TransactionStatusSuccess),
		decide:     fixed(models.DecisionAutoRefund, ReasonRuleBankFailure),
		statusOnly: true,
	},
	{
		matches:    statusPair(models.TransactionStatusSuccess, models.TransactionStatusFailed),
		decide:     fixed(models.DecisionUpdateStatus, ReasonRuleBankSuccess),
		statusOnly: true,
	},
	{
		matches:    statusPair(models.TransactionStatusSuccess, models.TransactionStatusSuccess),
		decide:     fixed(models.DecisionEscalate, ReasonBothEndsSuccessful),
		statusOnly: true,
	},
	{
		matches: func(_, _ models.TransactionStatus, ai *models.AIOpinion) bool {
			return ai != nil && ai.Confidence >= AIConfidenceThreshold
		},
		decide: func(ai *models.AIOpinion) models.Decision {
			return models.Decision{FinalDecision: ai.Decision, Reason: ReasonAIAccepted}
		},
	},
	{
		matches: func(models.TransactionStatus, models.TransactionStatus, *models.AIOpinion) bool { return true },
		decide:  fixed(models.DecisionEscalate, ReasonLowConfidence),
	},
}

// Decide maps a status pair and an optional AI opinion to the final decision.
// It is pure and total: a nil opinion counts as zero confidence.
func Decide(merchant, bank models.TransactionStatus, ai *models.AIOpinion) models.Decision {
	for _, rule := range decisionRules {
		if rule.matches(bank, merchant, ai) {
			return rule.decide(ai)
		}
	}
	// unreachable: the last rule always matches
	return models.Decision{FinalDecision: models.DecisionEscalate, Reason: ReasonLowConfidence}
}

// SettledByStatus reports whether the status pair alone decides the outcome,
// in which case an AI opinion would be ignored.
func SettledByStatus(merchant, bank models.TransactionStatus) bool {
	for _, rule := range decisionRules {
		if !rule.statusOnly {
			return false
		}
		if rule.matches(bank, merchant, nil) {
			return true
		}
	}
	return false
}
