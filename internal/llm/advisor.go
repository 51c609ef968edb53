package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

const advisePrompt = `You are reviewing a payment dispute where the bank and merchant records do not settle it.

Bank status: %s
Merchant status: %s
Customer reason: %q

Choose one decision: AUTO_REFUND, UPDATE_STATUS or ESCALATE.
Give your confidence between 0 and 1.

Return ONLY valid JSON: {"decision": "<decision>", "confidence": <number>}
`

// Advisor asks the model for a recommendation on disputes the rules cannot settle.
type Advisor struct {
	llm     Generator
	timeout time.Duration
}

// NewAdvisor creates an Advisor whose model calls are bounded by timeout
func NewAdvisor(gen Generator, timeout time.Duration) *Advisor {
	return &Advisor{llm: gen, timeout: timeout}
}

// Opinion returns the model's recommendation
func (a *Advisor) Opinion(ctx context.Context, outcome models.VerificationOutcome, reason string) (*models.AIOpinion, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(advisePrompt, outcome.BankStatus, outcome.MerchantStatus, reason)
	raw, err := a.llm.Generate(callCtx, Request{Prompt: prompt, JSON: true})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, newError(FailureTimeout, err)
		}
		return nil, err
	}

	var opinion models.AIOpinion
	if err := ExtractJSON(raw, &opinion); err != nil {
		return nil, err
	}

	opinion.Decision = strings.TrimSpace(opinion.Decision)
	if opinion.Decision == "" {
		return nil, newError(FailureMalformed, errors.New("opinion has no decision"))
	}
	if opinion.Confidence < 0 || opinion.Confidence > 1 {
		return nil, newError(FailureMalformed, fmt.Errorf("confidence %v outside [0,1]", opinion.Confidence))
	}

	return &opinion, nil
}
