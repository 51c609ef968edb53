package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

// Degraded explanations, one per rung of the fallback ladder
const (
	FallbackEmptyExplanation = "Your refund has been initiated. " +
		"Please allow some time for the amount to be credited back."
	FallbackTimeoutExplanation = "Your transaction has been verified and the refund process has been initiated. " +
		"The amount will be credited back to your account shortly."
	FallbackGenericExplanation = "Your request has been received and is currently being processed. " +
		"Please check back shortly for an update."
)

// ExplanationFallback picks the degraded explanation for a failure kind.
func ExplanationFallback(kind FailureKind) string {
	switch kind {
	case FailureEmpty:
		return FallbackEmptyExplanation
	case FailureTimeout:
		return FallbackTimeoutExplanation
	default:
		return FallbackGenericExplanation
	}
}

const explainPrompt = `You are a payment support assistant writing to a customer about their dispute.

Explain the outcome below in at most 3 short sentences.

Rules:
- State only what happened and what happens next
- No greetings and no reassurance paragraphs
- Do not mention internal systems, rules or models

Outcome:
%s
`

// Explainer turns a dispute outcome into customer-facing text. It never
// returns an empty string or an error.
type Explainer struct {
	llm     Generator
	logger  *slog.Logger
	timeout time.Duration
}

// NewExplainer creates an Explainer whose model calls are bounded by timeout
func NewExplainer(gen Generator, timeout time.Duration, logger *slog.Logger) *Explainer {
	return &Explainer{
		llm:     gen,
		logger:  logger,
		timeout: timeout,
	}
}

// Explain returns the model's explanation, or a fallback when the model is
// slow, silent or failing.
func (e *Explainer) Explain(ctx context.Context, summary models.OutcomeSummary) string {
	text, err := e.generate(ctx, summary)
	if err != nil {
		kind := KindOf(err)
		e.logger.Warn("explanation degraded",
			"final_status", summary.FinalStatus,
			"failure", kind,
			"error", err,
		)
		return ExplanationFallback(kind)
	}
	return text
}

func (e *Explainer) generate(ctx context.Context, summary models.OutcomeSummary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", newError(FailureMalformed, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.llm.Generate(callCtx, Request{Prompt: fmt.Sprintf(explainPrompt, data)})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", newError(FailureTimeout, err)
		}
		return "", err
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", newError(FailureEmpty, nil)
	}
	return text, nil
}
