package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

const (
	// FallbackDisputeReason is used when the complaint could not be parsed
	FallbackDisputeReason = "unable to parse"

	// DefaultClarifyingQuestion is asked when the model cannot phrase one
	DefaultClarifyingQuestion = "Please provide the transaction ID to proceed."
)

// transactionIDPattern matches ids introduced by a known marker, either
// separated from it (UTR: 4471-99) or glued to it (TXN1002). A glued id must
// contain a digit so words like "tidings" are not read as ids.
var transactionIDPattern = regexp.MustCompile(
	`(?i)\b(TXN|UTR|TID|TX)(?:([\s:#\-]+)([A-Za-z0-9_\-]{3,})|([A-Za-z0-9_\-]*[0-9][A-Za-z0-9_\-]*))\b`,
)

const minGluedIDLength = 3

// MatchTransactionID returns the first transaction id found by pattern, or "".
func MatchTransactionID(text string) string {
	for _, m := range transactionIDPattern.FindAllStringSubmatch(text, -1) {
		marker, separated, glued := m[1], m[3], m[4]
		switch {
		case separated != "":
			return separated
		case len(glued) >= minGluedIDLength:
			return strings.ToUpper(marker) + glued
		}
	}
	return ""
}

// InterpretFallback is the parse result used when the model gives nothing usable.
func InterpretFallback(patternID string) models.ParsedInput {
	parsed := models.ParsedInput{DisputeReason: FallbackDisputeReason, PatternID: patternID}
	if patternID != "" {
		parsed.TransactionID = &patternID
	}
	return parsed
}

const extractPrompt = `You are a payment dispute assistant.

Extract structured information from the customer complaint below.

Complaint:
%q

Return ONLY valid JSON in exactly this shape:
{"transaction_id": "<transaction id or null>", "dispute_reason": "<short standardized reason>"}

Rules:
- No explanation and no markdown
- If no transaction id is mentioned, use null
- Keep dispute_reason short and generic
`

const followupPrompt = `You are a support assistant for payment disputes.

A transaction id is required before the dispute can be checked.

What we know so far:
%s

Rules:
- Ask ONLY for the transaction id
- Do not ask about the merchant, order, date or anything else
- Ask at most ONE short question

Return ONLY valid JSON: {"questions": ["<question>"]}
`

type extraction struct {
	TransactionID any    `json:"transaction_id"`
	DisputeReason string `json:"dispute_reason"`
}

type followups struct {
	Questions []string `json:"questions"`
}

// Interpreter turns free text into a ParsedInput and asks for a missing
// transaction id. Model failures never escape it.
type Interpreter struct {
	llm        Generator
	logger     *slog.Logger
	validateID func(string) error
	timeout    time.Duration
}

// InterpreterOption configures an Interpreter
type InterpreterOption func(*Interpreter)

// WithIDValidator rejects ids the caller cannot use. A rejected model id is
// treated as missing, and a rejected pattern match is dropped.
func WithIDValidator(validate func(string) error) InterpreterOption {
	return func(i *Interpreter) {
		i.validateID = validate
	}
}

// NewInterpreter creates an Interpreter whose model calls are bounded by timeout
func NewInterpreter(gen Generator, timeout time.Duration, logger *slog.Logger, opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{
		llm:        gen,
		logger:     logger,
		validateID: func(string) error { return nil },
		timeout:    timeout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret extracts the transaction id and dispute reason from text. A
// pattern-matched id fills in for one the model missed or got wrong.
func (i *Interpreter) Interpret(ctx context.Context, text string) models.ParsedInput {
	patternID := MatchTransactionID(text)
	if patternID != "" {
		if err := i.validateID(patternID); err != nil {
			i.logger.Debug("pattern match rejected", "transaction_id", patternID, "error", err)
			patternID = ""
		}
	}

	parsed, err := i.extract(ctx, text)
	if err != nil {
		i.logger.Warn("input interpretation degraded",
			"failure", KindOf(err),
			"pattern_match", patternID != "",
			"error", err,
		)
		return InterpretFallback(patternID)
	}

	if parsed.HasTransactionID() {
		if err := i.validateID(*parsed.TransactionID); err != nil {
			i.logger.Warn("model transaction id rejected",
				"transaction_id", *parsed.TransactionID,
				"pattern_match", patternID != "",
				"error", err,
			)
			parsed.TransactionID = nil
		}
	}

	parsed.PatternID = patternID
	if !parsed.HasTransactionID() && patternID != "" {
		parsed.TransactionID = &patternID
	}
	return parsed
}

// Followups returns at most one question, and only when the transaction id is missing.
func (i *Interpreter) Followups(ctx context.Context, parsed models.ParsedInput) []string {
	if parsed.HasTransactionID() {
		return nil
	}

	question, err := i.askForTransactionID(ctx, parsed)
	if err != nil {
		i.logger.Warn("clarifying question degraded", "failure", KindOf(err), "error", err)
		return []string{DefaultClarifyingQuestion}
	}
	return []string{question}
}

func (i *Interpreter) extract(ctx context.Context, text string) (models.ParsedInput, error) {
	raw, err := i.call(ctx, fmt.Sprintf(extractPrompt, text))
	if err != nil {
		return models.ParsedInput{}, err
	}

	var ex extraction
	if err := ExtractJSON(raw, &ex); err != nil {
		return models.ParsedInput{}, err
	}

	parsed := models.ParsedInput{DisputeReason: strings.TrimSpace(ex.DisputeReason)}
	if id := normalizeID(ex.TransactionID); id != "" {
		parsed.TransactionID = &id
	}
	return parsed, nil
}

func (i *Interpreter) askForTransactionID(ctx context.Context, parsed models.ParsedInput) (string, error) {
	known, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return "", newError(FailureMalformed, err)
	}

	raw, err := i.call(ctx, fmt.Sprintf(followupPrompt, known))
	if err != nil {
		return "", err
	}

	var f followups
	if err := ExtractJSON(raw, &f); err != nil {
		return "", err
	}

	for _, q := range f.Questions {
		if q = strings.TrimSpace(q); q != "" {
			return q, nil
		}
	}
	return "", newError(FailureEmpty, errors.New("no question in model response"))
}

func (i *Interpreter) call(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	raw, err := i.llm.Generate(callCtx, Request{Prompt: prompt, JSON: true})
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", newError(FailureTimeout, err)
	}
	return raw, err
}

// normalizeID accepts string or numeric ids and drops null-like placeholders.
func normalizeID(v any) string {
	var id string
	switch t := v.(type) {
	case string:
		id = strings.TrimSpace(t)
	case float64:
		id = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}

	switch strings.ToLower(id) {
	case "", "null", "none", "n/a", "unknown":
		return ""
	}
	return id
}
