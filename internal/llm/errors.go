package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureKind classifies why a language-model call produced no usable output
type FailureKind string

const (
	FailureTimeout     FailureKind = "timeout"
	FailureMalformed   FailureKind = "malformed"
	FailureUnreachable FailureKind = "unreachable"
	FailureEmpty       FailureKind = "empty"
)

// Error is returned by every failing call into the language model
type Error struct {
	Err  error
	Kind FailureKind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
	}
	return "llm " + string(e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind FailureKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the failure kind of err. Errors that are not *Error are
// classified as timeouts when they stem from a deadline, unreachable otherwise.
func KindOf(err error) FailureKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	if isTimeout(err) {
		return FailureTimeout
	}
	return FailureUnreachable
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
