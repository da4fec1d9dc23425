// Package fault defines the error taxonomy shared by every pipeline stage.
// All failures surfaced to callers carry a machine-readable Kind so the
// serving layer can map them to stable response codes without string matching.
package fault

import (
	"errors"
	"fmt"
)

type Kind string

const (
	EmptyPayload        Kind = "EMPTY_PAYLOAD"
	PayloadTooLarge     Kind = "PAYLOAD_TOO_LARGE"
	UnsupportedFormat   Kind = "UNSUPPORTED_FORMAT"
	DurationOutOfRange  Kind = "DURATION_OUT_OF_RANGE"
	InsufficientSignal  Kind = "INSUFFICIENT_SIGNAL"
	UnsupportedLanguage Kind = "UNSUPPORTED_LANGUAGE"
	ScoringUnavailable  Kind = "SCORING_UNAVAILABLE"
	ProcessingTimeout   Kind = "PROCESSING_TIMEOUT"
	Internal            Kind = "INTERNAL_ERROR"
)

// Error is the typed error returned across the pipeline boundary. Op names
// the failing stage, Message is safe to show to callers and never contains
// feature values or model internals.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and operation to an underlying cause. If the cause is
// already a *Error it is returned unchanged so the original kind survives
// intermediate layers.
func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: err}
}

// KindOf extracts the Kind from an error chain, or Internal when the chain
// carries no typed error.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return Internal
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage returns the caller-safe message for an error chain. Untyped
// errors collapse to a generic message so internals never leak.
func PublicMessage(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Message
	}
	return "internal processing error"
}
