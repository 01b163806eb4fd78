/*
errors.go - Error types for the amortization engine

ERROR CATEGORIES:
  1. InvalidInput - Rejected caller input (non-positive principal, negative
     rate, bad term, malformed start date). Raised synchronously before any
     row is produced; safe to surface as field-level validation feedback.
  2. Schedule divergence - The payoff loop would run past the loan term, or
     the solved payment fails its self-check. This indicates an internal
     inconsistency, not a user error, and is never silently suppressed.

USAGE:
  Callers classify with errors.Is / the helpers below:

    if amort.IsInvalidInput(err) {
        // 400-class: report the offending field
    }
*/
package amort

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is the base error for all input validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScheduleDiverged is returned when the payoff loop or the payment
	// solver violates an internal invariant. Deterministic inputs make this
	// unreachable in practice; if it fires, the engine has a bug.
	ErrScheduleDiverged = errors.New("schedule diverged from loan term")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidInputError identifies which input field was rejected and why.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInvalidInput returns true if the error is due to invalid caller input.
// A failed call with unchanged inputs will fail identically; never retry.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
