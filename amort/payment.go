/*
payment.go - Fixed payment solver

Solves the constant monthly payment that amortizes a principal over the loan
term at a fixed monthly rate:

  payment = principal * rate / (1 - (1 + rate)^-term)    (rate > 0)
  payment = principal / term                             (rate == 0)

The formula alone is not trusted: rounding error accumulates over many
periods, so the solver simulates the full term and requires the residual
balance to land within one cent of zero before returning.
*/
package amort

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FixedPayment computes the fixed baseline monthly payment, rounded to
// cents. The unrounded solution is verified by simulation: termMonths
// payments at monthlyRate must drive the balance to within one cent of
// zero, otherwise ErrScheduleDiverged is returned.
func FixedPayment(principal, monthlyRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, &InvalidInputError{Field: "principal", Reason: "must be positive"}
	}
	if termMonths <= 0 {
		return decimal.Zero, &InvalidInputError{Field: "term_months", Reason: "must be positive"}
	}
	if monthlyRate.IsNegative() {
		return decimal.Zero, &InvalidInputError{Field: "annual_rate_percent", Reason: "must not be negative"}
	}

	term := decimal.NewFromInt(int64(termMonths))

	if monthlyRate.IsZero() {
		// Straight-line, no interest.
		return principal.Div(term).Round(2), nil
	}

	compound, err := one.Add(monthlyRate).PowInt32(int32(termMonths))
	if err != nil {
		return decimal.Zero, fmt.Errorf("payment solver: %w", ErrScheduleDiverged)
	}
	raw := principal.Mul(monthlyRate).Div(one.Sub(one.Div(compound)))

	if residual := simulateResidual(principal, monthlyRate, raw, termMonths); residual.Abs().GreaterThan(centTolerance) {
		return decimal.Zero, fmt.Errorf("payment solver self-check failed: residual %s after %d payments: %w",
			residual, termMonths, ErrScheduleDiverged)
	}

	return raw.Round(2), nil
}

// simulateResidual returns the balance left after n payments of the given
// amount. Balances are rounded to six decimal places per period, which
// bounds coefficient growth while staying four orders of magnitude below
// the cent tolerance.
func simulateResidual(principal, monthlyRate, payment decimal.Decimal, n int) decimal.Decimal {
	balance := principal
	for i := 0; i < n; i++ {
		balance = balance.Add(balance.Mul(monthlyRate)).Sub(payment).Round(6)
	}
	return balance
}
