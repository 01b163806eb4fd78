/*
Package amort is the amortization schedule engine.

PURPOSE:
  This package contains the pure calculation and date-labeling logic for
  fixed-rate installment loans: interest accrual, balance reduction, early
  payoff detection, and calendar-vs-numbered period labeling. It turns
  (principal, annual rate, term, per-period extra payments, start-date mode)
  into a row-by-row payment table and aggregate totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - LoanTerms: Immutable loan parameters for one calculation request
  - ExtraPayments: Sparse map of per-period extra principal payments
  - ScheduleRow/ScheduleResult: One payment period / the full table
  - ComparisonResult: Baseline vs with-extra-payments run

DESIGN PRINCIPLES:
  1. Purity: Every operation is a deterministic function of its inputs.
     The engine holds no state between calls and never mutates its inputs.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors.
     All money values are rounded to cents where the schedule requires it.
  3. Validation-first: Invalid input is rejected before any row is produced,
     so a caller either gets a complete valid result or a single rejection.

USAGE:
  terms := amort.LoanTerms{
      Principal:         decimal.NewFromInt(10000),
      AnnualRatePercent: decimal.NewFromInt(6),
      TermMonths:        12,
  }
  result, err := amort.Generate(terms, nil, amort.Numbered())

SEE ALSO:
  - schedule.go: The period-by-period generation loop
  - payment.go:  Fixed payment solver
  - label.go:    Period labeling modes
  - compare.go:  Baseline comparison
*/
package amort

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// BOUNDS
// =============================================================================

// MaxTermMonths bounds the payoff loop. 100 years covers every realistic
// installment loan; anything longer is rejected as invalid input.
const MaxTermMonths = 1200

// =============================================================================
// LOAN TERMS - Immutable input for one calculation request
// =============================================================================

// LoanTerms describes a fixed-rate installment loan.
type LoanTerms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
}

// Validate checks the terms. Violations are reported as InvalidInputError.
func (t LoanTerms) Validate() error {
	if !t.Principal.IsPositive() {
		return &InvalidInputError{Field: "principal", Reason: "must be positive"}
	}
	if t.AnnualRatePercent.IsNegative() {
		return &InvalidInputError{Field: "annual_rate_percent", Reason: "must not be negative"}
	}
	if t.TermMonths <= 0 {
		return &InvalidInputError{Field: "term_months", Reason: "must be positive"}
	}
	if t.TermMonths > MaxTermMonths {
		return &InvalidInputError{Field: "term_months", Reason: "exceeds maximum of 1200 months"}
	}
	return nil
}

// =============================================================================
// EXTRA PAYMENTS - Sparse per-period extra principal
// =============================================================================

// ExtraPayments maps a zero-based period index to an extra amount applied to
// principal reduction in that period. Absent entries mean zero. The map is
// owned by the caller; the engine reads it and never mutates it.
type ExtraPayments map[int]decimal.Decimal

// Get returns the extra payment for a period, zero if absent. Safe on nil.
func (e ExtraPayments) Get(period int) decimal.Decimal {
	if e == nil {
		return decimal.Zero
	}
	if extra, ok := e[period]; ok {
		return extra
	}
	return decimal.Zero
}

// Validate checks every entry against the loan term.
func (e ExtraPayments) Validate(termMonths int) error {
	for period, extra := range e {
		if period < 0 || period >= termMonths {
			return &InvalidInputError{Field: "extra_payments", Reason: "period index out of range"}
		}
		if extra.IsNegative() {
			return &InvalidInputError{Field: "extra_payments", Reason: "amount must not be negative"}
		}
	}
	return nil
}

// =============================================================================
// SCHEDULE - One row per payment period
// =============================================================================

// ScheduleRow is a single payment period.
//
// Invariants:
//   InterestPortion  = round(BeginningBalance * monthlyRate, 2)
//   PrincipalPortion = ScheduledPayment + ExtraPayment - InterestPortion
//   EndingBalance    = max(BeginningBalance - PrincipalPortion, 0)
// The final row's total payment exactly retires the balance; the engine
// never overpays beyond what is owed.
type ScheduleRow struct {
	Period           int
	Label            string
	BeginningBalance decimal.Decimal
	ScheduledPayment decimal.Decimal
	ExtraPayment     decimal.Decimal
	InterestPortion  decimal.Decimal
	PrincipalPortion decimal.Decimal
	EndingBalance    decimal.Decimal
}

// ScheduleResult is a complete amortization run. Rows are in payoff order,
// index-ascending. Produced fresh per calculation and never mutated after
// construction.
type ScheduleResult struct {
	Rows              []ScheduleRow
	TotalInterestPaid decimal.Decimal
	TotalPaid         decimal.Decimal
	MonthsToPayoff    int
}

// =============================================================================
// COMPARISON - Baseline vs with-extra-payments
// =============================================================================

// ComparisonResult pairs a baseline run (no extra payments) with a
// with-extras run of the same terms. Derived fields are read-only.
type ComparisonResult struct {
	Baseline      *ScheduleResult
	WithExtra     *ScheduleResult
	InterestSaved decimal.Decimal
	MonthsSaved   int
}
