/*
Package plan manages named what-if scenarios on top of the amort engine.

PURPOSE:
  A Plan is one explorable scenario: loan terms, a sparse map of extra
  payments, and a display mode. Users keep several plans open side by side
  and edit extra payments cell by cell or in bulk; every edit is followed by
  a fresh engine run. Plans live only for the lifetime of the process.

OWNERSHIP:
  Plans own their ExtraPayments map. The engine never mutates it; mutation
  goes through SetExtra / ApplyExtraToAll / ClearExtras so validation happens
  at the edit, not at calculation time.

SEE ALSO:
  - store.go: Plan storage interface and in-memory implementation
  - amort:    The pure calculation engine plans feed into
*/
package plan

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amort"
)

// =============================================================================
// DEFAULTS - Initial values for a freshly created plan
// =============================================================================

var (
	DefaultPrincipal  = decimal.NewFromInt(348300)
	DefaultAnnualRate = decimal.RequireFromString("6.75")
)

const DefaultTermMonths = 360 // 30 years

// =============================================================================
// PLAN
// =============================================================================

// Plan is a named amortization scenario.
type Plan struct {
	ID          string
	Name        string
	Terms       amort.LoanTerms
	Extras      amort.ExtraPayments
	DisplayMode amort.StartDisplayMode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a plan with the default terms and numbered labeling.
func New(id, name string) *Plan {
	now := time.Now().UTC()
	return &Plan{
		ID:   id,
		Name: name,
		Terms: amort.LoanTerms{
			Principal:         DefaultPrincipal,
			AnnualRatePercent: DefaultAnnualRate,
			TermMonths:        DefaultTermMonths,
		},
		Extras:      make(amort.ExtraPayments),
		DisplayMode: amort.Numbered(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetExtra records an extra payment for one period. A zero amount removes
// the entry so the map stays sparse.
func (p *Plan) SetExtra(period int, amount decimal.Decimal) error {
	if period < 0 || period >= p.Terms.TermMonths {
		return &amort.InvalidInputError{Field: "extra_payments", Reason: "period index out of range"}
	}
	if amount.IsNegative() {
		return &amort.InvalidInputError{Field: "extra_payments", Reason: "amount must not be negative"}
	}
	if p.Extras == nil {
		p.Extras = make(amort.ExtraPayments)
	}
	if amount.IsZero() {
		delete(p.Extras, period)
	} else {
		p.Extras[period] = amount
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyExtraToAll writes the same extra payment into every period of the
// loan, the bulk edit behind "apply to all rows".
func (p *Plan) ApplyExtraToAll(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &amort.InvalidInputError{Field: "extra_payments", Reason: "amount must not be negative"}
	}
	fresh := make(amort.ExtraPayments, p.Terms.TermMonths)
	if !amount.IsZero() {
		for i := 0; i < p.Terms.TermMonths; i++ {
			fresh[i] = amount
		}
	}
	p.Extras = fresh
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearExtras removes all extra payments.
func (p *Plan) ClearExtras() {
	p.Extras = make(amort.ExtraPayments)
	p.UpdatedAt = time.Now().UTC()
}

// Reset restores the default terms, clears extras, and returns to numbered
// labeling. The plan keeps its identity.
func (p *Plan) Reset() {
	p.Terms = amort.LoanTerms{
		Principal:         DefaultPrincipal,
		AnnualRatePercent: DefaultAnnualRate,
		TermMonths:        DefaultTermMonths,
	}
	p.Extras = make(amort.ExtraPayments)
	p.DisplayMode = amort.Numbered()
	p.UpdatedAt = time.Now().UTC()
}

// Schedule runs the engine for this plan's terms, extras, and display mode.
func (p *Plan) Schedule() (*amort.ScheduleResult, error) {
	return amort.Generate(p.Terms, p.Extras, p.DisplayMode)
}

// Comparison runs the baseline-vs-extras comparison for this plan.
func (p *Plan) Comparison() (*amort.ComparisonResult, error) {
	return amort.Compare(p.Terms, p.Extras)
}

// Clone returns a deep copy; the extras map is not shared.
func (p *Plan) Clone() *Plan {
	dup := *p
	dup.Extras = make(amort.ExtraPayments, len(p.Extras))
	for period, amount := range p.Extras {
		dup.Extras[period] = amount
	}
	return &dup
}
