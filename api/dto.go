/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the decimal-based domain model from the external API contract: amounts
  travel as JSON numbers, period indices as integer-keyed maps.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Structural validation (types, JSON shape) happens here; domain validation
  (positive principal, period ranges, ...) belongs to the amort package and
  surfaces as field-level InvalidInput errors.

SEE ALSO:
  - handlers.go: Uses these types
  - amort:       Domain model these types convert to/from
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amort"
	"github.com/warp/amortization-engine/plan"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoanTermsDTO carries the loan parameters.
type LoanTermsDTO struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermMonths        int     `json:"term_months"`
}

// DisplayModeDTO selects period labeling. Display is "numbered" (default)
// or "calendar"; alignment is "loan_start" (default) or "calendar_year".
type DisplayModeDTO struct {
	Display       string `json:"display,omitempty"`
	StartMonth    int    `json:"start_month,omitempty"`
	StartYear     int    `json:"start_year,omitempty"`
	YearAlignment string `json:"year_alignment,omitempty"`
}

// ScheduleRequest is the body for POST /api/schedule.
type ScheduleRequest struct {
	LoanTermsDTO
	ExtraPayments map[int]float64 `json:"extra_payments,omitempty"`
	DisplayMode   DisplayModeDTO  `json:"display_mode,omitempty"`
}

// CompareRequest is the body for POST /api/schedule/compare.
type CompareRequest struct {
	LoanTermsDTO
	ExtraPayments map[int]float64 `json:"extra_payments,omitempty"`
}

// CreatePlanRequest creates a plan; zero-value fields fall back to the
// defaults (348300 at 6.75% over 360 months, auto-generated name).
type CreatePlanRequest struct {
	Name              string  `json:"name,omitempty"`
	Principal         float64 `json:"principal,omitempty"`
	AnnualRatePercent float64 `json:"annual_rate_percent,omitempty"`
	TermMonths        int     `json:"term_months,omitempty"`
}

// UpdatePlanRequest replaces a plan's terms and display mode. Extras that
// fall outside a shortened term are dropped.
type UpdatePlanRequest struct {
	Name        string          `json:"name,omitempty"`
	Terms       *LoanTermsDTO   `json:"terms,omitempty"`
	DisplayMode *DisplayModeDTO `json:"display_mode,omitempty"`
	Reset       bool            `json:"reset,omitempty"`
}

// UpdateExtrasRequest edits a plan's extra payments. ApplyToAll writes one
// amount into every period (the bulk header edit); Extras sets individual
// cells, zero removing an entry. ApplyToAll runs first.
type UpdateExtrasRequest struct {
	ApplyToAll *float64        `json:"apply_to_all,omitempty"`
	Extras     map[int]float64 `json:"extras,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ScheduleRowDTO is one payment period.
type ScheduleRowDTO struct {
	Period           int     `json:"period"`
	Label            string  `json:"label"`
	BeginningBalance float64 `json:"beginning_balance"`
	ScheduledPayment float64 `json:"scheduled_payment"`
	ExtraPayment     float64 `json:"extra_payment"`
	InterestPortion  float64 `json:"interest_portion"`
	PrincipalPortion float64 `json:"principal_portion"`
	EndingBalance    float64 `json:"ending_balance"`
}

// ScheduleResultDTO is a complete amortization run.
type ScheduleResultDTO struct {
	Rows              []ScheduleRowDTO `json:"rows"`
	TotalInterestPaid float64          `json:"total_interest_paid"`
	TotalPaid         float64          `json:"total_paid"`
	MonthsToPayoff    int              `json:"months_to_payoff"`
}

// ComparisonDTO pairs the baseline and with-extras runs.
type ComparisonDTO struct {
	Baseline      ScheduleResultDTO `json:"baseline"`
	WithExtra     ScheduleResultDTO `json:"with_extra"`
	InterestSaved float64           `json:"interest_saved"`
	MonthsSaved   int               `json:"months_saved"`
}

// PlanDTO represents a stored plan.
type PlanDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Terms       LoanTermsDTO    `json:"terms"`
	Extras      map[int]float64 `json:"extras"`
	DisplayMode DisplayModeDTO  `json:"display_mode"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// PlanScheduleDTO is a plan together with its computed schedule and the
// baseline comparison.
type PlanScheduleDTO struct {
	Plan       PlanDTO           `json:"plan"`
	Schedule   ScheduleResultDTO `json:"schedule"`
	Comparison ComparisonDTO     `json:"comparison"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func (d LoanTermsDTO) toTerms() amort.LoanTerms {
	return amort.LoanTerms{
		Principal:         decimal.NewFromFloat(d.Principal),
		AnnualRatePercent: decimal.NewFromFloat(d.AnnualRatePercent),
		TermMonths:        d.TermMonths,
	}
}

func toTermsDTO(t amort.LoanTerms) LoanTermsDTO {
	return LoanTermsDTO{
		Principal:         t.Principal.InexactFloat64(),
		AnnualRatePercent: t.AnnualRatePercent.InexactFloat64(),
		TermMonths:        t.TermMonths,
	}
}

func toExtras(m map[int]float64) amort.ExtraPayments {
	if len(m) == 0 {
		return nil
	}
	extras := make(amort.ExtraPayments, len(m))
	for period, amount := range m {
		extras[period] = decimal.NewFromFloat(amount)
	}
	return extras
}

func toExtrasDTO(e amort.ExtraPayments) map[int]float64 {
	out := make(map[int]float64, len(e))
	for period, amount := range e {
		out[period] = amount.InexactFloat64()
	}
	return out
}

func (d DisplayModeDTO) toMode() (amort.StartDisplayMode, error) {
	switch d.Display {
	case "", "numbered":
		return amort.Numbered(), nil
	case "calendar":
		alignment := amort.YearAlignment(d.YearAlignment)
		if d.YearAlignment == "" {
			alignment = amort.AlignLoanStart
		}
		return amort.CalendarStart(time.Month(d.StartMonth), d.StartYear, alignment), nil
	default:
		return amort.StartDisplayMode{}, &amort.InvalidInputError{Field: "display", Reason: "must be numbered or calendar"}
	}
}

func toModeDTO(m amort.StartDisplayMode) DisplayModeDTO {
	if !m.Calendar {
		return DisplayModeDTO{Display: "numbered"}
	}
	return DisplayModeDTO{
		Display:       "calendar",
		StartMonth:    int(m.StartMonth),
		StartYear:     m.StartYear,
		YearAlignment: string(m.YearAlignment),
	}
}

func toRowDTO(r amort.ScheduleRow) ScheduleRowDTO {
	return ScheduleRowDTO{
		Period:           r.Period,
		Label:            r.Label,
		BeginningBalance: r.BeginningBalance.InexactFloat64(),
		ScheduledPayment: r.ScheduledPayment.InexactFloat64(),
		ExtraPayment:     r.ExtraPayment.InexactFloat64(),
		InterestPortion:  r.InterestPortion.InexactFloat64(),
		PrincipalPortion: r.PrincipalPortion.InexactFloat64(),
		EndingBalance:    r.EndingBalance.InexactFloat64(),
	}
}

func toScheduleDTO(s *amort.ScheduleResult) ScheduleResultDTO {
	rows := make([]ScheduleRowDTO, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = toRowDTO(r)
	}
	return ScheduleResultDTO{
		Rows:              rows,
		TotalInterestPaid: s.TotalInterestPaid.InexactFloat64(),
		TotalPaid:         s.TotalPaid.InexactFloat64(),
		MonthsToPayoff:    s.MonthsToPayoff,
	}
}

func toComparisonDTO(c *amort.ComparisonResult) ComparisonDTO {
	return ComparisonDTO{
		Baseline:      toScheduleDTO(c.Baseline),
		WithExtra:     toScheduleDTO(c.WithExtra),
		InterestSaved: c.InterestSaved.InexactFloat64(),
		MonthsSaved:   c.MonthsSaved,
	}
}

func toPlanDTO(p *plan.Plan) PlanDTO {
	return PlanDTO{
		ID:          p.ID,
		Name:        p.Name,
		Terms:       toTermsDTO(p.Terms),
		Extras:      toExtrasDTO(p.Extras),
		DisplayMode: toModeDTO(p.DisplayMode),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
