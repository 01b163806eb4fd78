/*
schedule.go - Period-by-period schedule generation

The payoff loop. Starting at balance = principal, each period:

  1. interest = round(balance * monthlyRate, 2)
  2. payment  = fixed payment, unless this payment retires the loan, in
     which case it is clamped to balance + interest (exact payoff)
  3. extra    = caller-supplied extra for this period, capped so the
     combined principal reduction never drives the balance negative;
     any excess is discarded, it does not roll forward
  4. principal portion = payment + extra - interest
  5. emit a row; stop once the balance reaches zero

If the term elapses with a residual balance left by rounding, the final row
force-settles it: the schedule never ends with a dangling positive balance
and never goes negative.
*/
package amort

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Generate produces the amortization schedule for the given terms and extra
// payments, with labels attached per row according to mode. All validation
// happens before the first row is produced. Identical inputs always produce
// an identical result.
func Generate(terms LoanTerms, extras ExtraPayments, mode StartDisplayMode) (*ScheduleResult, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if err := extras.Validate(terms.TermMonths); err != nil {
		return nil, err
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	rate, err := MonthlyRate(terms.AnnualRatePercent)
	if err != nil {
		return nil, err
	}
	payment, err := FixedPayment(terms.Principal, rate, terms.TermMonths)
	if err != nil {
		return nil, err
	}

	balance := terms.Principal
	rows := make([]ScheduleRow, 0, terms.TermMonths)
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero

	for i := 0; balance.IsPositive() && i < terms.TermMonths; i++ {
		interest := balance.Mul(rate).Round(2)
		owed := balance.Add(interest) // exact payoff amount this period

		pay := payment
		extra := extras.Get(i)

		switch {
		case pay.GreaterThanOrEqual(owed):
			// Scheduled payment alone retires the loan; never overpay.
			pay = owed
			extra = decimal.Zero
		case pay.Add(extra).GreaterThanOrEqual(owed):
			// Extra pushes past payoff; cap it, excess is discarded.
			extra = owed.Sub(pay)
		case i == terms.TermMonths-1:
			// Term end with rounding residue; force-settle the remainder.
			pay = owed.Sub(extra)
		}

		principalPortion := pay.Add(extra).Sub(interest)
		ending := balance.Sub(principalPortion)
		if ending.IsNegative() {
			ending = decimal.Zero
		}

		rows = append(rows, ScheduleRow{
			Period:           i,
			Label:            Label(i, mode),
			BeginningBalance: balance,
			ScheduledPayment: pay,
			ExtraPayment:     extra,
			InterestPortion:  interest,
			PrincipalPortion: principalPortion,
			EndingBalance:    ending,
		})

		totalInterest = totalInterest.Add(interest)
		totalPaid = totalPaid.Add(pay).Add(extra)
		balance = ending
	}

	// The force-settle branch makes this unreachable; if it fires, the
	// solver and the loop disagree and the result cannot be trusted.
	if balance.IsPositive() {
		return nil, fmt.Errorf("balance %s remains after %d periods: %w",
			balance, terms.TermMonths, ErrScheduleDiverged)
	}

	return &ScheduleResult{
		Rows:              rows,
		TotalInterestPaid: totalInterest,
		TotalPaid:         totalPaid,
		MonthsToPayoff:    len(rows),
	}, nil
}
