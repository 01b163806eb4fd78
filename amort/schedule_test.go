package amort_test

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amort"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func terms(principal, annualRate string, termMonths int) amort.LoanTerms {
	return amort.LoanTerms{
		Principal:         money(principal),
		AnnualRatePercent: money(annualRate),
		TermMonths:        termMonths,
	}
}

func extras(m map[int]string) amort.ExtraPayments {
	e := make(amort.ExtraPayments, len(m))
	for period, amount := range m {
		e[period] = money(amount)
	}
	return e
}

// withinCents checks |a - b| <= tolerance cents.
func withinCents(a, b decimal.Decimal, cents int64) bool {
	return a.Sub(b).Abs().LessThanOrEqual(decimal.New(cents, -2))
}

// =============================================================================
// FULL-TERM SCHEDULES
// =============================================================================

func TestGenerate_NoExtras_FullTermRowsAndZeroFinalBalance(t *testing.T) {
	// GIVEN: A set of valid loans with no extra payments
	// WHEN: Generating their schedules
	// THEN: Each produces exactly termMonths rows, a zero final balance,
	//       and fully amortized principal (no leakage)

	cases := []struct {
		name string
		in   amort.LoanTerms
	}{
		{"1yr at 6%", terms("10000", "6", 12)},
		{"30yr mortgage", terms("348300", "6.75", 360)},
		{"15yr at 4.5%", terms("250000", "4.5", 180)},
		{"3yr at 12%", terms("5000", "12", 36)},
		{"interest-free", terms("1200", "0", 12)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := amort.Generate(tc.in, nil, amort.Numbered())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Rows) != tc.in.TermMonths {
				t.Errorf("expected %d rows, got %d", tc.in.TermMonths, len(result.Rows))
			}
			if result.MonthsToPayoff != tc.in.TermMonths {
				t.Errorf("expected payoff in %d months, got %d", tc.in.TermMonths, result.MonthsToPayoff)
			}

			last := result.Rows[len(result.Rows)-1]
			if !last.EndingBalance.IsZero() {
				t.Errorf("expected zero final balance, got %s", last.EndingBalance)
			}

			principalPaid := decimal.Zero
			for _, row := range result.Rows {
				principalPaid = principalPaid.Add(row.PrincipalPortion)
			}
			if !withinCents(principalPaid, tc.in.Principal, 1) {
				t.Errorf("principal not fully amortized: paid %s of %s", principalPaid, tc.in.Principal)
			}
		})
	}
}

func TestGenerate_KnownExample_TenThousandAtSixPercent(t *testing.T) {
	// GIVEN: principal 10000, 6% annual, 12 months, no extras
	// WHEN: Generating the schedule
	// THEN: Fixed payment is 860.66, total interest ~327.95, final balance 0

	result, err := amort.Generate(terms("10000", "6", 12), nil, amort.Numbered())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Rows[0].ScheduledPayment; !got.Equal(money("860.66")) {
		t.Errorf("expected fixed payment 860.66, got %s", got)
	}
	if got := result.Rows[0].InterestPortion; !got.Equal(money("50.00")) {
		t.Errorf("expected first interest portion 50.00, got %s", got)
	}
	if !withinCents(result.TotalInterestPaid, money("327.95"), 5) {
		t.Errorf("expected total interest ~327.95, got %s", result.TotalInterestPaid)
	}
	if !withinCents(result.TotalPaid, money("10327.95"), 5) {
		t.Errorf("expected total paid ~10327.95, got %s", result.TotalPaid)
	}
	if !result.Rows[11].EndingBalance.IsZero() {
		t.Errorf("expected zero final balance, got %s", result.Rows[11].EndingBalance)
	}
}

func TestGenerate_ZeroRate_NoInterestAnywhere(t *testing.T) {
	// GIVEN: An interest-free loan of 1200 over 12 months
	// WHEN: Generating the schedule
	// THEN: Every payment is 100.00 and every interest portion is zero

	result, err := amort.Generate(terms("1200", "0", 12), nil, amort.Numbered())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, row := range result.Rows {
		if !row.InterestPortion.IsZero() {
			t.Errorf("period %d: expected zero interest, got %s", row.Period, row.InterestPortion)
		}
		if !row.ScheduledPayment.Equal(money("100.00")) {
			t.Errorf("period %d: expected payment 100.00, got %s", row.Period, row.ScheduledPayment)
		}
	}
	if !result.TotalInterestPaid.IsZero() {
		t.Errorf("expected zero total interest, got %s", result.TotalInterestPaid)
	}
}

// =============================================================================
// ROW INVARIANTS
// =============================================================================

func TestGenerate_RowInvariants_HoldForEveryPeriod(t *testing.T) {
	// GIVEN: A schedule with scattered extra payments
	// WHEN: Inspecting every row
	// THEN: Interest, principal portion, and balance chaining obey the
	//       amortization identities

	in := terms("348300", "6.75", 360)
	rate := in.AnnualRatePercent.Div(money("100")).Div(money("12"))
	result, err := amort.Generate(in, extras(map[int]string{0: "1000", 12: "2500.50", 100: "75"}), amort.Numbered())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance := in.Principal
	for _, row := range result.Rows {
		if !row.BeginningBalance.Equal(balance) {
			t.Fatalf("period %d: beginning balance %s does not chain from %s", row.Period, row.BeginningBalance, balance)
		}
		if want := row.BeginningBalance.Mul(rate).Round(2); !row.InterestPortion.Equal(want) {
			t.Fatalf("period %d: interest %s, want %s", row.Period, row.InterestPortion, want)
		}
		if want := row.ScheduledPayment.Add(row.ExtraPayment).Sub(row.InterestPortion); !row.PrincipalPortion.Equal(want) {
			t.Fatalf("period %d: principal portion %s, want %s", row.Period, row.PrincipalPortion, want)
		}
		if row.EndingBalance.IsNegative() {
			t.Fatalf("period %d: negative ending balance %s", row.Period, row.EndingBalance)
		}
		balance = row.EndingBalance
	}
	if !balance.IsZero() {
		t.Fatalf("schedule left a dangling balance of %s", balance)
	}
}

// =============================================================================
// EXTRA PAYMENTS
// =============================================================================

func TestGenerate_ExtraPayments_ShortenPayoff(t *testing.T) {
	// GIVEN: A 30-year loan with 100 extra every period
	// WHEN: Comparing to the no-extra schedule
	// THEN: Payoff is strictly earlier and later periods are absent

	in := terms("348300", "6.75", 360)
	everyPeriod := make(amort.ExtraPayments, 360)
	for i := 0; i < 360; i++ {
		everyPeriod[i] = money("100")
	}

	result, err := amort.Generate(in, everyPeriod, amort.Numbered())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthsToPayoff != 317 {
		t.Errorf("expected payoff in 317 months, got %d", result.MonthsToPayoff)
	}
	if len(result.Rows) != result.MonthsToPayoff {
		t.Errorf("rows (%d) must match months to payoff (%d)", len(result.Rows), result.MonthsToPayoff)
	}
	if !result.Rows[len(result.Rows)-1].EndingBalance.IsZero() {
		t.Errorf("expected zero final balance")
	}
}

func TestGenerate_OversizedExtra_CappedAndDiscarded(t *testing.T) {
	// GIVEN: An extra payment far larger than the outstanding balance
	// WHEN: Generating the schedule
	// THEN: The extra is capped to exact payoff; the excess does not roll
	//       forward and the loan settles in one period

	result, err := amort.Generate(terms("10000", "6", 12), extras(map[int]string{0: "20000"}), amort.Numbered())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if !row.ExtraPayment.Equal(money("9189.34")) {
		t.Errorf("expected capped extra 9189.34, got %s", row.ExtraPayment)
	}
	if !row.EndingBalance.IsZero() {
		t.Errorf("expected zero ending balance, got %s", row.EndingBalance)
	}
	if !result.TotalPaid.Equal(money("10050.00")) {
		t.Errorf("expected total paid 10050.00 (exact payoff), got %s", result.TotalPaid)
	}
}

func TestGenerate_ExtraPayments_MonotonicImprovement(t *testing.T) {
	// GIVEN: A baseline schedule and several extra-payment variations
	// WHEN: Generating each variation
	// THEN: No variation ever pays more interest or takes more months

	in := terms("250000", "4.5", 180)
	baseline, err := amort.Generate(in, nil, amort.Numbered())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	variations := []amort.ExtraPayments{
		extras(map[int]string{0: "0.01"}),
		extras(map[int]string{5: "500"}),
		extras(map[int]string{0: "1000", 50: "1000", 100: "1000"}),
		extras(map[int]string{179: "250"}),
	}

	for i, v := range variations {
		result, err := amort.Generate(in, v, amort.Numbered())
		if err != nil {
			t.Fatalf("variation %d: unexpected error: %v", i, err)
		}
		if result.MonthsToPayoff > baseline.MonthsToPayoff {
			t.Errorf("variation %d: months increased from %d to %d", i, baseline.MonthsToPayoff, result.MonthsToPayoff)
		}
		if result.TotalInterestPaid.GreaterThan(baseline.TotalInterestPaid) {
			t.Errorf("variation %d: interest increased from %s to %s", i, baseline.TotalInterestPaid, result.TotalInterestPaid)
		}
	}
}

// =============================================================================
// DETERMINISM
// =============================================================================

func TestGenerate_IdenticalInputs_IdenticalResults(t *testing.T) {
	// GIVEN: The same terms, extras, and display mode
	// WHEN: Generating twice
	// THEN: The results are identical, and the caller's extras map is untouched

	in := terms("348300", "6.75", 360)
	e := extras(map[int]string{3: "250", 100: "1000"})

	first, err := amort.Generate(in, e, amort.CalendarStart(11, 2023, amort.AlignLoanStart))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := amort.Generate(in, e, amort.CalendarStart(11, 2023, amort.AlignLoanStart))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results")
	}
	if len(e) != 2 || !e[3].Equal(money("250")) || !e[100].Equal(money("1000")) {
		t.Errorf("engine mutated the caller's extras map: %v", e)
	}
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

func TestGenerate_InvalidInputs_RejectedUpFront(t *testing.T) {
	cases := []struct {
		name   string
		terms  amort.LoanTerms
		extras amort.ExtraPayments
		mode   amort.StartDisplayMode
	}{
		{"zero principal", terms("0", "6", 12), nil, amort.Numbered()},
		{"negative principal", terms("-100", "6", 12), nil, amort.Numbered()},
		{"negative rate", terms("1000", "-1", 12), nil, amort.Numbered()},
		{"zero term", terms("1000", "6", 0), nil, amort.Numbered()},
		{"term over bound", terms("1000", "6", amort.MaxTermMonths + 1), nil, amort.Numbered()},
		{"extra out of range", terms("1000", "6", 12), extras(map[int]string{12: "10"}), amort.Numbered()},
		{"negative extra", terms("1000", "6", 12), extras(map[int]string{0: "-10"}), amort.Numbered()},
		{"bad start month", terms("1000", "6", 12), nil, amort.CalendarStart(13, 2024, amort.AlignLoanStart)},
		{"bad alignment", terms("1000", "6", 12), nil, amort.CalendarStart(1, 2024, amort.YearAlignment("fiscal"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := amort.Generate(tc.terms, tc.extras, tc.mode)
			if err == nil {
				t.Fatalf("expected error, got result with %d rows", len(result.Rows))
			}
			if !amort.IsInvalidInput(err) {
				t.Errorf("expected InvalidInput, got %v", err)
			}
			if result != nil {
				t.Errorf("expected no partial result on rejection")
			}
		})
	}
}
