package amort

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)

	// centTolerance is the rounding tolerance for "balance reached zero".
	centTolerance = decimal.New(1, -2)
)

// MonthlyRate converts a nominal annual percentage rate to a monthly
// periodic rate: annualRatePercent / 100 / 12. A zero rate is a valid
// interest-free loan and produces a zero monthly rate.
func MonthlyRate(annualRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if annualRatePercent.IsNegative() {
		return decimal.Zero, &InvalidInputError{Field: "annual_rate_percent", Reason: "must not be negative"}
	}
	return annualRatePercent.Div(hundred).Div(twelve), nil
}
