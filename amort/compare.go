package amort

// Compare runs the schedule twice, once with an empty extra-payment map
// (the baseline) and once with the supplied map, and derives the savings.
// Extra payments can only shorten the payoff and reduce interest, so both
// derived values are non-negative under valid inputs.
func Compare(terms LoanTerms, extras ExtraPayments) (*ComparisonResult, error) {
	baseline, err := Generate(terms, nil, Numbered())
	if err != nil {
		return nil, err
	}
	withExtra, err := Generate(terms, extras, Numbered())
	if err != nil {
		return nil, err
	}
	return &ComparisonResult{
		Baseline:      baseline,
		WithExtra:     withExtra,
		InterestSaved: baseline.TotalInterestPaid.Sub(withExtra.TotalInterestPaid),
		MonthsSaved:   baseline.MonthsToPayoff - withExtra.MonthsToPayoff,
	}, nil
}
