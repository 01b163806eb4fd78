/*
Package export renders amortization schedules as CSV.

Layout, top to bottom: a loan-details block, an optional summary block
comparing the with-extras and baseline totals, the column headers, then one
record per schedule row. Numbers are plain fixed-point with two decimals,
no currency symbols or grouping.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/warp/amortization-engine/amort"
)

var columns = []string{
	"Month", "Total Payment", "Principal Payment", "Extra Payment", "Interest Payment", "Remaining Balance",
}

// WriteCSV writes the labeled schedule to w. baseline may be nil, in which
// case the summary block is limited to the schedule's own totals.
func WriteCSV(w io.Writer, terms amort.LoanTerms, schedule *amort.ScheduleResult, baseline *amort.ScheduleResult) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Loan Details"},
		{"Principal", terms.Principal.StringFixed(2)},
		{"Annual Interest Rate", terms.AnnualRatePercent.String() + "%"},
		{"Loan Term", strconv.Itoa(terms.TermMonths) + " months"},
		{},
		{"Summary"},
		{"Interest Paid", schedule.TotalInterestPaid.StringFixed(2)},
		{"Total Paid", schedule.TotalPaid.StringFixed(2)},
	}
	if baseline != nil {
		records = append(records,
			[]string{"Interest Paid (No Extra)", baseline.TotalInterestPaid.StringFixed(2)},
			[]string{"Total Paid (No Extra)", baseline.TotalPaid.StringFixed(2)},
		)
	}
	records = append(records, []string{}, columns)

	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	for _, row := range schedule.Rows {
		total := row.ScheduledPayment.Add(row.ExtraPayment)
		rec := []string{
			row.Label,
			total.StringFixed(2),
			row.PrincipalPortion.StringFixed(2),
			row.ExtraPayment.StringFixed(2),
			row.InterestPortion.StringFixed(2),
			row.EndingBalance.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.Period, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
