/*
label.go - Period labeling

Maps a zero-based period index to a display label. Two modes:

  Numbered:  "1", "2", ... (index + 1)
  Calendar:  month abbreviation plus a year, anchored at a caller-supplied
             start month/year with standard month rollover.

Calendar year display depends on the alignment:

  LoanStart      "Feb 2024"  - the actual rolled-over calendar year
  CalendarYear   "Feb Y2"    - ordinal year within the loan, resetting at
                               calendar-year boundaries (Jan) rather than at
                               the loan's start anniversary

Labels are a pure function of (index, mode) and never touch the numeric
schedule or the wall clock.
*/
package amort

import (
	"fmt"
	"strconv"
	"time"
)

// =============================================================================
// START DISPLAY MODE
// =============================================================================

// YearAlignment selects how calendar-mode years are displayed.
type YearAlignment string

const (
	AlignLoanStart    YearAlignment = "loan_start"
	AlignCalendarYear YearAlignment = "calendar_year"
)

// StartDisplayMode selects period labeling. The zero value is numbered mode.
// It affects only labels, never the numeric schedule.
type StartDisplayMode struct {
	Calendar      bool
	StartMonth    time.Month // 1..12, calendar mode only
	StartYear     int        // calendar mode only
	YearAlignment YearAlignment
}

// Numbered labels periods "1", "2", ...
func Numbered() StartDisplayMode {
	return StartDisplayMode{}
}

// CalendarStart labels periods by calendar month/year from the given start.
func CalendarStart(month time.Month, year int, alignment YearAlignment) StartDisplayMode {
	return StartDisplayMode{Calendar: true, StartMonth: month, StartYear: year, YearAlignment: alignment}
}

// Validate checks the mode. Violations are reported as InvalidInputError.
func (m StartDisplayMode) Validate() error {
	if !m.Calendar {
		return nil
	}
	if m.StartMonth < time.January || m.StartMonth > time.December {
		return &InvalidInputError{Field: "start_month", Reason: "must be 1..12"}
	}
	switch m.YearAlignment {
	case AlignLoanStart, AlignCalendarYear:
		return nil
	default:
		return &InvalidInputError{Field: "year_alignment", Reason: "must be loan_start or calendar_year"}
	}
}

// =============================================================================
// LABELER
// =============================================================================

// Label maps a zero-based period index to its display label.
func Label(periodIndex int, mode StartDisplayMode) string {
	if !mode.Calendar {
		return strconv.Itoa(periodIndex + 1)
	}

	// Standard month rollover: month 13 becomes month 1 of year+1, etc.
	at := time.Date(mode.StartYear, mode.StartMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, periodIndex, 0)

	switch mode.YearAlignment {
	case AlignCalendarYear:
		// Ordinal year within the loan; the counter advances each January.
		return fmt.Sprintf("%s Y%d", at.Format("Jan"), at.Year()-mode.StartYear+1)
	default:
		return fmt.Sprintf("%s %d", at.Format("Jan"), at.Year())
	}
}
