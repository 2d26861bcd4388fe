// Package report derives summaries and budget warnings from stored records.
// It owns no storage of its own.
package report

import (
	"time"

	"spendlog/internal/core"
)

// ResolvePeriod translates a period token into an inclusive date range
// anchored at now.
//
//	weekly  -> [today - 6 days, today] (trailing 7 days)
//	monthly -> [first of current month, today]
func ResolvePeriod(p core.Period, now time.Time) (core.DateRange, error) {
	today := core.DateOf(now)
	switch p {
	case core.Weekly:
		return core.DateRange{Start: today.AddDays(-6), End: today}, nil
	case core.Monthly:
		return core.DateRange{Start: today.FirstOfMonth(), End: today}, nil
	default:
		return core.DateRange{}, core.ErrUnsupportedPeriod
	}
}

// MonthToDate is the range from the 1st of now's month through today.
func MonthToDate(now time.Time) core.DateRange {
	today := core.DateOf(now)
	return core.DateRange{Start: today.FirstOfMonth(), End: today}
}
