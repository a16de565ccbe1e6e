package aggregation

import (
	"strconv"
	"time"

	"lyonoffices/server/internal/models"
)

// Period selectors accepted by the dashboard.
const (
	PeriodAll         = "all"
	PeriodLast3Months = "3m"
	PeriodLast6Months = "6m"
)

// FilterRange converts a period selector into the [start, end) bounds used
// to select stored deals. A zero time means unbounded on that side: "all"
// is fully open and the rolling windows are only bounded on the left.
func (a *Aggregator) FilterRange(period string) (time.Time, time.Time) {
	now := a.now()
	switch period {
	case PeriodLast3Months:
		return now.AddDate(0, -3, 0), time.Time{}
	case PeriodLast6Months:
		return now.AddDate(0, -6, 0), time.Time{}
	}
	if year, ok := parseYear(period); ok {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	return time.Time{}, time.Time{}
}

// yearSpan returns the inclusive year range a forecast row must fall in.
// Forecast rows are matched on year only, coarser than the actual-deal
// filter: the business owner reads forecast figures per year.
func (a *Aggregator) yearSpan(period string) (int, int) {
	if year, ok := parseYear(period); ok {
		return year, year
	}
	now := a.now()
	switch period {
	case PeriodLast3Months:
		return now.AddDate(0, -3, 0).Year(), now.Year()
	case PeriodLast6Months:
		return now.AddDate(0, -6, 0).Year(), now.Year()
	}
	return 0, 9999
}

// timelineBounds returns the first and last month of the revenue series.
// For "all" the bounds come from the data itself, or fall back to the
// current calendar year when the store is empty.
func (a *Aggregator) timelineBounds(period string, merged []models.MergedDeal) (time.Time, time.Time) {
	now := a.now()
	if year, ok := parseYear(period); ok {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	switch period {
	case PeriodLast3Months:
		return monthStart(now.AddDate(0, -2, 0)), now
	case PeriodLast6Months:
		return monthStart(now.AddDate(0, -5, 0)), now
	}

	if len(merged) == 0 {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	minDate, maxDate := merged[0].Date, merged[0].Date
	for _, m := range merged[1:] {
		if m.Date.Before(minDate) {
			minDate = m.Date
		}
		if m.Date.After(maxDate) {
			maxDate = m.Date
		}
	}
	return monthStart(minDate), maxDate
}

func parseYear(period string) (int, bool) {
	if len(period) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(period)
	if err != nil {
		return 0, false
	}
	return year, true
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
