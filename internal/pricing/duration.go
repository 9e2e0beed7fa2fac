package pricing

import (
	"math"
	"time"
)

const calendarDateLayout = "2006-01-02"

// ParseCalendarDate parses a yyyy-mm-dd string as local midnight. Parsing as
// UTC and displaying in a timezone west of UTC shifts the day backward, so
// both parsing and display must anchor to the same local calendar day.
func ParseCalendarDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(calendarDateLayout, dateStr, time.Local)
}

// FormatCalendarDate renders a time as a yyyy-mm-dd string in local time.
func FormatCalendarDate(t time.Time) string {
	return t.In(time.Local).Format(calendarDateLayout)
}

// RentalDays computes billable days for a rental period, always ≥ 1.
// Same-day and inverted ranges clamp to 1: the UI calls this with
// partially-filled forms, so bad ranges are a floor, not an error.
func RentalDays(startDate, endDate string) int {
	start, err := ParseCalendarDate(startDate)
	if err != nil {
		return 1
	}
	end, err := ParseCalendarDate(endDate)
	if err != nil {
		return 1
	}

	// Difference is taken on the calendar components, not the parsed local
	// instants: a range spanning a DST transition is 23 or 25 hours per day
	// and would ceiling to the wrong count.
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	days := int(math.Ceil(endDay.Sub(startDay).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
