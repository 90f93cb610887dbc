// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/loanlens/loanlens/pkg/constants"
)

const (
	// DateTimeLayout is the month-granularity format used for loan start
	// dates and payoff projections.
	DateTimeLayout = constants.DateTimeLayout

	// DayLayout is the day-granularity format used for expense records.
	DayLayout = "2006-01-02"
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// ValidDay reports whether the given string is a valid day-granularity date.
func ValidDay(date string) bool {
	_, err := time.Parse(DayLayout, date)
	return err == nil
}
