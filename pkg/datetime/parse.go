// Package datetime provides date and time utility functions.
package datetime

import (
	"math"
	"time"

	"github.com/buildtrack/evm-engine/pkg/constants"
)

const (
	// DateLayout is the format expected for all dates in config files and is
	// also the output date format.
	DateLayout = constants.DateLayout
)

// MustParseDate parses a date string using the standard layout and panics on
// error. This is intended for use in tests where the date string is known to
// be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// AddCalendarDays returns the date offset by the given (possibly fractional)
// number of calendar days, rounded to the nearest whole day. Weekends and
// holidays are not excluded.
func AddCalendarDays(date time.Time, days float64) time.Time {
	whole := int(math.Round(days))
	return date.AddDate(0, 0, whole)
}

// WithinWindow reports whether statusDate is no more than windowDays calendar
// days before now. Status dates in the future are always within the window.
func WithinWindow(statusDate, now time.Time, windowDays int) bool {
	if !statusDate.Before(now) {
		return true
	}
	cutoff := now.AddDate(0, 0, -windowDays)
	return !statusDate.Before(cutoff)
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
