package utils

import (
	"errors"
	"time"
)

// DateLayout is the only textual date form the API accepts. Anything
// else is rejected at the boundary instead of being guessed at.
const DateLayout = "2006-01-02"

var ErrBadDateFormat = errors.New("invalid_date_format")

// ParseDate parses a canonical ISO calendar date and normalizes it to
// midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDateFormat
	}
	return ToDay(t), nil
}

// ToDay truncates a timestamp to its calendar day at midnight UTC.
// Every stored night goes through this so equality checks and the
// unique (room, night) index behave.
func ToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightCount returns the number of nights in [checkIn, checkOut).
// Returns 0 when checkOut is not strictly after checkIn; callers treat
// 0 as an invalid range.
func NightCount(checkIn, checkOut time.Time) int {
	ci := ToDay(checkIn)
	co := ToDay(checkOut)
	if !co.After(ci) {
		return 0
	}
	return int(co.Sub(ci).Hours() / 24)
}

// NightsBetween enumerates one date per night of the stay, starting at
// check-in, up to but excluding check-out. This is exactly the set of
// occupancy rows that must be checked or inserted for the stay.
func NightsBetween(checkIn, checkOut time.Time) []time.Time {
	ci := ToDay(checkIn)
	co := ToDay(checkOut)
	if !co.After(ci) {
		return nil
	}

	nights := make([]time.Time, 0, NightCount(ci, co))
	for d := ci; d.Before(co); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// Today returns the current calendar day at midnight UTC.
func Today() time.Time {
	return ToDay(time.Now().UTC())
}
