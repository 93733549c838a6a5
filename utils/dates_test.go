package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), d)

	// only the canonical ISO form is accepted; ambiguous formats are
	// rejected instead of silently misparsed
	for _, bad := range []string{"10-03-2024", "03/10/2024", "2024-3-1", "", "yesterday", "2024-03-10T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrBadDateFormat, "input %q", bad)
	}
}

func TestNightCount(t *testing.T) {
	ci := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, NightCount(ci, ci.AddDate(0, 0, 2)))
	assert.Equal(t, 1, NightCount(ci, ci.AddDate(0, 0, 1)))
	assert.Equal(t, 31, NightCount(ci, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)))

	// checkOut <= checkIn is 0, never negative
	assert.Equal(t, 0, NightCount(ci, ci))
	assert.Equal(t, 0, NightCount(ci, ci.AddDate(0, 0, -3)))

	// time-of-day is irrelevant
	late := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 2, NightCount(late, ci.AddDate(0, 0, 2)))
}

func TestNightsBetween(t *testing.T) {
	ci := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	co := ci.AddDate(0, 0, 3)

	nights := NightsBetween(ci, co)
	require.Len(t, nights, 3)
	assert.Equal(t, ci, nights[0])
	assert.Equal(t, ci.AddDate(0, 0, 1), nights[1])
	assert.Equal(t, ci.AddDate(0, 0, 2), nights[2])

	// the checkout day itself is never an occupied night
	for _, n := range nights {
		assert.True(t, n.Before(co))
	}

	assert.Empty(t, NightsBetween(ci, ci))
	assert.Empty(t, NightsBetween(co, ci))
}

func TestNightsBetweenMatchesNightCount(t *testing.T) {
	ci := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)
	for nights := 1; nights <= 10; nights++ {
		co := ci.AddDate(0, 0, nights)
		assert.Equal(t, nights, NightCount(ci, co))
		assert.Len(t, NightsBetween(ci, co), nights)
	}
}

func TestToDay(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	stamp := time.Date(2024, 3, 10, 18, 30, 5, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), ToDay(stamp))
}
