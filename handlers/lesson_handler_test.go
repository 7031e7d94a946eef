package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExpandRecurrenceWeekly(t *testing.T) {
	dates := expandRecurrence(day("2025-01-06"), "weekly", day("2025-01-27"))

	require.Len(t, dates, 3)
	require.Equal(t, day("2025-01-13"), dates[0])
	require.Equal(t, day("2025-01-20"), dates[1])
	require.Equal(t, day("2025-01-27"), dates[2])
}

func TestExpandRecurrenceBiweekly(t *testing.T) {
	dates := expandRecurrence(day("2025-01-06"), "biweekly", day("2025-02-17"))

	require.Len(t, dates, 3)
	require.Equal(t, day("2025-01-20"), dates[0])
	require.Equal(t, day("2025-02-03"), dates[1])
	require.Equal(t, day("2025-02-17"), dates[2])
}

func TestExpandRecurrenceExcludesBaseDate(t *testing.T) {
	dates := expandRecurrence(day("2025-01-06"), "weekly", day("2025-01-06"))
	require.Empty(t, dates)
}

func TestExpandRecurrenceEndBeforeBase(t *testing.T) {
	dates := expandRecurrence(day("2025-01-06"), "weekly", day("2024-12-01"))
	require.Empty(t, dates)
}

func TestExpandRecurrenceEndMidWeek(t *testing.T) {
	// End falls between two occurrences: the partial step is dropped.
	dates := expandRecurrence(day("2025-01-06"), "weekly", day("2025-01-16"))

	require.Len(t, dates, 1)
	require.Equal(t, day("2025-01-13"), dates[0])
}
