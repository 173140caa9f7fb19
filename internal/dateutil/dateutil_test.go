package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	got, ok := Parse("2024-03-04")
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not-a-date",
		"04/03/2024",
		"2024-3-4",
		"2024-13-01",
		"2024-02-30",
		"2024-03-04T00:00:00Z",
	}
	for _, input := range inputs {
		got, ok := Parse(input)
		require.False(t, ok, "input %q should not parse", input)
		require.True(t, got.IsZero())
	}
}

func TestFormat(t *testing.T) {
	d := time.Date(2024, 3, 4, 15, 30, 45, 0, time.UTC)
	require.Equal(t, "2024-03-04", Format(d))
}

func TestFormatParse_RoundTrip(t *testing.T) {
	d := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, ok := Parse(Format(d))
	require.True(t, ok)
	require.Equal(t, d, got)
}

func TestTruncate(t *testing.T) {
	d := time.Date(2024, 3, 4, 23, 59, 59, 999999999, time.UTC)
	require.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Truncate(d))
}

func TestDayWindow(t *testing.T) {
	from, to := DayWindow(time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2024, 3, 4, 23, 59, 59, 999999999, time.UTC), to)
}

func TestWeekWindow(t *testing.T) {
	from, to := WeekWindow(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), to)
}
