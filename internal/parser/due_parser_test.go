package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDueDateEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		date, err := ParseDueDate(input)
		require.NoError(t, err)
		require.Nil(t, date)
	}
}

func TestParseDueDateISO(t *testing.T) {
	date, err := ParseDueDate("2026-09-15")
	require.NoError(t, err)
	require.NotNil(t, date)
	require.Equal(t, 2026, date.Year())
	require.Equal(t, time.September, date.Month())
	require.Equal(t, 15, date.Day())
}

func TestParseDueDateSlash(t *testing.T) {
	date, err := ParseDueDate("15/12/2026")
	require.NoError(t, err)
	require.NotNil(t, date)
	require.Equal(t, 2026, date.Year())
	require.Equal(t, time.December, date.Month())
	require.Equal(t, 15, date.Day())

	// Feb 30 does not exist.
	_, err = ParseDueDate("30/02/2026")
	require.Error(t, err)
}

func TestParseDueDateRelative(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	date, err := ParseDueDate("3 days")
	require.NoError(t, err)
	require.Equal(t, today.AddDate(0, 0, 3), *date)

	date, err = ParseDueDate("2 weeks")
	require.NoError(t, err)
	require.Equal(t, today.AddDate(0, 0, 14), *date)

	_, err = ParseDueDate("0 days")
	require.Error(t, err)
}

func TestParseDueDateGarbage(t *testing.T) {
	for _, input := range []string{"tomorrow", "2026-13-40", "soonish", "5 months"} {
		_, err := ParseDueDate(input)
		require.Error(t, err, input)
	}
}

func TestFormatInputDate(t *testing.T) {
	require.Equal(t, "", FormatInputDate(nil))

	date := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)
	require.Equal(t, "2026-06-01", FormatInputDate(&date))
}

func TestFormatCardDate(t *testing.T) {
	date := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)
	require.Equal(t, "Jun 1, 2026", FormatCardDate(date))
}
