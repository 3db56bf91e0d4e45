package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2026-10-09", "2026/10/09", "2026-10-9", "2026/10/9", " 2026-10-09 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), got, in)
	}
	_, err := ParseDate("09-10-2026")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-3")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseMonth("2026-13")
	assert.ErrorIs(t, err, ErrInvalidMonthFormat)
}

func TestValidators(t *testing.T) {
	assert.True(t, IsNumeric("20260"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("-1"))

	assert.True(t, ValidateEmailFormat("amina@example.com"))
	assert.False(t, ValidateEmailFormat("amina@"))
}

func TestIsNumericRejectsNonASCIIDigits(t *testing.T) {
	assert.False(t, IsNumeric("٣٤"))
}
