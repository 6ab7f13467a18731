package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)

	// 20:30 UTC is already the next day at UTC+7
	got := StartOfDay(time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, loc), got)
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	column := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got := CalendarDate(column, loc)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.May, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, loc, got.Location())
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2024-13-01", time.UTC)
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	got := DateOnly(time.Date(2024, 5, 2, 1, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), got)
}
