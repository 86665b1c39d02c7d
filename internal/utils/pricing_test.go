package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseRentalDate(s)
	require.NoError(t, err)
	return d
}

func TestParseRentalDate(t *testing.T) {
	t.Run("Calendar date", func(t *testing.T) {
		d, err := ParseRentalDate("2024-06-01")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Timestamp", func(t *testing.T) {
		d, err := ParseRentalDate("2024-06-01T12:00:00+02:00")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), d)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseRentalDate("2024/06/01")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseRentalDate(" ")
		assert.Error(t, err)
	})
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int64
	}{
		{"Three whole days", "2024-06-01", "2024-06-04", 3},
		{"Fractional day rounds up", "2024-06-01T00:00:00Z", "2024-06-02T01:00:00Z", 2},
		{"Less than a day", "2024-06-01T08:00:00Z", "2024-06-01T18:00:00Z", 1},
		{"Same instant", "2024-06-01", "2024-06-01", 0},
		{"Reversed", "2024-06-04", "2024-06-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RentalDays(mustDate(t, tt.start), mustDate(t, tt.end)))
		})
	}
}

func TestRentalTotalCents(t *testing.T) {
	start := mustDate(t, "2024-06-01")
	end := mustDate(t, "2024-06-04")
	assert.Equal(t, int64(15000), RentalTotalCents(start, end, 5000))
}

func TestStartOfDay(t *testing.T) {
	noon := time.Date(2024, 6, 10, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), StartOfDay(noon))

	start, err := ParseRentalDate("2024-06-10")
	require.NoError(t, err)
	assert.False(t, start.Before(StartOfDay(noon)), "a rental starting today is not before today's cutoff")

	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), StartOfDay(time.Date(2024, 6, 10, 8, 0, 0, 0, tokyo)))
}
