package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLocaleNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Plain integer", "2412", 2412},
		{"Thousands space with euro", "2 412€", 2412},
		{"Non-breaking space", "2 500€", 2500},
		{"Comma decimal", "85,5", 85.5},
		{"Dot decimal", "85.5", 85.5},
		{"Euro only", "1500€", 1500},
		{"Empty input", "", 0},
		{"Garbage input", "n/a", 0},
		{"Spaces only", "  ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLocaleNumber(tt.input))
		})
	}
}

func TestParseDayMonthYear(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	parsed := ParseDayMonthYear("15/03/2024", now)
	assert.Equal(t, 15, parsed.Day())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 2024, parsed.Year())
}

func TestParseDayMonthYear_MalformedFallsBackToNow(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Wrong separator", "15-03-2024"},
		{"Two parts", "15/03"},
		{"Four parts", "15/03/20/24"},
		{"Non-numeric part", "15/mars/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, now, ParseDayMonthYear(tt.input, now))
		})
	}
}
