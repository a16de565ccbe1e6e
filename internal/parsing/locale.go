package parsing

import (
	"strconv"
	"strings"
	"time"
)

var numberCleaner = strings.NewReplacer("€", "", " ", "", " ", "")

// ParseLocaleNumber parses a French-formatted currency or decimal string
// ("2 412€", "85,5") into a float64. The euro sign, plain spaces and
// non-breaking spaces are stripped and the first decimal comma becomes a
// dot. Empty or unparseable input yields 0; this function never fails.
func ParseLocaleNumber(s string) float64 {
	if s == "" {
		return 0
	}
	clean := strings.Replace(numberCleaner.Replace(s), ",", ".", 1)
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseDayMonthYear parses a DD/MM/YYYY string. Anything that does not
// split into exactly three numeric parts silently falls back to now;
// callers must not rely on failure signaling.
func ParseDayMonthYear(s string, now time.Time) time.Time {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return now
	}
	day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errD != nil || errM != nil || errY != nil {
		return now
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
