package parsing

import "strings"

// SplitLine splits one raw line of the transaction feed on commas, except
// commas inside a quoted span. A comma splits only when an even number of
// quote characters precede it, which matches how the sheet export quotes
// cells that contain commas.
func SplitLine(line string) []string {
	var fields []string
	var b strings.Builder
	quotes := 0
	for _, r := range line {
		switch {
		case r == '"':
			quotes++
			b.WriteRune(r)
		case r == ',' && quotes%2 == 0:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// CleanField trims whitespace and strips quote characters from a raw cell.
func CleanField(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\"", "")
}

// FieldAt returns the cleaned field at index i, or "" when the row is too
// short.
func FieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return CleanField(fields[i])
}
