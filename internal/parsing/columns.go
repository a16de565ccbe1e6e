package parsing

import "strings"

// ColumnMap holds the resolved column index of each logical field of the
// transaction feed. Indices are always assigned: when no header keyword
// matches, the legacy fixed positions of the unlabelled sheets apply.
type ColumnMap struct {
	Date    int
	Address int
	Zip     int
	Surface int
	Fee     int
	Type    int
	Source  int
}

// Legacy positions of the oldest sheets, which carried no usable headers.
var fallbackColumns = ColumnMap{
	Date:    0,
	Address: 1,
	Zip:     2,
	Surface: 3,
	Fee:     6,
	Type:    8,
	Source:  9,
}

// MapColumns locates each logical field in a header line by keyword
// substring match. The sheet has been reordered and renamed across
// versions, so positional access is only a last resort.
func MapColumns(headerLine string) ColumnMap {
	raw := strings.Split(headerLine, ",")
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.ToLower(CleanField(h))
	}

	find := func(keywords []string, fallback int) int {
		for i, h := range headers {
			for _, k := range keywords {
				if strings.Contains(h, k) {
					return i
				}
			}
		}
		return fallback
	}

	return ColumnMap{
		Date:    find([]string{"date", "signature"}, fallbackColumns.Date),
		Address: find([]string{"adresse", "bien", "localisation"}, fallbackColumns.Address),
		Zip:     find([]string{"code postal", "cp", "zip"}, fallbackColumns.Zip),
		Surface: find([]string{"surface"}, fallbackColumns.Surface),
		Fee:     find([]string{"honoraires", "ht", "montant"}, fallbackColumns.Fee),
		Type:    find([]string{"type", "transaction"}, fallbackColumns.Type),
		Source:  find([]string{"source", "origine"}, fallbackColumns.Source),
	}
}
