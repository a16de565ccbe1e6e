// Package geo deduces a human city name and a coarse business zone from a
// French postal code. It is the single authority for zone classification:
// both ingestion and the forecast merge path go through it.
package geo

import "strings"

// Zone codes outside the Lyon districts.
const (
	ZoneEstLyonnais   = "EST_LYONNAIS"
	ZoneOuestLyonnais = "OUEST_LYONNAIS"
	ZoneAutre         = "AUTRE"
)

const lyonPrefix = "6900"

// Municipalities around Lyon that appear in the transaction log.
var suburbCities = map[string]string{
	"69100": "Villeurbanne",
	"69800": "Saint-Priest",
	"69740": "Genas",
	"69680": "Chassieu",
	"69960": "Corbas",
	"69200": "Vénissieux",
	"69500": "Bron",
	"69300": "Caluire-et-Cuire",
	"69410": "Champagne-au-Mont-d'Or",
	"69130": "Écully",
	"69570": "Dardilly",
	"69760": "Limonest",
	"69370": "Saint-Didier-au-Mont-d'Or",
	"69160": "Tassin-la-Demi-Lune",
	"69600": "Oullins",
	"69380": "Lissieu",
	"69270": "Fontaines-sur-Saône",
}

// Postal codes classified as east of Lyon by the business owner. Everything
// else outside the metropolitan prefix counts as west.
var estCodes = map[string]bool{
	"69100": true,
	"69800": true,
	"69740": true,
	"69680": true,
	"69960": true,
}

// DeduceCity returns the display city for a postal code: "Lyon <n>er/ème"
// for the metropolitan districts, the suburb name when known, "" otherwise
// (callers substitute their own fallback label).
func DeduceCity(zip string) string {
	clean := strings.ReplaceAll(zip, " ", "")
	if clean == "" {
		return ""
	}
	if strings.HasPrefix(clean, lyonPrefix) {
		arr := clean[len(lyonPrefix):]
		suffix := "ème"
		if arr == "1" {
			suffix = "er"
		}
		return "Lyon " + arr + suffix
	}
	return suburbCities[clean]
}

// DeduceZone returns the business zone code for a postal code. The result
// is never empty: unknown non-empty codes default to the west partition and
// empty input maps to AUTRE.
func DeduceZone(zip string) string {
	clean := strings.ReplaceAll(zip, " ", "")
	if clean == "" {
		return ZoneAutre
	}
	if strings.HasPrefix(clean, lyonPrefix) {
		return "LYON_" + clean[len(lyonPrefix):]
	}
	if estCodes[clean] {
		return ZoneEstLyonnais
	}
	return ZoneOuestLyonnais
}

// PrettyZone turns a zone code into its display name ("LYON_2" -> "Lyon 2",
// "EST_LYONNAIS" -> "EST LYONNAIS").
func PrettyZone(code string) string {
	name := strings.Replace(code, "LYON_", "Lyon ", 1)
	return strings.ReplaceAll(name, "_", " ")
}
