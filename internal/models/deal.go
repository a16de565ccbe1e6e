package models

import (
	"strings"
	"time"
)

// Deal types. Everything that is not a rental or a sale (valuation
// opinions, works supervision...) is filed under AUTRE.
const (
	DealTypeVente    = "VENTE"
	DealTypeLocation = "LOCATION"
	DealTypeAutre    = "AUTRE"
)

// Property is a physical listing address. City and Zone are deduced from
// the postal code at ingestion time.
type Property struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	AddressFull string `json:"address_full"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	Zone        string `json:"zone"`
}

// Deal is one closed business event tied to a Property. Deals are never
// mutated after creation; a full reload replaces the whole set.
type Deal struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	PropertyID    int64     `json:"property_id"`
	Property      Property  `json:"property"`
	Type          string    `json:"type"`
	SignatureDate time.Time `json:"signature_date"`
	SurfaceM2     float64   `json:"surface_m2"`
	AgencyFee     float64   `json:"agency_fee"`
	Source        string    `json:"source"`
	Notes         string    `json:"notes"`
}

// ForecastDeal is an in-flight, not-yet-closed record. It is re-derived
// from the live sheet on every read and never persisted.
type ForecastDeal struct {
	Date     string  `json:"date"` // DD/MM/YYYY as found in the sheet
	Address  string  `json:"address"`
	ZipCode  string  `json:"zip_code"`
	Surface  float64 `json:"surface"`
	Bailleur string  `json:"bailleur"`
	Preneur  string  `json:"preneur"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Offres   string  `json:"offres"`
	Demand   string  `json:"demand"`
}

// MergedDeal unifies Deal and ForecastDeal into one shape for aggregation.
// It only ever exists at read time.
type MergedDeal struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Surface    float64   `json:"surface"`
	Type       string    `json:"type"`
	Address    string    `json:"address"`
	Zone       string    `json:"zone"`
	IsForecast bool      `json:"is_forecast"`
}

// IsSignature reports whether a deal type counts as a real signature.
// Valuation opinions and other AUTRE rows contribute revenue but are not
// signatures.
func IsSignature(dealType string) bool {
	return dealType == DealTypeVente || dealType == DealTypeLocation
}

// ClassifyDealType normalizes a raw transaction-type cell by
// case-insensitive substring match.
func ClassifyDealType(raw string) string {
	t := strings.ToUpper(raw)
	switch {
	case strings.Contains(t, DealTypeLocation):
		return DealTypeLocation
	case strings.Contains(t, DealTypeVente):
		return DealTypeVente
	default:
		return DealTypeAutre
	}
}
