package ingestion

import (
	"encoding/csv"
	"strings"

	"lyonoffices/server/internal/models"
	"lyonoffices/server/internal/parsing"
)

// Forecast tab header names. Unlike the transaction log, this tab keeps a
// stable named layout, so rows are keyed by exact header.
const (
	headerDate    = "DATE"
	headerAddress = "ADRESSE"
	headerZip     = "CODE POSTAL"
	headerSurface = "SURFACE (m2)"
	headerLandlrd = "BAILLEUR"
	headerTenant  = "PRENEUR"
	headerAmount  = "MONTANT"
	headerType    = "TYPE DE TRANSAC"
	headerOffers  = "OFFRES"
	headerDemands = "DEMANDES"
)

// ParseForecast parses the in-flight deals tab. It is a pure transform:
// nothing is persisted and the result is re-derived on every read. Rows
// without a date are discarded; missing cells default to empty or 0.
func ParseForecast(text string) ([]models.ForecastDeal, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.TrimSpace(h)] = i
	}
	cell := func(row []string, header string) string {
		i, ok := index[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var deals []models.ForecastDeal
	for _, row := range records[1:] {
		date := cell(row, headerDate)
		if date == "" {
			continue
		}

		dealType := cell(row, headerType)
		if dealType == "" {
			dealType = models.DealTypeAutre
		}

		deals = append(deals, models.ForecastDeal{
			Date:     date,
			Address:  cell(row, headerAddress),
			ZipCode:  cell(row, headerZip),
			Surface:  parsing.ParseLocaleNumber(cell(row, headerSurface)),
			Bailleur: cell(row, headerLandlrd),
			Preneur:  cell(row, headerTenant),
			Amount:   parsing.ParseLocaleNumber(cell(row, headerAmount)),
			Type:     dealType,
			Offres:   cell(row, headerOffers),
			Demand:   cell(row, headerDemands),
		})
	}
	return deals, nil
}
