package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lyonoffices/server/internal/fetch"
	"lyonoffices/server/internal/geo"
	"lyonoffices/server/internal/models"
	"lyonoffices/server/internal/parsing"
)

// DealStore is the persistence collaborator of the importer.
type DealStore interface {
	ReplaceAllDeals(deals []models.Deal) error
}

// Importer reloads the persisted transaction log from the source sheets.
// A run is destructive by design: the stored set is replaced wholesale, so
// re-running with unchanged inputs yields the same state.
type Importer struct {
	fetcher fetch.Fetcher
	store   DealStore
	gids    []string
	logger  *logrus.Logger
	now     func() time.Time
}

func NewImporter(fetcher fetch.Fetcher, store DealStore, gids []string, logger *logrus.Logger) *Importer {
	return &Importer{
		fetcher: fetcher,
		store:   store,
		gids:    gids,
		logger:  logger,
		now:     time.Now,
	}
}

// Run fetches every configured tab, normalizes the rows and swaps the
// stored record set. A tab that cannot be fetched is reported as a warning
// and skipped; it does not abort the run.
func (imp *Importer) Run(ctx context.Context) models.IngestReport {
	var deals []models.Deal
	logs := []string{}

	for _, gid := range imp.gids {
		text, err := imp.fetcher.FetchTab(ctx, gid)
		if err != nil {
			imp.logger.WithError(err).WithField("gid", gid).Warn("Skipping unreadable tab")
			logs = append(logs, fmt.Sprintf("⚠️ Impossible de lire l'onglet (GID: %s) - %v", gid, err))
			continue
		}

		tabDeals, seen := imp.parseTab(text, gid)
		deals = append(deals, tabDeals...)
		logs = append(logs, fmt.Sprintf("Onglet %s : %d lignes lues, %d retenues", gid, seen, len(tabDeals)))
	}

	if err := imp.store.ReplaceAllDeals(deals); err != nil {
		imp.logger.WithError(err).Error("Full reload failed")
		return models.IngestReport{Success: false, Logs: logs, Error: err.Error()}
	}

	logs = append(logs, fmt.Sprintf("Import terminé : %d transactions", len(deals)))
	imp.logger.WithField("count", len(deals)).Info("Full reload completed")
	return models.IngestReport{Success: true, Count: len(deals), Logs: logs}
}

// parseTab turns one tab's raw CSV text into deals. It returns the number
// of data lines seen so the report can expose rows seen vs. rows kept.
func (imp *Importer) parseTab(text, gid string) ([]models.Deal, int) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return nil, 0
	}

	columns := parsing.MapColumns(lines[0])

	var deals []models.Deal
	seen := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		seen++

		fields := parsing.SplitLine(line)
		if len(fields) < 5 {
			continue
		}

		address := parsing.FieldAt(fields, columns.Address)
		rawType := parsing.FieldAt(fields, columns.Type)
		if address == "" || rawType == "" {
			continue
		}

		zip := parsing.FieldAt(fields, columns.Zip)
		city := geo.DeduceCity(zip)
		if city == "" {
			city = "Grand Lyon"
		}
		source := parsing.FieldAt(fields, columns.Source)
		if source == "" {
			source = "Non renseigné"
		}

		deals = append(deals, models.Deal{
			Property: models.Property{
				AddressFull: address,
				ZipCode:     zip,
				City:        city,
				Zone:        geo.DeduceZone(zip),
			},
			Type:          models.ClassifyDealType(rawType),
			SignatureDate: parsing.ParseDayMonthYear(parsing.FieldAt(fields, columns.Date), imp.now()),
			SurfaceM2:     parsing.ParseLocaleNumber(parsing.FieldAt(fields, columns.Surface)),
			AgencyFee:     parsing.ParseLocaleNumber(parsing.FieldAt(fields, columns.Fee)),
			Source:        source,
			Notes:         fmt.Sprintf("Type: %s | GID: %s", rawType, gid),
		})
	}
	return deals, seen
}
