// Package aggregation turns the merged deal set into the dashboard view:
// KPI summary, month-by-month revenue with running cumulative, and the
// per-zone distribution.
package aggregation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"lyonoffices/server/internal/geo"
	"lyonoffices/server/internal/models"
	"lyonoffices/server/internal/parsing"
)

// maxMonthBuckets guards the month loop against malformed bounds.
const maxMonthBuckets = 60

// French short month names, indexed by time.Month - 1.
var frMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

type Aggregator struct {
	now func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// NewAggregatorAt pins the aggregator clock, for rolling-window and
// fallback-to-now behavior in tests.
func NewAggregatorAt(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// MergeActual lifts stored deals into the read-time aggregation shape.
func MergeActual(deals []models.Deal) []models.MergedDeal {
	merged := make([]models.MergedDeal, 0, len(deals))
	for _, d := range deals {
		zone := d.Property.Zone
		if zone == "" {
			zone = geo.ZoneAutre
		}
		merged = append(merged, models.MergedDeal{
			ID:      fmt.Sprintf("deal-%d", d.ID),
			Date:    d.SignatureDate,
			Amount:  d.AgencyFee,
			Surface: d.SurfaceM2,
			Type:    d.Type,
			Address: d.Property.AddressFull,
			Zone:    zone,
		})
	}
	return merged
}

// MergeForecast lifts in-flight deals into the aggregation shape, keeping
// only the ones whose year falls inside the period. Zone is resolved with
// the same postal-code rules as ingestion.
func (a *Aggregator) MergeForecast(deals []models.ForecastDeal, period string) []models.MergedDeal {
	minYear, maxYear := a.yearSpan(period)

	var merged []models.MergedDeal
	for _, d := range deals {
		date := parsing.ParseDayMonthYear(d.Date, a.now())
		if date.Year() < minYear || date.Year() > maxYear {
			continue
		}
		merged = append(merged, models.MergedDeal{
			ID:         "forecast-" + uuid.NewString(),
			Date:       date,
			Amount:     d.Amount,
			Surface:    d.Surface,
			Type:       models.ClassifyDealType(d.Type),
			Address:    d.Address,
			Zone:       geo.DeduceZone(d.ZipCode),
			IsForecast: true,
		})
	}
	return merged
}

// Build computes the full dashboard view for a period over an already
// merged deal set. No step can fail: empty input yields zero KPIs and an
// all-zero series over the fallback timeline.
func (a *Aggregator) Build(period string, merged []models.MergedDeal) models.DashboardData {
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	return models.DashboardData{
		Kpis:             computeKpis(merged),
		RevenueHistory:   a.monthlySeries(period, merged),
		ZoneDistribution: zoneDistribution(merged),
		RecentDeals:      dealSummaries(merged),
	}
}

// computeKpis applies the house rules: signatures are VENTE/LOCATION rows
// only, but revenue and surface sum over every row, valuation opinions
// included. AvgFee divides total revenue by signature count — the business
// owner counts opinion fees as part of the signature basket.
func computeKpis(merged []models.MergedDeal) models.Kpis {
	kpis := models.Kpis{}
	for _, d := range merged {
		kpis.TotalRevenue += d.Amount
		kpis.TotalSurface += d.Surface
		if models.IsSignature(d.Type) {
			kpis.TotalSignatures++
		}
	}
	if kpis.TotalSignatures > 0 {
		kpis.AvgFee = kpis.TotalRevenue / float64(kpis.TotalSignatures)
	}
	return kpis
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d", frMonths[int(t.Month())-1], t.Year()%100)
}

// monthlySeries generates one bucket per calendar month of the period and
// accumulates each deal into its month. The label carries the two-digit
// year so the same month of different years cannot collide within one
// period.
func (a *Aggregator) monthlySeries(period string, merged []models.MergedDeal) []models.MonthlyRevenue {
	start, end := a.timelineBounds(period, merged)

	series := []models.MonthlyRevenue{}
	index := map[string]int{}
	iter := monthStart(start)
	for len(series) < maxMonthBuckets {
		if iter.After(end) && !(iter.Month() == end.Month() && iter.Year() == end.Year()) {
			break
		}
		label := monthLabel(iter)
		if _, ok := index[label]; !ok {
			index[label] = len(series)
			series = append(series, models.MonthlyRevenue{Month: label})
		}
		iter = iter.AddDate(0, 1, 0)
	}

	for _, d := range merged {
		if i, ok := index[monthLabel(d.Date)]; ok {
			series[i].Revenue += d.Amount
		}
	}

	var running float64
	for i := range series {
		running += series[i].Revenue
		series[i].Cumulative = running
	}
	return series
}

// zoneDistribution groups the merged set by zone. Revenue sums every row;
// the transaction count only counts real signatures.
func zoneDistribution(merged []models.MergedDeal) []models.ZoneSlice {
	type zoneAcc struct {
		revenue float64
		count   int
	}
	totals := map[string]*zoneAcc{}
	var order []string
	for _, d := range merged {
		acc, ok := totals[d.Zone]
		if !ok {
			acc = &zoneAcc{}
			totals[d.Zone] = acc
			order = append(order, d.Zone)
		}
		acc.revenue += d.Amount
		if models.IsSignature(d.Type) {
			acc.count++
		}
	}

	slices := make([]models.ZoneSlice, 0, len(order))
	for _, zone := range order {
		slices = append(slices, models.ZoneSlice{
			Name:  geo.PrettyZone(zone),
			Value: totals[zone].revenue,
			Count: totals[zone].count,
		})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value > slices[j].Value
	})
	return slices
}

func dealSummaries(merged []models.MergedDeal) []models.DealSummary {
	summaries := make([]models.DealSummary, 0, len(merged))
	for _, d := range merged {
		summaries = append(summaries, models.DealSummary{
			ID:         d.ID,
			Property:   d.Address,
			Type:       d.Type,
			Surface:    d.Surface,
			Date:       d.Date.Format("02/01/2006"),
			Fee:        d.Amount,
			IsForecast: d.IsForecast,
		})
	}
	return summaries
}

// ComputeForecastStats summarizes the raw in-flight pipeline for the
// forecast page.
func ComputeForecastStats(deals []models.ForecastDeal) models.ForecastStats {
	stats := models.ForecastStats{DealCount: len(deals)}
	for _, d := range deals {
		stats.PotentialRevenue += d.Amount
		stats.CommercialSurface += d.Surface
	}
	if stats.DealCount > 0 {
		stats.AvgDealSize = stats.PotentialRevenue / float64(stats.DealCount)
	}
	return stats
}
