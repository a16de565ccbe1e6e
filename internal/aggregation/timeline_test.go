package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lyonoffices/server/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func actualDeal(id int64, date time.Time, dealType string, fee, surface float64, zone string) models.Deal {
	return models.Deal{
		ID:            id,
		Type:          dealType,
		SignatureDate: date,
		SurfaceM2:     surface,
		AgencyFee:     fee,
		Property:      models.Property{AddressFull: "addr", Zone: zone},
	}
}

func TestFilterRange(t *testing.T) {
	now := day(2026, time.September, 1)
	agg := NewAggregatorAt(fixedClock(now))

	t.Run("Calendar year", func(t *testing.T) {
		start, end := agg.FilterRange("2024")
		assert.Equal(t, day(2024, time.January, 1), start)
		assert.Equal(t, day(2025, time.January, 1), end)
	})

	t.Run("Rolling three months", func(t *testing.T) {
		start, end := agg.FilterRange(PeriodLast3Months)
		assert.Equal(t, day(2026, time.June, 1), start)
		assert.True(t, end.IsZero())
	})

	t.Run("All is unbounded", func(t *testing.T) {
		start, end := agg.FilterRange(PeriodAll)
		assert.True(t, start.IsZero())
		assert.True(t, end.IsZero())
	})
}

func TestBuild_Kpis(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2024, time.July, 1)))

	merged := MergeActual([]models.Deal{
		actualDeal(1, day(2024, time.March, 15), models.DealTypeVente, 2500, 85, "LYON_2"),
		actualDeal(2, day(2024, time.April, 20), models.DealTypeLocation, 1800, 120, "EST_LYONNAIS"),
		actualDeal(3, day(2024, time.June, 10), models.DealTypeAutre, 500, 60, "LYON_2"),
	})

	data := agg.Build("2024", merged)

	// Valuation opinions contribute revenue but are not signatures, and
	// AvgFee divides total revenue by signature count.
	assert.Equal(t, 2, data.Kpis.TotalSignatures)
	assert.Equal(t, float64(4800), data.Kpis.TotalRevenue)
	assert.Equal(t, float64(2400), data.Kpis.AvgFee)
	assert.Equal(t, float64(265), data.Kpis.TotalSurface)
}

func TestBuild_MonthlySeriesInvariants(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2024, time.July, 1)))

	merged := MergeActual([]models.Deal{
		actualDeal(1, day(2024, time.March, 15), models.DealTypeVente, 2500, 85, "LYON_2"),
		actualDeal(2, day(2024, time.March, 28), models.DealTypeLocation, 1800, 120, "EST_LYONNAIS"),
		actualDeal(3, day(2024, time.November, 2), models.DealTypeVente, 3000, 90, "LYON_6"),
	})

	data := agg.Build("2024", merged)

	assert.Len(t, data.RevenueHistory, 12)
	assert.Equal(t, "janv. 24", data.RevenueHistory[0].Month)
	assert.Equal(t, "déc. 24", data.RevenueHistory[11].Month)

	var bucketSum float64
	for _, m := range data.RevenueHistory {
		bucketSum += m.Revenue
	}
	assert.Equal(t, data.Kpis.TotalRevenue, bucketSum)
	assert.Equal(t, data.Kpis.TotalRevenue, data.RevenueHistory[11].Cumulative)

	// March holds both spring deals
	assert.Equal(t, float64(4300), data.RevenueHistory[2].Revenue)
	assert.Equal(t, float64(4300), data.RevenueHistory[2].Cumulative)
}

func TestBuild_EmptyStoreAllPeriod(t *testing.T) {
	now := day(2026, time.September, 1)
	agg := NewAggregatorAt(fixedClock(now))

	data := agg.Build(PeriodAll, nil)

	assert.Equal(t, models.Kpis{}, data.Kpis)
	assert.Len(t, data.RevenueHistory, 12, "fallback timeline covers the current calendar year")
	assert.Equal(t, "janv. 26", data.RevenueHistory[0].Month)
	assert.Equal(t, "déc. 26", data.RevenueHistory[11].Month)
	for _, m := range data.RevenueHistory {
		assert.Zero(t, m.Revenue)
	}
	assert.Empty(t, data.ZoneDistribution)
	assert.Empty(t, data.RecentDeals)
}

func TestBuild_AllPeriodBoundsFromData(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2026, time.September, 1)))

	merged := MergeActual([]models.Deal{
		actualDeal(1, day(2024, time.November, 20), models.DealTypeVente, 1000, 50, "LYON_2"),
		actualDeal(2, day(2025, time.February, 5), models.DealTypeVente, 2000, 70, "LYON_3"),
	})

	data := agg.Build(PeriodAll, merged)

	// Nov 24 through Feb 25 inclusive
	assert.Len(t, data.RevenueHistory, 4)
	assert.Equal(t, "nov. 24", data.RevenueHistory[0].Month)
	assert.Equal(t, "févr. 25", data.RevenueHistory[3].Month)
	assert.Equal(t, float64(3000), data.RevenueHistory[3].Cumulative)
}

func TestBuild_LabelsDisambiguateYears(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2026, time.September, 1)))

	merged := MergeActual([]models.Deal{
		actualDeal(1, day(2024, time.March, 1), models.DealTypeVente, 1000, 10, "LYON_2"),
		actualDeal(2, day(2025, time.March, 1), models.DealTypeVente, 2000, 10, "LYON_2"),
	})

	data := agg.Build(PeriodAll, merged)

	revenues := map[string]float64{}
	for _, m := range data.RevenueHistory {
		revenues[m.Month] = m.Revenue
	}
	assert.Equal(t, float64(1000), revenues["mars 24"])
	assert.Equal(t, float64(2000), revenues["mars 25"])
}

func TestBuild_BucketCountCapped(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2026, time.September, 1)))

	// A stray malformed date far in the past would otherwise explode the
	// series for the "all" period.
	merged := MergeActual([]models.Deal{
		actualDeal(1, day(1990, time.January, 1), models.DealTypeVente, 100, 10, "LYON_2"),
		actualDeal(2, day(2026, time.March, 1), models.DealTypeVente, 200, 10, "LYON_2"),
	})

	data := agg.Build(PeriodAll, merged)
	assert.Len(t, data.RevenueHistory, 60)
}

func TestBuild_ZoneDistribution(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2024, time.July, 1)))

	merged := MergeActual([]models.Deal{
		actualDeal(1, day(2024, time.March, 15), models.DealTypeVente, 2500, 85, "LYON_2"),
		actualDeal(2, day(2024, time.April, 20), models.DealTypeAutre, 700, 0, "LYON_2"),
		actualDeal(3, day(2024, time.May, 10), models.DealTypeLocation, 1800, 120, "EST_LYONNAIS"),
	})

	data := agg.Build("2024", merged)

	assert.Len(t, data.ZoneDistribution, 2)
	lyon2 := data.ZoneDistribution[0]
	assert.Equal(t, "Lyon 2", lyon2.Name)
	assert.Equal(t, float64(3200), lyon2.Value, "revenue sums all types")
	assert.Equal(t, 1, lyon2.Count, "count only counts signatures")

	est := data.ZoneDistribution[1]
	assert.Equal(t, "EST LYONNAIS", est.Name)
	assert.Equal(t, float64(1800), est.Value)
	assert.Equal(t, 1, est.Count)
}

func TestBuild_SortsMergedDescending(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2024, time.July, 1)))

	merged := MergeActual([]models.Deal{
		actualDeal(1, day(2024, time.January, 5), models.DealTypeVente, 100, 10, "LYON_2"),
		actualDeal(2, day(2024, time.June, 5), models.DealTypeVente, 200, 10, "LYON_2"),
	})

	data := agg.Build("2024", merged)

	assert.Equal(t, "deal-2", data.RecentDeals[0].ID)
	assert.Equal(t, "deal-1", data.RecentDeals[1].ID)
	assert.Equal(t, "05/06/2024", data.RecentDeals[0].Date)
}

func TestMergeForecast(t *testing.T) {
	agg := NewAggregatorAt(fixedClock(day(2026, time.September, 1)))

	forecast := []models.ForecastDeal{
		{Date: "10/10/2026", Address: "12 Quai Perrache", ZipCode: "69002", Amount: 12000, Surface: 150, Type: "LOCATION"},
		{Date: "15/01/2025", Address: "Vieux deal", ZipCode: "69800", Amount: 5000, Surface: 80, Type: "VENTE"},
	}

	t.Run("Year filter keeps matching rows", func(t *testing.T) {
		merged := agg.MergeForecast(forecast, "2026")
		assert.Len(t, merged, 1)
		assert.True(t, merged[0].IsForecast)
		assert.Equal(t, "LYON_2", merged[0].Zone, "forecast zone uses the canonical resolver")
		assert.Equal(t, models.DealTypeLocation, merged[0].Type)
		assert.Contains(t, merged[0].ID, "forecast-")
	})

	t.Run("All period keeps everything", func(t *testing.T) {
		merged := agg.MergeForecast(forecast, PeriodAll)
		assert.Len(t, merged, 2)
	})
}

func TestComputeForecastStats(t *testing.T) {
	deals := []models.ForecastDeal{
		{Amount: 12000, Surface: 150},
		{Amount: 8000, Surface: 200},
	}

	stats := ComputeForecastStats(deals)
	assert.Equal(t, 2, stats.DealCount)
	assert.Equal(t, float64(20000), stats.PotentialRevenue)
	assert.Equal(t, float64(10000), stats.AvgDealSize)
	assert.Equal(t, float64(350), stats.CommercialSurface)

	assert.Equal(t, models.ForecastStats{}, ComputeForecastStats(nil))
}
