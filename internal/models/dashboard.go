package models

// Kpis is the summary block of the dashboard.
type Kpis struct {
	TotalSignatures int     `json:"total_signatures"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgFee          float64 `json:"avg_fee"`
	TotalSurface    float64 `json:"total_surface"`
}

// MonthlyRevenue is one calendar-month bucket of the revenue series.
// Cumulative carries the running total in chronological order.
type MonthlyRevenue struct {
	Month      string  `json:"month"`
	Revenue    float64 `json:"revenue"`
	Cumulative float64 `json:"cumulative"`
}

// ZoneSlice is one entry of the geographic distribution. Value sums the
// revenue of every deal in the zone; Count only counts real signatures.
type ZoneSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// DealSummary is one row of the dashboard transactions table.
type DealSummary struct {
	ID         string  `json:"id"`
	Property   string  `json:"property"`
	Type       string  `json:"type"`
	Surface    float64 `json:"surface"`
	Date       string  `json:"date"`
	Fee        float64 `json:"fee"`
	IsForecast bool    `json:"is_forecast"`
}

// DashboardData is the full aggregated view served to the dashboard.
type DashboardData struct {
	Kpis             Kpis             `json:"kpis"`
	RevenueHistory   []MonthlyRevenue `json:"revenue_history"`
	ZoneDistribution []ZoneSlice      `json:"zone_distribution"`
	RecentDeals      []DealSummary    `json:"recent_deals"`
}

// ForecastStats summarizes the in-flight pipeline.
type ForecastStats struct {
	DealCount         int     `json:"deal_count"`
	PotentialRevenue  float64 `json:"potential_revenue"`
	AvgDealSize       float64 `json:"avg_deal_size"`
	CommercialSurface float64 `json:"commercial_surface"`
}

// IngestReport is the outcome of one full reload run.
type IngestReport struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Logs    []string `json:"logs"`
	Error   string   `json:"error,omitempty"`
}
