package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lyonoffices/server/internal/aggregation"
	"lyonoffices/server/internal/database"
	"lyonoffices/server/internal/fetch"
	"lyonoffices/server/internal/ingestion"
	"lyonoffices/server/internal/models"
)

type Handler struct {
	db          *database.Database
	importer    *ingestion.Importer
	fetcher     fetch.Fetcher
	forecastGID string
	aggregator  *aggregation.Aggregator
	logger      *logrus.Logger
}

func NewHandler(db *database.Database, importer *ingestion.Importer, fetcher fetch.Fetcher, forecastGID string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:          db,
		importer:    importer,
		fetcher:     fetcher,
		forecastGID: forecastGID,
		aggregator:  aggregation.NewAggregator(),
		logger:      logger,
	}
}

// RunSync triggers a full wipe-and-reload of the transaction log. Per-tab
// problems show up as log lines in the report; only a storage failure
// makes the run unsuccessful.
func (h *Handler) RunSync(c *gin.Context) {
	report := h.importer.Run(c.Request.Context())
	if !report.Success {
		c.JSON(http.StatusInternalServerError, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDashboard serves the aggregated view for a period selector, merging
// in the live forecast tab when includeForecast is set.
func (h *Handler) GetDashboard(c *gin.Context) {
	period := c.DefaultQuery("period", aggregation.PeriodAll)
	includeForecast, _ := strconv.ParseBool(c.DefaultQuery("includeForecast", "false"))

	start, end := h.aggregator.FilterRange(period)
	deals, err := h.db.FindDeals(start, end)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query deals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query deals"})
		return
	}

	merged := aggregation.MergeActual(deals)
	if includeForecast {
		forecast := h.fetchForecast(c.Request.Context())
		merged = append(merged, h.aggregator.MergeForecast(forecast, period)...)
	}

	c.JSON(http.StatusOK, h.aggregator.Build(period, merged))
}

// GetForecast serves the raw in-flight pipeline with its summary stats.
func (h *Handler) GetForecast(c *gin.Context) {
	deals := h.fetchForecast(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"deals": deals,
		"stats": aggregation.ComputeForecastStats(deals),
	})
}

// fetchForecast re-derives the forecast set from the live tab. Forecast
// data is best-effort on the read path: any failure degrades to an empty
// set rather than breaking the dashboard.
func (h *Handler) fetchForecast(ctx context.Context) []models.ForecastDeal {
	text, err := h.fetcher.FetchTab(ctx, h.forecastGID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to fetch forecast tab")
		return nil
	}
	deals, err := ingestion.ParseForecast(text)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to parse forecast tab")
		return nil
	}
	return deals
}

// Health is a minimal liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}
