package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lyonoffices/server/config"
	"lyonoffices/server/internal/api"
	"lyonoffices/server/internal/database"
	"lyonoffices/server/internal/fetch"
	"lyonoffices/server/internal/ingestion"
	"lyonoffices/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	fetcher := fetch.NewSheetClient(
		cfg.Sheets.SpreadsheetID,
		time.Duration(cfg.Sheets.FetchTimeout)*time.Second,
		cfg.Sheets.FetchRetries,
		logger,
	)
	importer := ingestion.NewImporter(fetcher, db, cfg.Sheets.TransactionGIDs, logger)

	if cfg.Sync.RunOnStart {
		logger.Info("Running initial sync...")
		report := importer.Run(context.Background())
		if !report.Success {
			logger.WithField("error", report.Error).Error("Initial sync failed")
		}
	}

	sched := scheduler.NewScheduler(importer, logger)
	if err := sched.Start(cfg.Sync.Schedule); err != nil {
		logger.WithError(err).Fatal("Failed to start sync scheduler")
	}
	defer sched.Stop()

	handler := api.NewHandler(db, importer, fetcher, cfg.Sheets.ForecastGID, logger)

	router := gin.Default()
	api.SetupRoutes(router, handler, cfg.Server.CORSOrigins)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
