package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	Server struct {
		Port        string   `env:"SERVER_PORT" envDefault:"5250"`
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/lyonoffices.db"`
	}

	// Google Sheets source configuration
	Sheets struct {
		// Spreadsheet holding both the transaction log and the forecast tab
		SpreadsheetID string `env:"SHEET_ID" envDefault:"1v1CjpxJyKqM1Ac7EF14B0XSwXVB9ti2oRohHRM78sgI"`

		// One GID per reporting year of closed transactions
		TransactionGIDs []string `env:"SHEET_TRANSACTION_GIDS" envSeparator:"," envDefault:"0,1727412465,1700662717"`

		// GID of the in-flight deals tab
		ForecastGID string `env:"SHEET_FORECAST_GID" envDefault:"1125949711"`

		// Fetch timeout in seconds
		FetchTimeout int `env:"SHEET_FETCH_TIMEOUT" envDefault:"15"`

		// Number of retries per tab before giving up
		FetchRetries int `env:"SHEET_FETCH_RETRIES" envDefault:"2"`
	}

	// Sync configuration
	Sync struct {
		// Cron expression for the periodic full reload
		Schedule string `env:"SYNC_SCHEDULE" envDefault:"0 6 * * *"`

		// Whether to run a full reload when the server starts
		RunOnStart bool `env:"SYNC_ON_START" envDefault:"false"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
