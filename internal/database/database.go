package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lyonoffices/server/internal/models"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Single connection: sqlite serializes writers anyway, and this keeps
	// an in-memory database from being split across pooled connections.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return &Database{db: db}, nil
}

// RunMigrations creates or updates the properties and deals tables.
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&models.Property{}, &models.Deal{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ReplaceAllDeals swaps the persisted record set for a new one inside a
// single transaction. Concurrent readers either see the old set or the new
// one, never an empty-but-not-yet-refilled store.
func (d *Database) ReplaceAllDeals(deals []models.Deal) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Deal{}).Error; err != nil {
			return fmt.Errorf("failed to clear deals: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Property{}).Error; err != nil {
			return fmt.Errorf("failed to clear properties: %w", err)
		}
		for i := range deals {
			// Create cascades into the associated Property
			if err := tx.Create(&deals[i]).Error; err != nil {
				return fmt.Errorf("failed to insert deal: %w", err)
			}
		}
		return nil
	})
}

// FindDeals returns deals with their embedded Property, signature date in
// [start, end), newest first. A zero bound is unbounded on that side.
func (d *Database) FindDeals(start, end time.Time) ([]models.Deal, error) {
	query := d.db.Preload("Property").Order("signature_date DESC")
	if !start.IsZero() {
		query = query.Where("signature_date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("signature_date < ?", end)
	}

	var deals []models.Deal
	if err := query.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// CountDeals returns the number of persisted deals.
func (d *Database) CountDeals() (int64, error) {
	var count int64
	err := d.db.Model(&models.Deal{}).Count(&count).Error
	return count, err
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
