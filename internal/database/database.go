package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Wikid82/snare/internal/models"
)

// Connect opens the console's SQLite database at dbPath and migrates the
// console-local tables.
func Connect(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the console-local tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Notification{},
		&models.NotificationProvider{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
