package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffclock/internal/model"
	"staffclock/pkg/logger"
)

// Migrate runs database migration and creates all tables.
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.DayRecord{},
	)
	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed")
	return nil
}
