package db

import (
	"fmt"

	"github.com/zulandar/drydock/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model for migration, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&models.Client{},
		&models.Vessel{},
		&models.Project{},
		&models.WorkOrder{},
		&models.Discipline{},
		&models.Staff{},
		&models.Timesheet{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
