package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// Migrate creates the users, categories and tasks tables
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
