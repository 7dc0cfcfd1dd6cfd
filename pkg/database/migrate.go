package database

import (
	"saedam-be/internal/model"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date for a fresh deployment.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Message{},
	)
}
