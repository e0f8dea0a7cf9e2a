// Package db contains things related to the database connection
package db

import (
	"fmt"
	"hoaxify/social-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver := viper.GetString("db.driver"); driver {
	case "postgres":
		dialector = postgres.Open(viper.GetString("db.dsn"))
	case "sqlite":
		dialector = sqlite.Open(viper.GetString("db.dsn"))
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Token{}, model.Hoax{}, model.FileAttachment{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
