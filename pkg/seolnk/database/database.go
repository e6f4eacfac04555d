package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect initializes the database connection. A postgres:// DSN uses
// the postgres driver; anything else is treated as a SQLite path.
func Connect(dsn string) error {
	var err error
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	return err
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
