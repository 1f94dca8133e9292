package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectPostgres opens a GORM connection against the supplied Postgres URL.
func ConnectPostgres(url string) (*gorm.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database url must not be empty")
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// ConnectSQLite opens an embedded sqlite database, used for local development
// and tests when no Postgres URL is configured.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return db, nil
}
