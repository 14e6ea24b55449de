package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/config"
)

// Connect opens the shared postgres connection pool. The config object is the
// single source of connection parameters; nothing here re-reads the environment.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBName,
		cfg.DBPort,
	)

	// TranslateError turns driver-specific constraint violations into
	// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated so writes that race
	// past the service-level probes still map to 409/422.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
