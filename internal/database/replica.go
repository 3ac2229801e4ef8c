package database

import (
	"fmt"

	"telanix/internal/config"
	"telanix/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil when none is
// configured. Callers fall back to the primary in that case.
func GetReadDB() *gorm.DB {
	return readDB
}

// ConnectReadReplica opens the optional read-replica connection. A blank
// DB_READ_HOST leaves reads on the primary.
func ConnectReadReplica(cfg *config.Config) error {
	if cfg.DBReadHost == "" {
		return nil
	}

	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to read replica: %w", err)
	}

	readDB = db
	middleware.Logger.Info("Read replica connected successfully")
	return nil
}
