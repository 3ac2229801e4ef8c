// Package bootstrap establishes the runtime dependencies shared by the
// server and the CLI tools.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"telanix/internal/cache"
	"telanix/internal/config"
	"telanix/internal/database"
	"telanix/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct{}

// InitRuntime connects to the primary database, the read replica (when
// configured) and Redis. A Redis failure yields a nil client, not an
// error; the ledger runs without its cache.
func InitRuntime(cfg *config.Config, _ Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.ConnectReadReplica(cfg); err != nil {
		return nil, nil, fmt.Errorf("read replica connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevLogin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development login: %w", err)
	}

	return db, r, nil
}

// ensureDevLogin creates a known dev account (password "password123") so a
// fresh development database is immediately usable. No-op elsewhere.
func ensureDevLogin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapLogin {
		return nil
	}

	email := strings.TrimSpace(cfg.DevLoginEmail)
	if email == "" {
		email = "test@example.com"
	}

	var existing models.User
	err := db.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:    email,
			Password: string(hashed),
			Name:     "Dev Login",
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		stats := models.UserStats{UserID: user.ID, JoinDate: time.Now().UTC()}
		if err := tx.Create(&stats).Error; err != nil {
			return err
		}
		log.Printf("bootstrapped development login %s", email)
		return nil
	})
}
