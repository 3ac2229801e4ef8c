package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"telanix/internal/cache"
	"telanix/internal/middleware"
	"telanix/internal/models"
	"telanix/internal/observability"

	"gorm.io/gorm"
)

// StatsRepository exposes read access to per-user engagement counters.
// Counter writes happen only inside the engagement and review repositories'
// transactions, never through this interface.
type StatsRepository interface {
	GetByUser(ctx context.Context, userID uint) (*models.UserStats, error)
	UpdateLastLogin(ctx context.Context, userID uint) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetByUser(ctx context.Context, userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	key := cache.UserStatsKey(userID)

	err := cache.Aside(ctx, key, &stats, cache.StatsTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).First(&stats, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("UserStats", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) UpdateLastLogin(ctx context.Context, userID uint) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("last_login", now).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.UserStatsKey(userID))
	return nil
}

// incrementStat bumps one counter column by one inside the caller's
// transaction. column must be one of the models.StatTotal* constants.
func incrementStat(tx *gorm.DB, userID uint, column string) error {
	return tx.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update(column, gorm.Expr(fmt.Sprintf("%s + 1", column))).Error
}

// decrementStat lowers one counter column by one, clamping at zero. A
// clamped decrement means a counter drifted from its relation; it is
// logged and counted but not treated as an error, so the triggering
// delete still succeeds.
func decrementStat(tx *gorm.DB, userID uint, column string) error {
	res := tx.Model(&models.UserStats{}).
		Where(fmt.Sprintf("user_id = ? AND %s > 0", column), userID).
		Update(column, gorm.Expr(fmt.Sprintf("%s - 1", column)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		middleware.Logger.Warn("counter decrement clamped at zero",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("counter", column),
		)
		observability.CounterClamps.WithLabelValues(column).Inc()
	}
	return nil
}
