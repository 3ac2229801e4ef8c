package repository

import (
	"context"
	"errors"

	"telanix/internal/cache"
	"telanix/internal/models"
	"telanix/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository persists likes and ratings. Every write that adds
// or removes a row adjusts the matching user_stats counter inside the
// same transaction, so the counters never drift under concurrent writes.
type EngagementRepository interface {
	Like(ctx context.Context, userID, movieID uint) error
	Unlike(ctx context.Context, userID, movieID uint) error
	IsLiked(ctx context.Context, userID, movieID uint) (bool, error)
	ListLikes(ctx context.Context, userID uint) ([]models.Like, error)

	Rate(ctx context.Context, userID, movieID uint, score int) (*models.Rating, error)
	Unrate(ctx context.Context, userID, movieID uint) error
	GetRating(ctx context.Context, userID, movieID uint) (*models.Rating, error)
	ListRatings(ctx context.Context, userID uint) ([]models.Rating, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository returns a new EngagementRepository implementation.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// Like inserts the like row and bumps total_likes in one transaction.
// The conditional insert makes concurrent duplicate likes race-safe:
// only the insert that actually lands a row increments the counter.
func (r *engagementRepository) Like(ctx context.Context, userID, movieID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: userID, MovieID: movieID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("Movie already liked")
		}
		if err := incrementStat(tx, userID, models.StatTotalLikes); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		observability.RecordMutation("like", "rejected")
		return err
	}
	observability.RecordMutation("like", "applied")
	cache.InvalidateEngagement(ctx, userID)
	return nil
}

// Unlike removes the like row and lowers total_likes in one transaction.
func (r *engagementRepository) Unlike(ctx context.Context, userID, movieID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&models.Like{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Like", movieID)
		}
		if err := decrementStat(tx, userID, models.StatTotalLikes); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		observability.RecordMutation("unlike", "rejected")
		return err
	}
	observability.RecordMutation("unlike", "applied")
	cache.InvalidateEngagement(ctx, userID)
	return nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, userID, movieID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) ListLikes(ctx context.Context, userID uint) ([]models.Like, error) {
	likes := []models.Like{}
	key := cache.UserLikesKey(userID)

	err := cache.Aside(ctx, key, &likes, cache.EngagementTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&likes).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return likes, nil
}

// Rate upserts the user's rating for a movie. total_ratings is only
// incremented when the conditional insert lands a new row; a lost insert
// race falls through to a plain score update, so two concurrent first
// ratings still count once.
func (r *engagementRepository) Rate(ctx context.Context, userID, movieID uint, score int) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rating = models.Rating{UserID: userID, MovieID: movieID, Score: score}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoNothing: true,
		}).Create(&rating)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}

		if res.RowsAffected > 0 {
			if err := incrementStat(tx, userID, models.StatTotalRatings); err != nil {
				return models.NewInternalError(err)
			}
			return nil
		}

		// Row already existed: overwrite the score in place.
		if err := tx.Model(&models.Rating{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).
			Update("score", score).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).
			First(&rating).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		observability.RecordMutation("rate", "rejected")
		return nil, err
	}
	observability.RecordMutation("rate", "applied")
	cache.InvalidateEngagement(ctx, userID)
	return &rating, nil
}

// Unrate removes the rating row and lowers total_ratings in one transaction.
func (r *engagementRepository) Unrate(ctx context.Context, userID, movieID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&models.Rating{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Rating", movieID)
		}
		if err := decrementStat(tx, userID, models.StatTotalRatings); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		observability.RecordMutation("unrate", "rejected")
		return err
	}
	observability.RecordMutation("unrate", "applied")
	cache.InvalidateEngagement(ctx, userID)
	return nil
}

// GetRating returns (nil, nil) when the user has not rated the movie.
func (r *engagementRepository) GetRating(ctx context.Context, userID, movieID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *engagementRepository) ListRatings(ctx context.Context, userID uint) ([]models.Rating, error) {
	ratings := []models.Rating{}
	key := cache.UserRatingsKey(userID)

	err := cache.Aside(ctx, key, &ratings, cache.EngagementTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Where("user_id = ?", userID).
			Order("updated_at DESC").
			Find(&ratings).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return ratings, nil
}
