package repository

import (
	"context"
	"errors"

	"telanix/internal/cache"
	"telanix/internal/models"
	"telanix/internal/observability"

	"gorm.io/gorm"
)

// ReviewRepository persists movie reviews. Creating or deleting a review
// adjusts total_reviews inside the same transaction.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
	MarkHelpful(ctx context.Context, id uint) (*models.Review, error)
	ListByMovie(ctx context.Context, movieID uint) ([]models.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := incrementStat(tx, review.UserID, models.StatTotalReviews); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		observability.RecordMutation("review_create", "rejected")
		return err
	}
	observability.RecordMutation("review_create", "applied")
	cache.InvalidateMovieReviews(ctx, review.MovieID)
	cache.Invalidate(ctx, cache.UserStatsKey(review.UserID))
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := readDB(r.db).WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

// Update overwrites an existing review in place. The counter does not
// move; an edit is not a new review.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMovieReviews(ctx, review.MovieID)
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Review{}, review.ID)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Review", review.ID)
		}
		if err := decrementStat(tx, review.UserID, models.StatTotalReviews); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		observability.RecordMutation("review_delete", "rejected")
		return err
	}
	observability.RecordMutation("review_delete", "applied")
	cache.InvalidateMovieReviews(ctx, review.MovieID)
	cache.Invalidate(ctx, cache.UserStatsKey(review.UserID))
	return nil
}

// MarkHelpful atomically increments the helpful count and returns the
// updated review. There is no per-user guard; repeat votes all count.
func (r *reviewRepository) MarkHelpful(ctx context.Context, id uint) (*models.Review, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("helpful", gorm.Expr("helpful + 1"))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Review", id)
	}

	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateMovieReviews(ctx, review.MovieID)
	return &review, nil
}

// ListByMovie returns a movie's reviews ordered most-helpful first,
// newest first within equal helpful counts.
func (r *reviewRepository) ListByMovie(ctx context.Context, movieID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	key := cache.MovieReviewsKey(movieID)

	err := cache.Aside(ctx, key, &reviews, cache.MovieReviewsTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Where("movie_id = ?", movieID).
			Order("helpful DESC, created_at DESC").
			Find(&reviews).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}
