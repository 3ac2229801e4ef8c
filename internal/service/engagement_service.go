package service

import (
	"context"
	"fmt"

	"telanix/internal/models"
	"telanix/internal/repository"
)

// EngagementService handles likes and ratings.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
}

type RateMovieInput struct {
	UserID  uint
	MovieID uint
	Score   int
}

func NewEngagementService(engagementRepo repository.EngagementRepository) *EngagementService {
	return &EngagementService{engagementRepo: engagementRepo}
}

func (s *EngagementService) LikeMovie(ctx context.Context, userID, movieID uint) error {
	if movieID == 0 {
		return models.NewValidationError("Movie ID is required")
	}
	return s.engagementRepo.Like(ctx, userID, movieID)
}

func (s *EngagementService) UnlikeMovie(ctx context.Context, userID, movieID uint) error {
	if movieID == 0 {
		return models.NewValidationError("Movie ID is required")
	}
	return s.engagementRepo.Unlike(ctx, userID, movieID)
}

func (s *EngagementService) ListLikes(ctx context.Context, userID uint) ([]models.Like, error) {
	return s.engagementRepo.ListLikes(ctx, userID)
}

func (s *EngagementService) RateMovie(ctx context.Context, in RateMovieInput) (*models.Rating, error) {
	if in.MovieID == 0 {
		return nil, models.NewValidationError("Movie ID is required")
	}
	if in.Score < models.MinScore || in.Score > models.MaxScore {
		return nil, models.NewValidationError(fmt.Sprintf("Score must be between %d and %d", models.MinScore, models.MaxScore))
	}
	return s.engagementRepo.Rate(ctx, in.UserID, in.MovieID, in.Score)
}

func (s *EngagementService) UnrateMovie(ctx context.Context, userID, movieID uint) error {
	if movieID == 0 {
		return models.NewValidationError("Movie ID is required")
	}
	return s.engagementRepo.Unrate(ctx, userID, movieID)
}

// GetRating returns (nil, nil) when the user has not rated the movie.
func (s *EngagementService) GetRating(ctx context.Context, userID, movieID uint) (*models.Rating, error) {
	return s.engagementRepo.GetRating(ctx, userID, movieID)
}

func (s *EngagementService) ListRatings(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.engagementRepo.ListRatings(ctx, userID)
}
