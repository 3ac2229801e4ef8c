package service

import (
	"context"
	"fmt"

	"telanix/internal/models"
	"telanix/internal/repository"
)

const (
	maxReviewTitleLen   = 200
	maxReviewContentLen = 10000
)

// ReviewService handles movie reviews. Author name and avatar are copied
// onto the review at write time; later profile edits do not rewrite
// existing reviews.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

type CreateReviewInput struct {
	UserID  uint
	MovieID uint
	Score   int
	Title   string
	Content string
	Spoiler bool
}

type UpdateReviewInput struct {
	UserID   uint
	ReviewID uint
	Score    int
	Title    string
	Content  string
	Spoiler  bool
}

func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

func validateReviewFields(score int, title, content string) error {
	if score < models.MinScore || score > models.MaxScore {
		return models.NewValidationError(fmt.Sprintf("Score must be between %d and %d", models.MinScore, models.MaxScore))
	}
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxReviewTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", maxReviewTitleLen))
	}
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxReviewContentLen {
		return models.NewValidationError(fmt.Sprintf("Content too long (max %d characters)", maxReviewContentLen))
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.MovieID == 0 {
		return nil, models.NewValidationError("Movie ID is required")
	}
	if err := validateReviewFields(in.Score, in.Title, in.Content); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		MovieID:    in.MovieID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.AvatarURL,
		Score:      in.Score,
		Title:      in.Title,
		Content:    in.Content,
		Spoiler:    in.Spoiler,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own reviews")
	}
	if err := validateReviewFields(in.Score, in.Title, in.Content); err != nil {
		return nil, err
	}

	review.Score = in.Score
	review.Title = in.Title
	review.Content = in.Content
	review.Spoiler = in.Spoiler
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return models.NewForbiddenError("You can only delete your own reviews")
	}
	return s.reviewRepo.Delete(ctx, review)
}

// MarkHelpful counts a helpful vote. Votes are not deduplicated per user.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID uint) (*models.Review, error) {
	return s.reviewRepo.MarkHelpful(ctx, reviewID)
}

func (s *ReviewService) ListByMovie(ctx context.Context, movieID uint) ([]models.Review, error) {
	return s.reviewRepo.ListByMovie(ctx, movieID)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	return s.reviewRepo.ListByUser(ctx, userID)
}
