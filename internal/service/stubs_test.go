package service

import (
	"context"

	"telanix/internal/models"
)

type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type statsRepoStub struct {
	getByUserFn       func(context.Context, uint) (*models.UserStats, error)
	updateLastLoginFn func(context.Context, uint) error
}

func (s *statsRepoStub) GetByUser(ctx context.Context, userID uint) (*models.UserStats, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *statsRepoStub) UpdateLastLogin(ctx context.Context, userID uint) error {
	return s.updateLastLoginFn(ctx, userID)
}

type engagementRepoStub struct {
	likeFn        func(context.Context, uint, uint) error
	unlikeFn      func(context.Context, uint, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	listLikesFn   func(context.Context, uint) ([]models.Like, error)
	rateFn        func(context.Context, uint, uint, int) (*models.Rating, error)
	unrateFn      func(context.Context, uint, uint) error
	getRatingFn   func(context.Context, uint, uint) (*models.Rating, error)
	listRatingsFn func(context.Context, uint) ([]models.Rating, error)
}

func (s *engagementRepoStub) Like(ctx context.Context, userID, movieID uint) error {
	return s.likeFn(ctx, userID, movieID)
}
func (s *engagementRepoStub) Unlike(ctx context.Context, userID, movieID uint) error {
	return s.unlikeFn(ctx, userID, movieID)
}
func (s *engagementRepoStub) IsLiked(ctx context.Context, userID, movieID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, movieID)
}
func (s *engagementRepoStub) ListLikes(ctx context.Context, userID uint) ([]models.Like, error) {
	return s.listLikesFn(ctx, userID)
}
func (s *engagementRepoStub) Rate(ctx context.Context, userID, movieID uint, score int) (*models.Rating, error) {
	return s.rateFn(ctx, userID, movieID, score)
}
func (s *engagementRepoStub) Unrate(ctx context.Context, userID, movieID uint) error {
	return s.unrateFn(ctx, userID, movieID)
}
func (s *engagementRepoStub) GetRating(ctx context.Context, userID, movieID uint) (*models.Rating, error) {
	return s.getRatingFn(ctx, userID, movieID)
}
func (s *engagementRepoStub) ListRatings(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.listRatingsFn(ctx, userID)
}

type reviewRepoStub struct {
	createFn      func(context.Context, *models.Review) error
	getByIDFn     func(context.Context, uint) (*models.Review, error)
	updateFn      func(context.Context, *models.Review) error
	deleteFn      func(context.Context, *models.Review) error
	markHelpfulFn func(context.Context, uint) (*models.Review, error)
	listByMovieFn func(context.Context, uint) ([]models.Review, error)
	listByUserFn  func(context.Context, uint) ([]models.Review, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, review *models.Review) error {
	return s.deleteFn(ctx, review)
}
func (s *reviewRepoStub) MarkHelpful(ctx context.Context, id uint) (*models.Review, error) {
	return s.markHelpfulFn(ctx, id)
}
func (s *reviewRepoStub) ListByMovie(ctx context.Context, movieID uint) ([]models.Review, error) {
	return s.listByMovieFn(ctx, movieID)
}
func (s *reviewRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	return s.listByUserFn(ctx, userID)
}
