// Package service contains the application's business logic.
package service

import (
	"context"
	"fmt"
	"net/url"

	"telanix/internal/models"
	"telanix/internal/repository"
	"telanix/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration, login and profile management.
type AccountService struct {
	userRepo  repository.UserRepository
	statsRepo repository.StatsRepository
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries a partial profile edit. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	UserID    uint
	Name      *string
	AvatarURL *string
	Bio       *string
}

func NewAccountService(userRepo repository.UserRepository, statsRepo repository.StatsRepository) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		statsRepo: statsRepo,
	}
}

// defaultAvatarURL builds the generated avatar for accounts that did not
// upload one.
func defaultAvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=f5b50a&color=18181b", url.QueryEscape(name))
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("An account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     in.Email,
		Password:  string(hashed),
		Name:      in.Name,
		AvatarURL: defaultAvatarURL(in.Name),
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown email, wrong password and a
// deactivated account all return the same InvalidCredentials error so the
// response never reveals which accounts exist.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if !user.IsActive {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := s.statsRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AccountService) GetStats(ctx context.Context, userID uint) (*models.UserStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.statsRepo.GetByUser(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = *in.Name
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
