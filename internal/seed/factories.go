// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"telanix/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	ShouldClean bool
	// SkipBcrypt stores a plaintext placeholder password instead of a
	// bcrypt hash. Much faster for large seeds; dev only.
	SkipBcrypt bool
	// MaxDays bounds the backdated created_at spread. Defaults to 90.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	r    *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *Factory) backdated() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User` together with
// its zeroed `models.UserStats` row. Optional override functions may
// modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		Email:     gofakeit.Email(),
		Name:      name,
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsActive:  true,
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		stats := &models.UserStats{UserID: user.ID, JoinDate: user.CreatedAt}
		return tx.Create(stats).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateLike persists a like from `user` on the given movie.
func (f *Factory) CreateLike(user *models.User, movieID uint) error {
	like := &models.Like{
		UserID:    user.ID,
		MovieID:   movieID,
		CreatedAt: f.backdated(),
	}
	return f.db.Create(like).Error
}

// CreateRating persists a rating from `user` on the given movie.
func (f *Factory) CreateRating(user *models.User, movieID uint, score int) error {
	when := f.backdated()
	rating := &models.Rating{
		UserID:    user.ID,
		MovieID:   movieID,
		Score:     score,
		CreatedAt: when,
		UpdatedAt: when,
	}
	return f.db.Create(rating).Error
}

// CreateReview constructs and persists a sample `models.Review` by the
// given user, with author name and avatar denormalized the way the API
// does it at publish time.
func (f *Factory) CreateReview(user *models.User, movieID uint, overrides ...func(*models.Review)) (*models.Review, error) {
	when := f.backdated()
	review := &models.Review{
		MovieID:    movieID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.AvatarURL,
		Score:      f.r.Intn(models.MaxScore-models.MinScore+1) + models.MinScore,
		Title:      gofakeit.Sentence(5),
		Content:    gofakeit.Paragraph(1, 3, 5, "\n"),
		Helpful:    f.r.Intn(50),
		Spoiler:    f.r.Float32() < 0.15,
		CreatedAt:  when,
		UpdatedAt:  when,
	}

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// logProgress prints a progress line every `every` items.
func logProgress(i, every int, what string) {
	if i > 0 && i%every == 0 {
		log.Printf("Created %d %s...", i, what)
	}
}
