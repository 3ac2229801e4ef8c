package seed

import (
	"fmt"
	"log"

	"telanix/internal/models"

	"gorm.io/gorm"
)

// movieCatalogSize is the range of movie IDs the seeder engages with.
// Movie metadata lives in the upstream catalog service; the ledger only
// stores the IDs.
const movieCatalogSize = 500

// Seeder populates the database with a realistic engagement mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll truncates every ledger table.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE reviews, ratings, likes, user_stats, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed creates users and spreads likes, ratings and reviews across the
// movie catalog, then recomputes the per-user counters so they match the
// seeded rows exactly.
func (s *Seeder) Seed() ([]models.User, error) {
	numUsers := s.opts.NumUsers
	if numUsers <= 0 {
		numUsers = 50
	}
	log.Printf("🌱 Starting database seeding with %d users...", numUsers)

	users, err := s.createUsers(numUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	likes, ratings, reviews := 0, 0, 0
	for i := range users {
		user := &users[i]
		r := s.factory.r

		// Each user engages with a personal slice of the catalog so
		// (user, movie) pairs stay unique without retry loops.
		movies := r.Perm(movieCatalogSize)

		numLikes := r.Intn(20)
		for _, m := range movies[:numLikes] {
			if err := s.factory.CreateLike(user, uint(m+1)); err != nil {
				return nil, fmt.Errorf("failed to create like: %w", err)
			}
			likes++
		}

		numRatings := r.Intn(15)
		for _, m := range movies[numLikes : numLikes+numRatings] {
			score := r.Intn(models.MaxScore-models.MinScore+1) + models.MinScore
			if err := s.factory.CreateRating(user, uint(m+1), score); err != nil {
				return nil, fmt.Errorf("failed to create rating: %w", err)
			}
			ratings++
		}

		numReviews := r.Intn(4)
		base := numLikes + numRatings
		for _, m := range movies[base : base+numReviews] {
			if _, err := s.factory.CreateReview(user, uint(m+1)); err != nil {
				return nil, fmt.Errorf("failed to create review: %w", err)
			}
			reviews++
		}

		logProgress(i, 100, "users' engagement sets")
	}
	log.Printf("✓ %d likes, %d ratings, %d reviews created", likes, ratings, reviews)

	if err := s.RefreshStats(); err != nil {
		return nil, fmt.Errorf("failed to refresh stats: %w", err)
	}
	log.Println("✓ Per-user counters recomputed")

	log.Println("🎉 Database seeding completed successfully!")
	return users, nil
}

// RefreshStats recomputes every user's counter row from the actual likes,
// ratings and reviews tables.
func (s *Seeder) RefreshStats() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for column, table := range map[string]string{
			models.StatTotalLikes:   "likes",
			models.StatTotalRatings: "ratings",
			models.StatTotalReviews: "reviews",
		} {
			sql := fmt.Sprintf(
				`UPDATE user_stats SET %s = (SELECT COUNT(*) FROM %s WHERE %s.user_id = user_stats.user_id)`,
				column, table, table,
			)
			if err := tx.Exec(sql).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	// Always include a known login for manual testing.
	if count >= 1 {
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Email = "test@example.com"
			u.Name = "Test User"
		})
		if err == nil {
			users = append(users, *user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)
		logProgress(i, 100, "users")
	}
	return users, nil
}
