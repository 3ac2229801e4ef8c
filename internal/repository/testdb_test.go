package repository

import (
	"testing"
	"time"

	"telanix/internal/database"
	"telanix/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Password: "hashed",
		Name:     "Test User",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	stats := &models.UserStats{UserID: user.ID, JoinDate: time.Now().UTC()}
	require.NoError(t, db.Create(stats).Error)
	return user
}

func statsFor(t *testing.T, db *gorm.DB, userID uint) models.UserStats {
	t.Helper()
	var stats models.UserStats
	require.NoError(t, db.First(&stats, "user_id = ?", userID).Error)
	return stats
}
