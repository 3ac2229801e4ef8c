package models

import "time"

// Score bounds for ratings and reviews.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating represents a user's 1-5 star rating of a movie. At most one row
// exists per (user, movie) pair; re-rating overwrites the score in place.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_movie" json:"user_id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_rating_user_movie" json:"movie_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
