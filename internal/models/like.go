package models

import "time"

// Like represents a user's like on a movie.
// The combination of UserID and MovieID must be unique; a like either
// exists or it does not, so rows are hard-deleted and never updated.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_movie" json:"user_id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_like_user_movie" json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}
