package models

import "time"

// UserStats is the per-user engagement counter row. It is created together
// with the User row and only ever written through the engagement
// repositories' transactional counter adjustments.
//
// Invariant: each counter equals the cardinality of the corresponding
// relation (likes, ratings, reviews) for that user.
type UserStats struct {
	UserID       uint       `gorm:"primaryKey" json:"user_id"`
	TotalRatings int        `gorm:"not null;default:0" json:"total_ratings"`
	TotalReviews int        `gorm:"not null;default:0" json:"total_reviews"`
	TotalLikes   int        `gorm:"not null;default:0" json:"total_likes"`
	JoinDate     time.Time  `gorm:"not null" json:"join_date"`
	LastLogin    *time.Time `json:"last_login"`
}

// Counter column names accepted by the stats adjustment API. Keeping them
// as constants means the column interpolated into the UPDATE statement can
// never come from user input.
const (
	StatTotalRatings = "total_ratings"
	StatTotalReviews = "total_reviews"
	StatTotalLikes   = "total_likes"
)
