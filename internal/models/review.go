package models

import "time"

// Review is a user-authored review of a movie. Author name and avatar are
// denormalized at write time so review display does not depend on later
// profile edits. Uniqueness per (user, movie) is NOT enforced at the
// storage layer; the client decides between create and update by querying
// the author's reviews first.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MovieID    uint      `gorm:"not null;index" json:"movie_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	UserName   string    `gorm:"not null" json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Score      int       `gorm:"not null" json:"score"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"not null" json:"content"`
	Helpful    int       `gorm:"not null;default:0" json:"helpful"`
	Spoiler    bool      `gorm:"not null;default:false" json:"spoiler"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
