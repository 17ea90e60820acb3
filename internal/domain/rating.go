package domain

import "time"

// Rating is at most one row per (user, story). Created on first rate,
// overwritten in place on re-rate, deleted on explicit removal.
type Rating struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;size:64;not null;uniqueIndex:uq_ratings_user_story" json:"user_id"`
	StoryID   uint64    `gorm:"column:story_id;not null;uniqueIndex:uq_ratings_user_story" json:"story_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// RatingResponse is returned after a rate/unrate operation with the
// recomputed story aggregate
type RatingResponse struct {
	StoryID     uint64  `json:"story_id"`
	UserRating  int     `json:"user_rating,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int64   `json:"rating_count"`
}
