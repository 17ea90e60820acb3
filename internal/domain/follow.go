package domain

import "time"

// Follow existence implies story.follow_count was incremented exactly once
// for it. The unique index is what turns a duplicate-follow race into a
// constraint violation instead of a double count.
type Follow struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;size:64;not null;uniqueIndex:uq_follows_user_story" json:"user_id"`
	StoryID   uint64    `gorm:"column:story_id;not null;uniqueIndex:uq_follows_user_story" json:"story_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

// FollowResponse reports follow state plus the current counter
type FollowResponse struct {
	StoryID     uint64 `json:"story_id"`
	Following   bool   `json:"following"`
	FollowCount int64  `json:"follow_count"`
}
