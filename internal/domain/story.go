package domain

import "time"

// Story holds the derived engagement aggregates (rating, rating_count,
// follow_count). They always equal the live mean/count of the Rating and
// Follow rows and are only mutated together with those rows.
type Story struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	AuthorID    string    `gorm:"column:author_id;size:64;index" json:"author_id"`
	Summary     string    `gorm:"type:text" json:"summary,omitempty"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	RatingCount int64     `gorm:"column:rating_count;default:0" json:"rating_count"`
	FollowCount int64     `gorm:"column:follow_count;default:0" json:"follow_count"`
	ViewCount   int64     `gorm:"column:view_count;default:0" json:"view_count"`
	IsPublished bool      `gorm:"column:is_published;default:false" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Story) TableName() string {
	return "stories"
}

// Chapter belongs to a story; Order drives reading progress calculation
type Chapter struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	StoryID     uint64    `gorm:"column:story_id;not null;index" json:"story_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Order       int       `gorm:"column:sort_order;not null" json:"order"`
	IsPublished bool      `gorm:"column:is_published;default:false" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Chapter) TableName() string {
	return "chapters"
}
