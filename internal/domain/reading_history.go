package domain

import "time"

// ReadingHistory is a bookmark, not a log: one row per (user, story) holding
// the chapter currently open and its 0-100 progress. Switching chapters
// overwrites the row.
type ReadingHistory struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;size:64;not null;uniqueIndex:uq_reading_history_user_story" json:"user_id"`
	StoryID    uint64    `gorm:"column:story_id;not null;uniqueIndex:uq_reading_history_user_story" json:"story_id"`
	ChapterID  uint64    `gorm:"column:chapter_id;not null" json:"chapter_id"`
	Progress   float64   `gorm:"not null;default:0" json:"progress"`
	LastReadAt time.Time `gorm:"column:last_read_at;index" json:"last_read_at"`
}

func (ReadingHistory) TableName() string {
	return "reading_history"
}

// ContinueReadingEntry is one row of the "continue reading" shelf with the
// story-level progress computed from the bookmark
type ContinueReadingEntry struct {
	StoryID       uint64    `json:"story_id"`
	StoryTitle    string    `json:"story_title"`
	ChapterID     uint64    `json:"chapter_id"`
	ChapterTitle  string    `json:"chapter_title"`
	Progress      float64   `json:"progress"`
	StoryProgress float64   `json:"story_progress"`
	LastReadAt    time.Time `json:"last_read_at"`
}
