package domain

import "time"

// DeletedContentPlaceholder masks the content of soft-deleted comments at
// read time. The row itself is retained so replies keep their parent.
const DeletedContentPlaceholder = "[deleted]"

// Comment targets exactly one of StoryID/ChapterID (never both, never
// neither). Deletion is soft: the row stays, content is masked on read.
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	StoryID   *uint64   `gorm:"column:story_id;index" json:"story_id,omitempty"`
	ChapterID *uint64   `gorm:"column:chapter_id;index" json:"chapter_id,omitempty"`
	ParentID  *uint64   `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	AuthorID  string    `gorm:"column:author_id;size:64;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentResponse is a comment node in the materialized thread
type CommentResponse struct {
	ID         uint64             `json:"id"`
	StoryID    *uint64            `json:"story_id,omitempty"`
	ChapterID  *uint64            `json:"chapter_id,omitempty"`
	ParentID   *uint64            `json:"parent_id,omitempty"`
	AuthorID   string             `json:"author_id"`
	Content    string             `json:"content"`
	IsDeleted  bool               `json:"is_deleted"`
	ReplyCount int                `json:"reply_count"`
	CreatedAt  time.Time          `json:"created_at"`
	Replies    []*CommentResponse `json:"replies"`
}

// ToResponse converts a comment row to a response node, masking deleted
// content
func (c *Comment) ToResponse() *CommentResponse {
	content := c.Content
	if c.IsDeleted {
		content = DeletedContentPlaceholder
	}
	return &CommentResponse{
		ID:        c.ID,
		StoryID:   c.StoryID,
		ChapterID: c.ChapterID,
		ParentID:  c.ParentID,
		AuthorID:  c.AuthorID,
		Content:   content,
		IsDeleted: c.IsDeleted,
		CreatedAt: c.CreatedAt,
		Replies:   []*CommentResponse{},
	}
}

// CreateCommentRequest is the payload for creating a comment
type CreateCommentRequest struct {
	StoryID   *uint64 `json:"story_id,omitempty"`
	ChapterID *uint64 `json:"chapter_id,omitempty"`
	ParentID  *uint64 `json:"parent_id,omitempty"`
	Content   string  `json:"content"`
}

// UpdateCommentRequest is the payload for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// ModerationAction is an idempotent moderation verb
type ModerationAction string

const (
	ModerationApprove ModerationAction = "approve"
	ModerationDelete  ModerationAction = "delete"
	ModerationRestore ModerationAction = "restore"
)
