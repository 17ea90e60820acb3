package repository

import (
	"context"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentScope targets exactly one of story or chapter
type CommentScope struct {
	StoryID   *uint64
	ChapterID *uint64
}

// CommentRepository defines persistence for comment rows. Deletion is soft;
// rows are never removed.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uint64) (*domain.Comment, error)
	// ListRoots returns non-deleted root comments for a page, newest first
	ListRoots(ctx context.Context, scope CommentScope, page, limit int) ([]*domain.Comment, int64, error)
	// ListReplies returns all non-root comments of the scope, deleted rows
	// included (they stay valid parents and count toward reply totals)
	ListReplies(ctx context.Context, scope CommentScope) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id uint64, content string) error
	SetDeleted(ctx context.Context, id uint64, deleted bool) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func applyScope(q *gorm.DB, scope CommentScope) *gorm.DB {
	if scope.StoryID != nil {
		return q.Where("story_id = ?", *scope.StoryID)
	}
	return q.Where("chapter_id = ?", *scope.ChapterID)
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListRoots(ctx context.Context, scope CommentScope, page, limit int) ([]*domain.Comment, int64, error) {
	base := applyScope(r.db.WithContext(ctx).Model(&domain.Comment{}), scope).
		Where("parent_id IS NULL AND is_deleted = ?", false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*domain.Comment
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) ListReplies(ctx context.Context, scope CommentScope) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := applyScope(r.db.WithContext(ctx).Model(&domain.Comment{}), scope).
		Where("parent_id IS NOT NULL").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uint64, content string) error {
	return r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

func (r *commentRepository) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	return r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}
