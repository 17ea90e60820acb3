package repository

import (
	"context"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
)

// StoryRepository defines read operations for stories and chapters used by
// the engagement engine
type StoryRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Story, error)
	FindChapter(ctx context.Context, id uint64) (*domain.Chapter, error)
	// ListPublishedChapters returns the story's published chapters ordered
	// ascending by sort order
	ListPublishedChapters(ctx context.Context, storyID uint64) ([]*domain.Chapter, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]*domain.Story, error)
	// SearchByTitle is the LIKE-based fallback search backend
	SearchByTitle(ctx context.Context, query string, page, limit int) ([]*domain.Story, int64, error)
	// SuggestTitles returns published story titles matching a prefix
	SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) FindByID(ctx context.Context, id uint64) (*domain.Story, error) {
	var story domain.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) FindChapter(ctx context.Context, id uint64) (*domain.Chapter, error) {
	var chapter domain.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *storyRepository) ListPublishedChapters(ctx context.Context, storyID uint64) ([]*domain.Chapter, error) {
	var chapters []*domain.Chapter
	err := r.db.WithContext(ctx).
		Where("story_id = ? AND is_published = ?", storyID, true).
		Order("sort_order ASC").
		Find(&chapters).Error
	return chapters, err
}

func (r *storyRepository) FindByIDs(ctx context.Context, ids []uint64) ([]*domain.Story, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var stories []*domain.Story
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&stories).Error
	return stories, err
}

func (r *storyRepository) SearchByTitle(ctx context.Context, query string, page, limit int) ([]*domain.Story, int64, error) {
	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&domain.Story{}).
		Where("is_published = ?", true).
		Where("title LIKE ? OR summary LIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stories []*domain.Story
	err := base.
		Order("view_count DESC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&stories).Error
	return stories, total, err
}

func (r *storyRepository) SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&domain.Story{}).
		Where("is_published = ? AND title LIKE ?", true, prefix+"%").
		Order("view_count DESC").
		Limit(limit).
		Pluck("title", &titles).Error
	return titles, err
}
