package repository

import (
	"context"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository maintains the single reading bookmark per (user, story)
type HistoryRepository interface {
	// Upsert overwrites the (user, story) bookmark; reading a different
	// chapter of the same story updates the row instead of adding one
	Upsert(ctx context.Context, history *domain.ReadingHistory) error
	FindByUserAndStory(ctx context.Context, userID string, storyID uint64) (*domain.ReadingHistory, error)
	// ListRecent returns the user's bookmarks ordered by last read, newest
	// first
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ReadingHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Upsert(ctx context.Context, history *domain.ReadingHistory) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "story_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"chapter_id", "progress", "last_read_at"}),
	}).Create(history).Error
}

func (r *historyRepository) FindByUserAndStory(ctx context.Context, userID string, storyID uint64) (*domain.ReadingHistory, error) {
	var history domain.ReadingHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ReadingHistory, error) {
	var histories []*domain.ReadingHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_read_at DESC").
		Limit(limit).
		Find(&histories).Error
	return histories, err
}
