package repository

import (
	"context"
	"time"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
)

// FollowRepository maintains Follow rows and story.follow_count together.
// Both halves of every mutation commit or roll back as one.
type FollowRepository interface {
	// Create inserts the follow row and increments follow_count atomically;
	// a duplicate (user, story) surfaces as gorm.ErrDuplicatedKey
	Create(ctx context.Context, userID string, storyID uint64) error
	// Delete removes the follow row and decrements follow_count atomically;
	// returns gorm.ErrRecordNotFound when the user was not following
	Delete(ctx context.Context, userID string, storyID uint64) error
	Exists(ctx context.Context, userID string, storyID uint64) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, userID string, storyID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := &domain.Follow{
			UserID:    userID,
			StoryID:   storyID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Story{}).
			Where("id = ?", storyID).
			UpdateColumn("follow_count", gorm.Expr("follow_count + 1")).Error
	})
}

func (r *followRepository) Delete(ctx context.Context, userID string, storyID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND story_id = ?", userID, storyID).
			Delete(&domain.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// The follow_count > 0 guard keeps the counter from going negative
		// if it ever drifted
		return tx.Model(&domain.Story{}).
			Where("id = ? AND follow_count > 0", storyID).
			UpdateColumn("follow_count", gorm.Expr("follow_count - 1")).Error
	})
}

func (r *followRepository) Exists(ctx context.Context, userID string, storyID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
