package repository

import (
	"context"
	"math"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository maintains Rating rows and the derived story aggregate.
// Every mutation recomputes story.rating/rating_count inside the same
// transaction, so the aggregate never drifts from the live rows.
type RatingRepository interface {
	FindByUserAndStory(ctx context.Context, userID string, storyID uint64) (*domain.Rating, error)
	// Upsert creates or overwrites the (user, story) rating and recomputes
	// the story aggregate atomically
	Upsert(ctx context.Context, rating *domain.Rating) error
	// Delete removes the (user, story) rating and recomputes the aggregate;
	// returns gorm.ErrRecordNotFound when no row existed
	Delete(ctx context.Context, userID string, storyID uint64) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) FindByUserAndStory(ctx context.Context, userID string, storyID uint64) (*domain.Rating, error) {
	var rating domain.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "story_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(rating).Error
		if err != nil {
			return err
		}
		return recomputeStoryRating(tx, rating.StoryID)
	})
}

func (r *ratingRepository) Delete(ctx context.Context, userID string, storyID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND story_id = ?", userID, storyID).
			Delete(&domain.Rating{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeStoryRating(tx, storyID)
	})
}

// recomputeStoryRating sets story.rating to the live mean rounded to one
// decimal and story.rating_count to the live count. Zero ratings mean 0/0.
func recomputeStoryRating(tx *gorm.DB, storyID uint64) error {
	var agg struct {
		Mean  float64 `gorm:"column:mean"`
		Count int64   `gorm:"column:count"`
	}
	err := tx.Model(&domain.Rating{}).
		Select("COALESCE(AVG(value), 0) AS mean, COUNT(*) AS count").
		Where("story_id = ?", storyID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	rounded := math.Round(agg.Mean*10) / 10
	return tx.Model(&domain.Story{}).
		Where("id = ?", storyID).
		UpdateColumns(map[string]interface{}{
			"rating":       rounded,
			"rating_count": agg.Count,
		}).Error
}
