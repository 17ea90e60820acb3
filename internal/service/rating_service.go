package service

import (
	"context"
	"errors"
	"time"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"gorm.io/gorm"
)

// RatingService maintains the one-rating-per-user-per-story rule and keeps
// story.rating/rating_count equal to the live mean/count of the rows
type RatingService interface {
	RateStory(ctx context.Context, userID string, storyID uint64, value int) (*domain.RatingResponse, error)
	GetUserRating(ctx context.Context, userID string, storyID uint64) (*domain.Rating, error)
	DeleteRating(ctx context.Context, userID string, storyID uint64) (*domain.RatingResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storyRepo  repository.StoryRepository
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo repository.RatingRepository, storyRepo repository.StoryRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, storyRepo: storyRepo}
}

// RateStory creates the user's rating or overwrites it in place, then
// returns the recomputed story aggregate
func (s *ratingService) RateStory(ctx context.Context, userID string, storyID uint64, value int) (*domain.RatingResponse, error) {
	if value < 1 || value > 5 {
		return nil, common.ErrInvalidRating
	}
	if _, err := s.findStory(ctx, storyID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		UserID:    userID,
		StoryID:   storyID,
		Value:     value,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, storyID, value)
}

func (s *ratingService) GetUserRating(ctx context.Context, userID string, storyID uint64) (*domain.Rating, error) {
	rating, err := s.ratingRepo.FindByUserAndStory(ctx, userID, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

// DeleteRating removes the user's rating; the aggregate falls back to 0/0
// when the last rating goes
func (s *ratingService) DeleteRating(ctx context.Context, userID string, storyID uint64) (*domain.RatingResponse, error) {
	if _, err := s.findStory(ctx, storyID); err != nil {
		return nil, err
	}

	if err := s.ratingRepo.Delete(ctx, userID, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRatingNotFound
		}
		return nil, err
	}

	return s.buildResponse(ctx, storyID, 0)
}

func (s *ratingService) findStory(ctx context.Context, storyID uint64) (*domain.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrStoryNotFound
		}
		return nil, err
	}
	return story, nil
}

func (s *ratingService) buildResponse(ctx context.Context, storyID uint64, userRating int) (*domain.RatingResponse, error) {
	story, err := s.findStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return &domain.RatingResponse{
		StoryID:     storyID,
		UserRating:  userRating,
		Rating:      story.Rating,
		RatingCount: story.RatingCount,
	}, nil
}
