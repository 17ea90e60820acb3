package service

import (
	"context"
	"errors"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"gorm.io/gorm"
)

// FollowService keeps the Follow rows and story.follow_count moving as one.
// The unique (user, story) constraint turns a concurrent double-follow into
// a conflict instead of a double count.
type FollowService interface {
	FollowStory(ctx context.Context, userID string, storyID uint64) (*domain.FollowResponse, error)
	UnfollowStory(ctx context.Context, userID string, storyID uint64) (*domain.FollowResponse, error)
	IsFollowing(ctx context.Context, userID string, storyID uint64) (*domain.FollowResponse, error)
}

type followService struct {
	followRepo repository.FollowRepository
	storyRepo  repository.StoryRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo repository.FollowRepository, storyRepo repository.StoryRepository) FollowService {
	return &followService{followRepo: followRepo, storyRepo: storyRepo}
}

func (s *followService) FollowStory(ctx context.Context, userID string, storyID uint64) (*domain.FollowResponse, error) {
	if err := s.requireStory(ctx, storyID); err != nil {
		return nil, err
	}

	if err := s.followRepo.Create(ctx, userID, storyID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrAlreadyFollowing
		}
		return nil, err
	}

	return s.buildResponse(ctx, storyID, true)
}

func (s *followService) UnfollowStory(ctx context.Context, userID string, storyID uint64) (*domain.FollowResponse, error) {
	if err := s.requireStory(ctx, storyID); err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, userID, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFollowing
		}
		return nil, err
	}

	return s.buildResponse(ctx, storyID, false)
}

func (s *followService) IsFollowing(ctx context.Context, userID string, storyID uint64) (*domain.FollowResponse, error) {
	if err := s.requireStory(ctx, storyID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.Exists(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, storyID, following)
}

func (s *followService) requireStory(ctx context.Context, storyID uint64) error {
	if _, err := s.storyRepo.FindByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrStoryNotFound
		}
		return err
	}
	return nil
}

func (s *followService) buildResponse(ctx context.Context, storyID uint64, following bool) (*domain.FollowResponse, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return &domain.FollowResponse{
		StoryID:     storyID,
		Following:   following,
		FollowCount: story.FollowCount,
	}, nil
}
