package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"gorm.io/gorm"
)

// ProgressService maintains the per-(user, story) reading bookmark and
// derives story-level completion from it
type ProgressService interface {
	SaveProgress(ctx context.Context, userID string, chapterID uint64, progress float64) (*domain.ReadingHistory, error)
	// GetChapterProgress returns the stored chapter progress when the user's
	// bookmark points at this chapter, otherwise 0
	GetChapterProgress(ctx context.Context, userID string, chapterID uint64) (float64, error)
	GetStoryProgress(ctx context.Context, userID string, storyID uint64) (float64, error)
	GetContinueReading(ctx context.Context, userID string, limit int) ([]*domain.ContinueReadingEntry, error)
}

type progressService struct {
	historyRepo repository.HistoryRepository
	storyRepo   repository.StoryRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(historyRepo repository.HistoryRepository, storyRepo repository.StoryRepository) ProgressService {
	return &progressService{historyRepo: historyRepo, storyRepo: storyRepo}
}

// SaveProgress upserts the single bookmark row for the chapter's story.
// Reading a different chapter of the same story overwrites the row.
func (s *progressService) SaveProgress(ctx context.Context, userID string, chapterID uint64, progress float64) (*domain.ReadingHistory, error) {
	if progress < 0 || progress > 100 {
		return nil, common.ErrInvalidProgress
	}

	chapter, err := s.findChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	history := &domain.ReadingHistory{
		UserID:     userID,
		StoryID:    chapter.StoryID,
		ChapterID:  chapterID,
		Progress:   progress,
		LastReadAt: time.Now(),
	}
	if err := s.historyRepo.Upsert(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *progressService) GetChapterProgress(ctx context.Context, userID string, chapterID uint64) (float64, error) {
	chapter, err := s.findChapter(ctx, chapterID)
	if err != nil {
		return 0, err
	}

	history, err := s.historyRepo.FindByUserAndStory(ctx, userID, chapter.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if history.ChapterID != chapterID {
		return 0, nil
	}
	return history.Progress, nil
}

// GetStoryProgress computes the story-level percentage from the user's
// bookmark; no bookmark means no progress
func (s *progressService) GetStoryProgress(ctx context.Context, userID string, storyID uint64) (float64, error) {
	if _, err := s.storyRepo.FindByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, common.ErrStoryNotFound
		}
		return 0, err
	}

	history, err := s.historyRepo.FindByUserAndStory(ctx, userID, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	chapters, err := s.storyRepo.ListPublishedChapters(ctx, storyID)
	if err != nil {
		return 0, err
	}
	return ComputeStoryProgress(chapters, history.ChapterID, history.Progress), nil
}

// GetContinueReading builds the user's recent-reads shelf with story-level
// completion attached to each bookmark
func (s *progressService) GetContinueReading(ctx context.Context, userID string, limit int) ([]*domain.ContinueReadingEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	histories, err := s.historyRepo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.ContinueReadingEntry, 0, len(histories))
	for _, h := range histories {
		story, err := s.storyRepo.FindByID(ctx, h.StoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		chapters, err := s.storyRepo.ListPublishedChapters(ctx, h.StoryID)
		if err != nil {
			return nil, err
		}

		entry := &domain.ContinueReadingEntry{
			StoryID:       h.StoryID,
			StoryTitle:    story.Title,
			ChapterID:     h.ChapterID,
			Progress:      h.Progress,
			StoryProgress: ComputeStoryProgress(chapters, h.ChapterID, h.Progress),
			LastReadAt:    h.LastReadAt,
		}
		for _, c := range chapters {
			if c.ID == h.ChapterID {
				entry.ChapterTitle = c.Title
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ComputeStoryProgress converts a chapter position plus intra-chapter
// progress into a 0-100 story percentage, rounded to 2 decimals.
//
// chaptersRead counts chapters strictly before the current one in sort
// order. A chapter missing from the published list yields 0, as does an
// empty list. Finishing the last chapter is forced to exactly 100 so the
// division never leaves a 99.99 at the true end of the story.
func ComputeStoryProgress(chapters []*domain.Chapter, currentChapterID uint64, chapterProgress float64) float64 {
	if len(chapters) == 0 {
		return 0
	}

	var current *domain.Chapter
	maxOrder := chapters[0].Order
	for _, c := range chapters {
		if c.ID == currentChapterID {
			current = c
		}
		if c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	if current == nil {
		return 0
	}
	if current.Order == maxOrder && chapterProgress >= 100 {
		return 100
	}

	chaptersRead := 0
	for _, c := range chapters {
		if c.Order < current.Order {
			chaptersRead++
		}
	}

	progress := (float64(chaptersRead) + chapterProgress/100) / float64(len(chapters)) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return math.Round(progress*100) / 100
}

func (s *progressService) findChapter(ctx context.Context, chapterID uint64) (*domain.Chapter, error) {
	chapter, err := s.storyRepo.FindChapter(ctx, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}
