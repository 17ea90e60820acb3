package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	maxCommentLength = 4000
	// ModeratorLevel is the minimum actor level allowed to moderate or
	// mutate other users' comments
	ModeratorLevel = 10
)

// CommentService provides comment CRUD, moderation and depth-bounded
// thread assembly
type CommentService interface {
	CreateComment(ctx context.Context, req *domain.CreateCommentRequest, authorID string) (*domain.CommentResponse, error)
	GetComment(ctx context.Context, id uint64) (*domain.CommentResponse, error)
	ListComments(ctx context.Context, scope repository.CommentScope, page, limit int) ([]*domain.CommentResponse, int64, error)
	UpdateComment(ctx context.Context, id uint64, req *domain.UpdateCommentRequest, actorID string, actorLevel int) error
	DeleteComment(ctx context.Context, id uint64, actorID string, actorLevel int) error
	ModerateComment(ctx context.Context, id uint64, action domain.ModerationAction) error
}

type commentService struct {
	repo     repository.CommentRepository
	maxDepth int
}

// NewCommentService creates a new CommentService
func NewCommentService(repo repository.CommentRepository, maxDepth int) CommentService {
	return &commentService{repo: repo, maxDepth: maxDepth}
}

// CreateComment validates the story/chapter target rule and parent
// existence, then inserts the row
func (s *commentService) CreateComment(ctx context.Context, req *domain.CreateCommentRequest, authorID string) (*domain.CommentResponse, error) {
	if err := validateCommentTarget(req.StoryID, req.ChapterID); err != nil {
		return nil, err
	}
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.ErrParentNotFound
			}
			return nil, err
		}
	}

	comment := &domain.Comment{
		StoryID:   req.StoryID,
		ChapterID: req.ChapterID,
		ParentID:  req.ParentID,
		AuthorID:  authorID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment.ToResponse(), nil
}

// GetComment returns a single comment by id; depth-excluded comments stay
// reachable through this path
func (s *commentService) GetComment(ctx context.Context, id uint64) (*domain.CommentResponse, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCommentNotFound
		}
		return nil, err
	}
	return comment.ToResponse(), nil
}

// ListComments returns the paginated root forest with replies nested up to
// the depth bound
func (s *commentService) ListComments(ctx context.Context, scope repository.CommentScope, page, limit int) ([]*domain.CommentResponse, int64, error) {
	if err := validateScope(scope); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	roots, total, err := s.repo.ListRoots(ctx, scope, page, limit)
	if err != nil {
		return nil, 0, err
	}
	replies, err := s.repo.ListReplies(ctx, scope)
	if err != nil {
		return nil, 0, err
	}

	return BuildCommentTree(roots, replies, s.maxDepth), total, nil
}

// UpdateComment edits content; only the author or a moderator may edit
func (s *commentService) UpdateComment(ctx context.Context, id uint64, req *domain.UpdateCommentRequest, actorID string, actorLevel int) error {
	if err := validateCommentContent(req.Content); err != nil {
		return err
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != actorID && actorLevel < ModeratorLevel {
		return common.ErrForbidden
	}

	return s.repo.UpdateContent(ctx, id, strings.TrimSpace(req.Content))
}

// DeleteComment soft-deletes; the row stays so replies keep their parent
func (s *commentService) DeleteComment(ctx context.Context, id uint64, actorID string, actorLevel int) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != actorID && actorLevel < ModeratorLevel {
		return common.ErrForbidden
	}

	return s.repo.SetDeleted(ctx, id, true)
}

// ModerateComment applies an idempotent moderation action:
// delete marks deleted, restore clears the mark, approve clears it when
// set and is otherwise a no-op
func (s *commentService) ModerateComment(ctx context.Context, id uint64, action domain.ModerationAction) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}

	switch action {
	case domain.ModerationDelete:
		if comment.IsDeleted {
			return nil
		}
		return s.repo.SetDeleted(ctx, id, true)
	case domain.ModerationRestore, domain.ModerationApprove:
		if !comment.IsDeleted {
			return nil
		}
		return s.repo.SetDeleted(ctx, id, false)
	default:
		return common.ErrInvalidInput
	}
}

func validateCommentTarget(storyID, chapterID *uint64) error {
	if (storyID == nil) == (chapterID == nil) {
		return common.ErrInvalidCommentScope
	}
	return nil
}

func validateScope(scope repository.CommentScope) error {
	return validateCommentTarget(scope.StoryID, scope.ChapterID)
}

func validateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return common.ErrEmptyContent
	}
	if len(trimmed) > maxCommentLength {
		return common.ErrContentTooLong
	}
	return nil
}
