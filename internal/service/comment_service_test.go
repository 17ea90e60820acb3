package service

import (
	"context"
	"strings"
	"testing"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListRoots(ctx context.Context, scope repository.CommentScope, page, limit int) ([]*domain.Comment, int64, error) {
	args := m.Called(ctx, scope, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, scope repository.CommentScope) ([]*domain.Comment, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id uint64, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockCommentRepository) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	args := m.Called(ctx, id, deleted)
	return args.Error(0)
}

func TestCreateComment_ScopeValidation(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)
	ctx := context.Background()
	storyID := uint64(1)
	chapterID := uint64(2)

	// Neither target set
	_, err := svc.CreateComment(ctx, &domain.CreateCommentRequest{Content: "hi"}, "user1")
	assert.ErrorIs(t, err, common.ErrInvalidCommentScope)

	// Both targets set
	_, err = svc.CreateComment(ctx, &domain.CreateCommentRequest{
		StoryID:   &storyID,
		ChapterID: &chapterID,
		Content:   "hi",
	}, "user1")
	assert.ErrorIs(t, err, common.ErrInvalidCommentScope)
}

func TestCreateComment_ContentValidation(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)
	ctx := context.Background()
	storyID := uint64(1)

	_, err := svc.CreateComment(ctx, &domain.CreateCommentRequest{StoryID: &storyID, Content: "   "}, "user1")
	assert.ErrorIs(t, err, common.ErrEmptyContent)

	_, err = svc.CreateComment(ctx, &domain.CreateCommentRequest{
		StoryID: &storyID,
		Content: strings.Repeat("a", 4001),
	}, "user1")
	assert.ErrorIs(t, err, common.ErrContentTooLong)
}

func TestCreateComment_MissingParent(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)
	storyID := uint64(1)
	parentID := uint64(42)

	repo.On("FindByID", mock.Anything, parentID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateComment(context.Background(), &domain.CreateCommentRequest{
		StoryID:  &storyID,
		ParentID: &parentID,
		Content:  "reply",
	}, "user1")
	assert.ErrorIs(t, err, common.ErrParentNotFound)
}

func TestCreateComment_Success(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)
	storyID := uint64(1)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.AuthorID == "user1" && c.Content == "hello"
	})).Return(nil)

	resp, err := svc.CreateComment(context.Background(), &domain.CreateCommentRequest{
		StoryID: &storyID,
		Content: "  hello  ",
	}, "user1")
	assert.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	repo.AssertExpectations(t)
}

func TestUpdateComment_Permissions(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)
	ctx := context.Background()

	repo.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Comment{ID: 1, AuthorID: "author", Content: "old"}, nil)

	// A different non-moderator user cannot edit
	err := svc.UpdateComment(ctx, 1, &domain.UpdateCommentRequest{Content: "new"}, "other", 1)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// The author can
	repo.On("UpdateContent", mock.Anything, uint64(1), "new").Return(nil)
	err = svc.UpdateComment(ctx, 1, &domain.UpdateCommentRequest{Content: "new"}, "author", 1)
	assert.NoError(t, err)

	// So can a moderator
	err = svc.UpdateComment(ctx, 1, &domain.UpdateCommentRequest{Content: "new"}, "other", ModeratorLevel)
	assert.NoError(t, err)
}

func TestModerateComment_Idempotent(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)
	ctx := context.Background()

	live := &domain.Comment{ID: 1, AuthorID: "author", Content: "hi"}
	deleted := &domain.Comment{ID: 2, AuthorID: "author", Content: "hi", IsDeleted: true}
	repo.On("FindByID", mock.Anything, uint64(1)).Return(live, nil)
	repo.On("FindByID", mock.Anything, uint64(2)).Return(deleted, nil)

	// approve on a live comment is a no-op
	assert.NoError(t, svc.ModerateComment(ctx, 1, domain.ModerationApprove))
	repo.AssertNotCalled(t, "SetDeleted", mock.Anything, uint64(1), mock.Anything)

	// delete marks it deleted
	repo.On("SetDeleted", mock.Anything, uint64(1), true).Return(nil).Once()
	assert.NoError(t, svc.ModerateComment(ctx, 1, domain.ModerationDelete))

	// delete on an already-deleted comment is a no-op
	assert.NoError(t, svc.ModerateComment(ctx, 2, domain.ModerationDelete))

	// restore and approve-when-deleted both clear the mark
	repo.On("SetDeleted", mock.Anything, uint64(2), false).Return(nil).Twice()
	assert.NoError(t, svc.ModerateComment(ctx, 2, domain.ModerationRestore))
	assert.NoError(t, svc.ModerateComment(ctx, 2, domain.ModerationApprove))
	repo.AssertExpectations(t)
}

func TestListComments_RequiresScope(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, 3)

	_, _, err := svc.ListComments(context.Background(), repository.CommentScope{}, 1, 20)
	assert.ErrorIs(t, err, common.ErrInvalidCommentScope)
}
