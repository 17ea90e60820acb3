package service

import (
	"context"
	"testing"
	"time"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockAdRepository is a mock implementation of AdRepository
type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) FindByID(ctx context.Context, id uint64) (*domain.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}

func (m *MockAdRepository) FindByIDs(ctx context.Context, ids []uint64) ([]*domain.Ad, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}

func (m *MockAdRepository) FindCampaign(ctx context.Context, id uint64) (*domain.AdCampaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdCampaign), args.Error(1)
}

func (m *MockAdRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]*domain.Ad, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}

func (m *MockAdRepository) HasImpressionSince(ctx context.Context, adID uint64, filter domain.IdentityFilter, since time.Time) (bool, error) {
	args := m.Called(ctx, adID, filter, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdRepository) CountClicksSince(ctx context.Context, adID uint64, filter domain.IdentityFilter, since time.Time) (int64, error) {
	args := m.Called(ctx, adID, filter, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdRepository) CreateImpression(ctx context.Context, imp *domain.AdImpression) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}

func (m *MockAdRepository) CreateClick(ctx context.Context, click *domain.AdClick) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func trackingTestConfig() TrackingConfig {
	return TrackingConfig{
		ImpressionWindow: time.Minute,
		ClickWindow:      5 * time.Minute,
		ClickLimit:       3,
	}
}

func activeAd() *domain.Ad {
	return &domain.Ad{ID: 1, Title: "banner", IsActive: true}
}

func TestTrackImpression_New(t *testing.T) {
	repo := new(MockAdRepository)
	svc := NewTrackingService(repo, trackingTestConfig())
	meta := domain.TrackMeta{ActorID: "user1", IPAddress: "10.0.0.1", UserAgent: "Mozilla/5.0 (iPhone)"}

	repo.On("FindByID", mock.Anything, uint64(1)).Return(activeAd(), nil)
	repo.On("HasImpressionSince", mock.Anything, uint64(1), meta.Identity(), mock.Anything).Return(false, nil)
	repo.On("CreateImpression", mock.Anything, mock.MatchedBy(func(imp *domain.AdImpression) bool {
		return imp.AdID == 1 && imp.Device == domain.DeviceMobile
	})).Return(nil)

	result, err := svc.TrackImpression(context.Background(), 1, meta)
	assert.NoError(t, err)
	assert.True(t, result.Tracked)
	repo.AssertExpectations(t)
}

func TestTrackImpression_DuplicateInWindow(t *testing.T) {
	repo := new(MockAdRepository)
	svc := NewTrackingService(repo, trackingTestConfig())
	meta := domain.TrackMeta{ActorID: "user1"}

	repo.On("FindByID", mock.Anything, uint64(1)).Return(activeAd(), nil)
	repo.On("HasImpressionSince", mock.Anything, uint64(1), meta.Identity(), mock.Anything).Return(true, nil)

	result, err := svc.TrackImpression(context.Background(), 1, meta)
	assert.NoError(t, err)
	assert.False(t, result.Tracked)
	assert.Equal(t, "duplicate", result.Reason)
	repo.AssertNotCalled(t, "CreateImpression", mock.Anything, mock.Anything)
}

func TestTrackImpression_AdNotFound(t *testing.T) {
	repo := new(MockAdRepository)
	svc := NewTrackingService(repo, trackingTestConfig())

	repo.On("FindByID", mock.Anything, uint64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.TrackImpression(context.Background(), 9, domain.TrackMeta{})
	assert.ErrorIs(t, err, common.ErrAdNotFound)
}

func TestTrackImpression_InactiveAd(t *testing.T) {
	repo := new(MockAdRepository)
	svc := NewTrackingService(repo, trackingTestConfig())

	repo.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Ad{ID: 1, IsActive: false}, nil)

	_, err := svc.TrackImpression(context.Background(), 1, domain.TrackMeta{})
	assert.ErrorIs(t, err, common.ErrAdNotFound)
}

func TestTrackClick_UnderLimit(t *testing.T) {
	repo := new(MockAdRepository)
	svc := NewTrackingService(repo, trackingTestConfig())
	meta := domain.TrackMeta{IPAddress: "10.0.0.1"}

	repo.On("FindByID", mock.Anything, uint64(1)).Return(activeAd(), nil)
	repo.On("CountClicksSince", mock.Anything, uint64(1), meta.Identity(), mock.Anything).Return(int64(2), nil)
	repo.On("CreateClick", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.TrackClick(context.Background(), 1, meta)
	assert.NoError(t, err)
	assert.True(t, result.Tracked)
	repo.AssertExpectations(t)
}

func TestTrackClick_RateLimited(t *testing.T) {
	repo := new(MockAdRepository)
	svc := NewTrackingService(repo, trackingTestConfig())
	meta := domain.TrackMeta{IPAddress: "10.0.0.1"}

	// The 4th click inside the window hits the 3-click limit
	repo.On("FindByID", mock.Anything, uint64(1)).Return(activeAd(), nil)
	repo.On("CountClicksSince", mock.Anything, uint64(1), meta.Identity(), mock.Anything).Return(int64(3), nil)

	_, err := svc.TrackClick(context.Background(), 1, meta)
	assert.ErrorIs(t, err, common.ErrClickRateLimited)
	repo.AssertNotCalled(t, "CreateClick", mock.Anything, mock.Anything)
}
