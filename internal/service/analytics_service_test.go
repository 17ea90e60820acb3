package service

import (
	"context"
	"testing"

	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) CountImpressions(ctx context.Context, f repository.EventFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountClicks(ctx context.Context, f repository.EventFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) ImpressionsByDevice(ctx context.Context, f repository.EventFilter) ([]repository.DeviceCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.DeviceCountRow), args.Error(1)
}

func (m *MockAnalyticsRepository) ImpressionsByDay(ctx context.Context, f repository.EventFilter) ([]repository.DayCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.DayCountRow), args.Error(1)
}

func (m *MockAnalyticsRepository) ClicksByDay(ctx context.Context, f repository.EventFilter) ([]repository.DayCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.DayCountRow), args.Error(1)
}

func (m *MockAnalyticsRepository) ImpressionsByHour(ctx context.Context, f repository.EventFilter) ([]repository.HourCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.HourCountRow), args.Error(1)
}

func (m *MockAnalyticsRepository) ClicksByHour(ctx context.Context, f repository.EventFilter) ([]repository.HourCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.HourCountRow), args.Error(1)
}

func (m *MockAnalyticsRepository) ImpressionsByAd(ctx context.Context, f repository.EventFilter) ([]repository.AdCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.AdCountRow), args.Error(1)
}

func (m *MockAnalyticsRepository) ClicksByAd(ctx context.Context, f repository.EventFilter) ([]repository.AdCountRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repository.AdCountRow), args.Error(1)
}

func TestRoundCTR(t *testing.T) {
	assert.Equal(t, float64(0), roundCTR(0, 0))
	assert.Equal(t, float64(0), roundCTR(0, 10))
	assert.Equal(t, 12.5, roundCTR(200, 25))
	assert.Equal(t, 33.33, roundCTR(3, 1))
	assert.Equal(t, float64(100), roundCTR(50, 50))
}

func TestGetAdAnalytics(t *testing.T) {
	analyticsRepo := new(MockAnalyticsRepository)
	adRepo := new(MockAdRepository)
	svc := NewAnalyticsService(analyticsRepo, adRepo)

	adRepo.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Ad{ID: 1, Title: "banner", IsActive: true}, nil)
	analyticsRepo.On("CountImpressions", mock.Anything, mock.Anything).Return(int64(200), nil)
	analyticsRepo.On("CountClicks", mock.Anything, mock.Anything).Return(int64(25), nil)
	analyticsRepo.On("ImpressionsByDevice", mock.Anything, mock.Anything).Return([]repository.DeviceCountRow{
		{Device: domain.DeviceMobile, Count: 150},
		{Device: domain.DeviceDesktop, Count: 50},
	}, nil)
	analyticsRepo.On("ImpressionsByDay", mock.Anything, mock.Anything).Return([]repository.DayCountRow{
		{Date: "2026-08-01", Count: 120},
		{Date: "2026-08-02", Count: 80},
	}, nil)
	analyticsRepo.On("ClicksByDay", mock.Anything, mock.Anything).Return([]repository.DayCountRow{
		{Date: "2026-08-02", Count: 10},
		{Date: "2026-08-03", Count: 15},
	}, nil)
	analyticsRepo.On("ImpressionsByHour", mock.Anything, mock.Anything).Return([]repository.HourCountRow{
		{Hour: 9, Count: 100},
		{Hour: 21, Count: 100},
	}, nil)
	analyticsRepo.On("ClicksByHour", mock.Anything, mock.Anything).Return([]repository.HourCountRow{
		{Hour: 21, Count: 25},
	}, nil)

	result, err := svc.GetAdAnalytics(context.Background(), 1, domain.DateRange{})
	assert.NoError(t, err)

	assert.Equal(t, int64(200), result.Totals.Impressions)
	assert.Equal(t, int64(25), result.Totals.Clicks)
	assert.Equal(t, 12.5, result.Totals.CTR)

	// Device shares of total impressions
	assert.Len(t, result.DeviceBreakdown, 2)
	assert.Equal(t, domain.DeviceMobile, result.DeviceBreakdown[0].Device)
	assert.Equal(t, float64(75), result.DeviceBreakdown[0].Percentage)
	assert.Equal(t, float64(25), result.DeviceBreakdown[1].Percentage)

	// Days merged across both sources, ascending, CTR computed after merge
	assert.Len(t, result.DailyData, 3)
	assert.Equal(t, "2026-08-01", result.DailyData[0].Date)
	assert.Equal(t, float64(0), result.DailyData[0].CTR)
	assert.Equal(t, "2026-08-02", result.DailyData[1].Date)
	assert.Equal(t, int64(80), result.DailyData[1].Impressions)
	assert.Equal(t, int64(10), result.DailyData[1].Clicks)
	assert.Equal(t, 12.5, result.DailyData[1].CTR)
	assert.Equal(t, "2026-08-03", result.DailyData[2].Date)
	assert.Equal(t, int64(0), result.DailyData[2].Impressions)
	assert.Equal(t, int64(15), result.DailyData[2].Clicks)

	assert.Len(t, result.HourlyData, 2)
	assert.Equal(t, 9, result.HourlyData[0].Hour)
	assert.Equal(t, int64(0), result.HourlyData[0].Clicks)
	assert.Equal(t, 21, result.HourlyData[1].Hour)
	assert.Equal(t, int64(25), result.HourlyData[1].Clicks)
}

func TestGetPlatformAnalytics_Ranking(t *testing.T) {
	analyticsRepo := new(MockAnalyticsRepository)
	adRepo := new(MockAdRepository)
	svc := NewAnalyticsService(analyticsRepo, adRepo)

	analyticsRepo.On("CountImpressions", mock.Anything, mock.Anything).Return(int64(300), nil)
	analyticsRepo.On("CountClicks", mock.Anything, mock.Anything).Return(int64(30), nil)
	analyticsRepo.On("ImpressionsByAd", mock.Anything, mock.Anything).Return([]repository.AdCountRow{
		{AdID: 1, Count: 100},
		{AdID: 2, Count: 100},
		{AdID: 3, Count: 100},
	}, nil)
	analyticsRepo.On("ClicksByAd", mock.Anything, mock.Anything).Return([]repository.AdCountRow{
		{AdID: 1, Count: 5},
		{AdID: 2, Count: 20},
		{AdID: 3, Count: 5},
	}, nil)
	adRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*domain.Ad{
		{ID: 1, Title: "alpha"},
		{ID: 2, Title: "beta"},
		{ID: 3, Title: "gamma"},
	}, nil)

	result, err := svc.GetPlatformAnalytics(context.Background(), domain.DateRange{})
	assert.NoError(t, err)

	assert.Equal(t, float64(10), result.Totals.CTR)
	// Equal impressions, so clicks break the tie
	assert.Len(t, result.TopAds, 3)
	assert.Equal(t, uint64(2), result.TopAds[0].AdID)
	assert.Equal(t, "beta", result.TopAds[0].Title)
	assert.Equal(t, float64(20), result.TopAds[0].CTR)
}

func TestGetCampaignAnalytics_NoAds(t *testing.T) {
	analyticsRepo := new(MockAnalyticsRepository)
	adRepo := new(MockAdRepository)
	svc := NewAnalyticsService(analyticsRepo, adRepo)

	adRepo.On("FindCampaign", mock.Anything, uint64(7)).Return(&domain.AdCampaign{ID: 7, Name: "launch"}, nil)
	adRepo.On("ListByCampaign", mock.Anything, uint64(7)).Return([]*domain.Ad{}, nil)

	result, err := svc.GetCampaignAnalytics(context.Background(), 7, domain.DateRange{})
	assert.NoError(t, err)
	assert.Equal(t, "launch", result.Name)
	assert.Equal(t, int64(0), result.Totals.Impressions)
	assert.Empty(t, result.Ads)
	analyticsRepo.AssertNotCalled(t, "CountImpressions", mock.Anything, mock.Anything)
}
