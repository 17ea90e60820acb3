package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"gorm.io/gorm"
)

// DefaultTopAds is how many ranked ads a platform rollup returns
const DefaultTopAds = 10

// AnalyticsService rolls the append-only event logs up into CTR, device,
// and time-bucketed reports
type AnalyticsService interface {
	GetAdAnalytics(ctx context.Context, adID uint64, dateRange domain.DateRange) (*domain.AdAnalytics, error)
	GetPlatformAnalytics(ctx context.Context, dateRange domain.DateRange) (*domain.PlatformAnalytics, error)
	GetCampaignAnalytics(ctx context.Context, campaignID uint64, dateRange domain.DateRange) (*domain.CampaignAnalytics, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	adRepo        repository.AdRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, adRepo repository.AdRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo, adRepo: adRepo}
}

func (s *analyticsService) GetAdAnalytics(ctx context.Context, adID uint64, dateRange domain.DateRange) (*domain.AdAnalytics, error) {
	if _, err := s.adRepo.FindByID(ctx, adID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrAdNotFound
		}
		return nil, err
	}

	f := repository.EventFilter{AdID: adID, Range: dateRange}

	totals, err := s.totals(ctx, f)
	if err != nil {
		return nil, err
	}

	deviceRows, err := s.analyticsRepo.ImpressionsByDevice(ctx, f)
	if err != nil {
		return nil, err
	}

	daily, err := s.dailyData(ctx, f)
	if err != nil {
		return nil, err
	}

	hourly, err := s.hourlyData(ctx, f)
	if err != nil {
		return nil, err
	}

	return &domain.AdAnalytics{
		AdID:            adID,
		Totals:          totals,
		DeviceBreakdown: deviceBreakdown(deviceRows, totals.Impressions),
		DailyData:       daily,
		HourlyData:      hourly,
	}, nil
}

func (s *analyticsService) GetPlatformAnalytics(ctx context.Context, dateRange domain.DateRange) (*domain.PlatformAnalytics, error) {
	f := repository.EventFilter{Range: dateRange}

	totals, err := s.totals(ctx, f)
	if err != nil {
		return nil, err
	}

	summaries, err := s.adSummaries(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(summaries) > DefaultTopAds {
		summaries = summaries[:DefaultTopAds]
	}

	return &domain.PlatformAnalytics{Totals: totals, TopAds: summaries}, nil
}

func (s *analyticsService) GetCampaignAnalytics(ctx context.Context, campaignID uint64, dateRange domain.DateRange) (*domain.CampaignAnalytics, error) {
	campaign, err := s.adRepo.FindCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCampaignNotFound
		}
		return nil, err
	}

	ads, err := s.adRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	result := &domain.CampaignAnalytics{CampaignID: campaignID, Name: campaign.Name}
	if len(ads) == 0 {
		return result, nil
	}

	ids := make([]uint64, 0, len(ads))
	for _, ad := range ads {
		ids = append(ids, ad.ID)
	}
	f := repository.EventFilter{AdIDs: ids, Range: dateRange}

	totals, err := s.totals(ctx, f)
	if err != nil {
		return nil, err
	}
	result.Totals = totals

	summaries, err := s.adSummaries(ctx, f)
	if err != nil {
		return nil, err
	}
	result.Ads = summaries
	return result, nil
}

func (s *analyticsService) totals(ctx context.Context, f repository.EventFilter) (domain.AnalyticsTotals, error) {
	impressions, err := s.analyticsRepo.CountImpressions(ctx, f)
	if err != nil {
		return domain.AnalyticsTotals{}, err
	}
	clicks, err := s.analyticsRepo.CountClicks(ctx, f)
	if err != nil {
		return domain.AnalyticsTotals{}, err
	}
	return domain.AnalyticsTotals{
		Impressions: impressions,
		Clicks:      clicks,
		CTR:         roundCTR(impressions, clicks),
	}, nil
}

// dailyData merges the two per-day group-bys into one series keyed by ISO
// date. A date present in only one source still gets a row; per-day CTR is
// computed after the merge.
func (s *analyticsService) dailyData(ctx context.Context, f repository.EventFilter) ([]domain.DailyStat, error) {
	impRows, err := s.analyticsRepo.ImpressionsByDay(ctx, f)
	if err != nil {
		return nil, err
	}
	clickRows, err := s.analyticsRepo.ClicksByDay(ctx, f)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.DailyStat, len(impRows))
	for _, row := range impRows {
		byDate[row.Date] = &domain.DailyStat{Date: row.Date, Impressions: row.Count}
	}
	for _, row := range clickRows {
		stat, ok := byDate[row.Date]
		if !ok {
			stat = &domain.DailyStat{Date: row.Date}
			byDate[row.Date] = stat
		}
		stat.Clicks = row.Count
	}

	daily := make([]domain.DailyStat, 0, len(byDate))
	for _, stat := range byDate {
		stat.CTR = roundCTR(stat.Impressions, stat.Clicks)
		daily = append(daily, *stat)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })
	return daily, nil
}

func (s *analyticsService) hourlyData(ctx context.Context, f repository.EventFilter) ([]domain.HourlyStat, error) {
	impRows, err := s.analyticsRepo.ImpressionsByHour(ctx, f)
	if err != nil {
		return nil, err
	}
	clickRows, err := s.analyticsRepo.ClicksByHour(ctx, f)
	if err != nil {
		return nil, err
	}

	byHour := make(map[int]*domain.HourlyStat, len(impRows))
	for _, row := range impRows {
		byHour[row.Hour] = &domain.HourlyStat{Hour: row.Hour, Impressions: row.Count}
	}
	for _, row := range clickRows {
		stat, ok := byHour[row.Hour]
		if !ok {
			stat = &domain.HourlyStat{Hour: row.Hour}
			byHour[row.Hour] = stat
		}
		stat.Clicks = row.Count
	}

	hourly := make([]domain.HourlyStat, 0, len(byHour))
	for _, stat := range byHour {
		hourly = append(hourly, *stat)
	}
	sort.Slice(hourly, func(i, j int) bool { return hourly[i].Hour < hourly[j].Hour })
	return hourly, nil
}

// adSummaries builds the ranked per-ad rows for platform and campaign
// rollups, impressions descending with clicks breaking ties
func (s *analyticsService) adSummaries(ctx context.Context, f repository.EventFilter) ([]domain.AdSummary, error) {
	impRows, err := s.analyticsRepo.ImpressionsByAd(ctx, f)
	if err != nil {
		return nil, err
	}
	clickRows, err := s.analyticsRepo.ClicksByAd(ctx, f)
	if err != nil {
		return nil, err
	}

	byAd := make(map[uint64]*domain.AdSummary, len(impRows))
	for _, row := range impRows {
		byAd[row.AdID] = &domain.AdSummary{AdID: row.AdID, Impressions: row.Count}
	}
	for _, row := range clickRows {
		summary, ok := byAd[row.AdID]
		if !ok {
			summary = &domain.AdSummary{AdID: row.AdID}
			byAd[row.AdID] = summary
		}
		summary.Clicks = row.Count
	}

	ids := make([]uint64, 0, len(byAd))
	for id := range byAd {
		ids = append(ids, id)
	}
	ads, err := s.adRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint64]string, len(ads))
	for _, ad := range ads {
		titles[ad.ID] = ad.Title
	}

	summaries := make([]domain.AdSummary, 0, len(byAd))
	for _, summary := range byAd {
		summary.Title = titles[summary.AdID]
		summary.CTR = roundCTR(summary.Impressions, summary.Clicks)
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Impressions != summaries[j].Impressions {
			return summaries[i].Impressions > summaries[j].Impressions
		}
		return summaries[i].Clicks > summaries[j].Clicks
	})
	return summaries, nil
}

// deviceBreakdown attaches each bucket's share of total impressions
func deviceBreakdown(rows []repository.DeviceCountRow, totalImpressions int64) []domain.DeviceStat {
	stats := make([]domain.DeviceStat, 0, len(rows))
	for _, row := range rows {
		stat := domain.DeviceStat{Device: row.Device, Count: row.Count}
		if totalImpressions > 0 {
			stat.Percentage = round2(float64(row.Count) / float64(totalImpressions) * 100)
		}
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// roundCTR computes clicks/impressions as a percentage, 2 decimals; zero
// impressions yield 0 rather than a division by zero
func roundCTR(impressions, clicks int64) float64 {
	if impressions == 0 {
		return 0
	}
	return round2(float64(clicks) / float64(impressions) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
