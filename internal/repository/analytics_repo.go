package repository

import (
	"context"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
)

// EventFilter scopes a rollup query. Zero AdID and nil AdIDs mean all ads;
// an open range side is skipped.
type EventFilter struct {
	AdID  uint64
	AdIDs []uint64
	Range domain.DateRange
}

// DeviceCountRow is one device bucket of a group-by
type DeviceCountRow struct {
	Device domain.Device `gorm:"column:device"`
	Count  int64         `gorm:"column:count"`
}

// DayCountRow is one calendar-day bucket of a group-by
type DayCountRow struct {
	Date  string `gorm:"column:date"`
	Count int64  `gorm:"column:count"`
}

// HourCountRow is one hour-of-day bucket (0-23)
type HourCountRow struct {
	Hour  int   `gorm:"column:hour"`
	Count int64 `gorm:"column:count"`
}

// AdCountRow is one per-ad bucket of a group-by
type AdCountRow struct {
	AdID  uint64 `gorm:"column:ad_id"`
	Count int64  `gorm:"column:count"`
}

// AnalyticsRepository aggregates the append-only event logs
type AnalyticsRepository interface {
	CountImpressions(ctx context.Context, f EventFilter) (int64, error)
	CountClicks(ctx context.Context, f EventFilter) (int64, error)
	ImpressionsByDevice(ctx context.Context, f EventFilter) ([]DeviceCountRow, error)
	ImpressionsByDay(ctx context.Context, f EventFilter) ([]DayCountRow, error)
	ClicksByDay(ctx context.Context, f EventFilter) ([]DayCountRow, error)
	ImpressionsByHour(ctx context.Context, f EventFilter) ([]HourCountRow, error)
	ClicksByHour(ctx context.Context, f EventFilter) ([]HourCountRow, error)
	ImpressionsByAd(ctx context.Context, f EventFilter) ([]AdCountRow, error)
	ClicksByAd(ctx context.Context, f EventFilter) ([]AdCountRow, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// scope applies the event filter to a query on an event table
func (r *analyticsRepository) scope(ctx context.Context, model interface{}, f EventFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(model)
	if f.AdID != 0 {
		q = q.Where("ad_id = ?", f.AdID)
	}
	if len(f.AdIDs) > 0 {
		q = q.Where("ad_id IN ?", f.AdIDs)
	}
	if !f.Range.From.IsZero() {
		q = q.Where("created_at >= ?", f.Range.From)
	}
	if !f.Range.To.IsZero() {
		q = q.Where("created_at <= ?", f.Range.To)
	}
	return q
}

func (r *analyticsRepository) CountImpressions(ctx context.Context, f EventFilter) (int64, error) {
	var count int64
	err := r.scope(ctx, &domain.AdImpression{}, f).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountClicks(ctx context.Context, f EventFilter) (int64, error) {
	var count int64
	err := r.scope(ctx, &domain.AdClick{}, f).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) ImpressionsByDevice(ctx context.Context, f EventFilter) ([]DeviceCountRow, error) {
	var rows []DeviceCountRow
	err := r.scope(ctx, &domain.AdImpression{}, f).
		Select("device, COUNT(*) AS count").
		Group("device").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ImpressionsByDay(ctx context.Context, f EventFilter) ([]DayCountRow, error) {
	return r.byDay(ctx, &domain.AdImpression{}, f)
}

func (r *analyticsRepository) ClicksByDay(ctx context.Context, f EventFilter) ([]DayCountRow, error) {
	return r.byDay(ctx, &domain.AdClick{}, f)
}

func (r *analyticsRepository) byDay(ctx context.Context, model interface{}, f EventFilter) ([]DayCountRow, error) {
	var rows []DayCountRow
	err := r.scope(ctx, model, f).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ImpressionsByHour(ctx context.Context, f EventFilter) ([]HourCountRow, error) {
	return r.byHour(ctx, &domain.AdImpression{}, f)
}

func (r *analyticsRepository) ClicksByHour(ctx context.Context, f EventFilter) ([]HourCountRow, error) {
	return r.byHour(ctx, &domain.AdClick{}, f)
}

// byHour buckets events by hour of day. GORM has no portable hour
// extraction, so this stays raw SQL behind the repository boundary.
func (r *analyticsRepository) byHour(ctx context.Context, model interface{}, f EventFilter) ([]HourCountRow, error) {
	var rows []HourCountRow
	err := r.scope(ctx, model, f).
		Select("HOUR(created_at) AS hour, COUNT(*) AS count").
		Group("HOUR(created_at)").
		Order("hour ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ImpressionsByAd(ctx context.Context, f EventFilter) ([]AdCountRow, error) {
	return r.byAd(ctx, &domain.AdImpression{}, f)
}

func (r *analyticsRepository) ClicksByAd(ctx context.Context, f EventFilter) ([]AdCountRow, error) {
	return r.byAd(ctx, &domain.AdClick{}, f)
}

func (r *analyticsRepository) byAd(ctx context.Context, model interface{}, f EventFilter) ([]AdCountRow, error) {
	var rows []AdCountRow
	err := r.scope(ctx, model, f).
		Select("ad_id, COUNT(*) AS count").
		Group("ad_id").
		Scan(&rows).Error
	return rows, err
}
