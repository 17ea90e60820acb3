package repository

import (
	"context"
	"time"

	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
)

// AdRepository defines event ingestion and counter operations for ads
type AdRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Ad, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]*domain.Ad, error)
	FindCampaign(ctx context.Context, id uint64) (*domain.AdCampaign, error)
	ListByCampaign(ctx context.Context, campaignID uint64) ([]*domain.Ad, error)

	// HasImpressionSince reports whether an impression matching the identity
	// filter exists for the ad since the given time
	HasImpressionSince(ctx context.Context, adID uint64, filter domain.IdentityFilter, since time.Time) (bool, error)
	// CountClicksSince counts click events matching the identity filter
	CountClicksSince(ctx context.Context, adID uint64, filter domain.IdentityFilter, since time.Time) (int64, error)

	// CreateImpression inserts the event row and increments impressions and
	// view_count in one transaction
	CreateImpression(ctx context.Context, imp *domain.AdImpression) error
	// CreateClick inserts the event row and increments click_count in one
	// transaction
	CreateClick(ctx context.Context, click *domain.AdClick) error
}

type adRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a new AdRepository
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) FindByID(ctx context.Context, id uint64) (*domain.Ad, error) {
	var ad domain.Ad
	if err := r.db.WithContext(ctx).First(&ad, id).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) FindByIDs(ctx context.Context, ids []uint64) ([]*domain.Ad, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ads []*domain.Ad
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ads).Error
	return ads, err
}

func (r *adRepository) FindCampaign(ctx context.Context, id uint64) (*domain.AdCampaign, error) {
	var campaign domain.AdCampaign
	if err := r.db.WithContext(ctx).First(&campaign, id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *adRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]*domain.Ad, error) {
	var ads []*domain.Ad
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&ads).Error
	return ads, err
}

// applyIdentity translates the filter into OR-combined predicates. An empty
// filter leaves the query unrestricted.
func applyIdentity(q *gorm.DB, filter domain.IdentityFilter) *gorm.DB {
	switch {
	case filter.ActorID != "" && filter.IPAddress != "":
		return q.Where("actor_id = ? OR ip_address = ?", filter.ActorID, filter.IPAddress)
	case filter.ActorID != "":
		return q.Where("actor_id = ?", filter.ActorID)
	case filter.IPAddress != "":
		return q.Where("ip_address = ?", filter.IPAddress)
	default:
		return q
	}
}

func (r *adRepository) HasImpressionSince(ctx context.Context, adID uint64, filter domain.IdentityFilter, since time.Time) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.AdImpression{}).
		Where("ad_id = ? AND created_at >= ?", adID, since)
	q = applyIdentity(q, filter)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *adRepository) CountClicksSince(ctx context.Context, adID uint64, filter domain.IdentityFilter, since time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.AdClick{}).
		Where("ad_id = ? AND created_at >= ?", adID, since)
	q = applyIdentity(q, filter)

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *adRepository) CreateImpression(ctx context.Context, imp *domain.AdImpression) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(imp).Error; err != nil {
			return err
		}
		// view_count is a legacy alias of impressions and moves in step
		return tx.Model(&domain.Ad{}).
			Where("id = ?", imp.AdID).
			UpdateColumns(map[string]interface{}{
				"impressions": gorm.Expr("impressions + 1"),
				"view_count":  gorm.Expr("view_count + 1"),
			}).Error
	})
}

func (r *adRepository) CreateClick(ctx context.Context, click *domain.AdClick) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(click).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Ad{}).
			Where("id = ?", click.AdID).
			UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
	})
}
