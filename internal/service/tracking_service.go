package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	pkglogger "github.com/storynest/storynest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	impressionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_impressions_total",
			Help: "Impression tracking attempts by outcome",
		},
		[]string{"outcome"},
	)

	clicksTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_clicks_total",
			Help: "Click tracking attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// TrackingConfig holds the fraud-guard windows and limits
type TrackingConfig struct {
	ImpressionWindow time.Duration
	ClickWindow      time.Duration
	ClickLimit       int
}

// TrackingService ingests impression and click events behind the fraud
// guard. Dedup and rate-limit checks are check-then-write: two genuinely
// concurrent requests inside the window can both pass the read, yielding at
// most one extra counted event. That is a documented best-effort guarantee,
// not a hard one; the counter/row pair itself is always atomic.
type TrackingService interface {
	TrackImpression(ctx context.Context, adID uint64, meta domain.TrackMeta) (*domain.TrackResult, error)
	TrackClick(ctx context.Context, adID uint64, meta domain.TrackMeta) (*domain.TrackResult, error)
}

type trackingService struct {
	adRepo repository.AdRepository
	cfg    TrackingConfig
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(adRepo repository.AdRepository, cfg TrackingConfig) TrackingService {
	return &trackingService{adRepo: adRepo, cfg: cfg}
}

// TrackImpression records an impression unless the same identity already
// produced one for this ad inside the dedup window. A duplicate is a normal
// result, not an error.
func (s *trackingService) TrackImpression(ctx context.Context, adID uint64, meta domain.TrackMeta) (*domain.TrackResult, error) {
	if err := s.requireActiveAd(ctx, adID); err != nil {
		return nil, err
	}

	windowStart := time.Now().Add(-s.cfg.ImpressionWindow)
	seen, err := s.adRepo.HasImpressionSince(ctx, adID, meta.Identity(), windowStart)
	if err != nil {
		return nil, err
	}
	if seen {
		impressionsTracked.WithLabelValues("duplicate").Inc()
		return &domain.TrackResult{Tracked: false, Reason: "duplicate"}, nil
	}

	imp := &domain.AdImpression{
		AdID:      adID,
		ActorID:   meta.ActorID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Device:    DetectDevice(meta.UserAgent),
		CreatedAt: time.Now(),
	}
	if err := s.adRepo.CreateImpression(ctx, imp); err != nil {
		return nil, err
	}

	impressionsTracked.WithLabelValues("tracked").Inc()
	pkglogger.GetLogger().Debug().
		Uint64("ad_id", adID).
		Str("device", string(imp.Device)).
		Msg("impression tracked")
	return &domain.TrackResult{Tracked: true}, nil
}

// TrackClick records a click unless the identity already hit the per-window
// click limit, in which case the caller gets a rate-limit failure.
func (s *trackingService) TrackClick(ctx context.Context, adID uint64, meta domain.TrackMeta) (*domain.TrackResult, error) {
	if err := s.requireActiveAd(ctx, adID); err != nil {
		return nil, err
	}

	windowStart := time.Now().Add(-s.cfg.ClickWindow)
	count, err := s.adRepo.CountClicksSince(ctx, adID, meta.Identity(), windowStart)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.cfg.ClickLimit) {
		clicksTracked.WithLabelValues("rate_limited").Inc()
		return nil, common.ErrClickRateLimited
	}

	click := &domain.AdClick{
		AdID:      adID,
		ActorID:   meta.ActorID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Device:    DetectDevice(meta.UserAgent),
		CreatedAt: time.Now(),
	}
	if err := s.adRepo.CreateClick(ctx, click); err != nil {
		return nil, err
	}

	clicksTracked.WithLabelValues("tracked").Inc()
	return &domain.TrackResult{Tracked: true}, nil
}

func (s *trackingService) requireActiveAd(ctx context.Context, adID uint64) error {
	ad, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrAdNotFound
		}
		return err
	}
	if !ad.IsActive {
		return common.ErrAdNotFound
	}
	return nil
}
