package domain

import "time"

// DateRange bounds an analytics query. A zero From or To leaves that side
// open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether no bound was supplied
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// AnalyticsTotals are the headline numbers of a rollup
type AnalyticsTotals struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

// DeviceStat is one device bucket of the impression breakdown
type DeviceStat struct {
	Device     Device  `json:"device"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DailyStat is one merged day bucket; CTR is computed after merging
// impression and click counts for the day
type DailyStat struct {
	Date        string  `json:"date"` // ISO date, YYYY-MM-DD
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

// HourlyStat is one hour-of-day bucket (0-23)
type HourlyStat struct {
	Hour        int   `json:"hour"`
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
}

// AdAnalytics is the full per-ad rollup
type AdAnalytics struct {
	AdID            uint64          `json:"ad_id"`
	Totals          AnalyticsTotals `json:"totals"`
	DeviceBreakdown []DeviceStat    `json:"device_breakdown"`
	DailyData       []DailyStat     `json:"daily_data"`
	HourlyData      []HourlyStat    `json:"hourly_data"`
}

// AdSummary is one ranked row of a platform/campaign rollup
type AdSummary struct {
	AdID        uint64  `json:"ad_id"`
	Title       string  `json:"title"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

// PlatformAnalytics aggregates across all ads
type PlatformAnalytics struct {
	Totals AnalyticsTotals `json:"totals"`
	TopAds []AdSummary     `json:"top_ads"`
}

// CampaignAnalytics aggregates the ads of one campaign
type CampaignAnalytics struct {
	CampaignID uint64          `json:"campaign_id"`
	Name       string          `json:"name"`
	Totals     AnalyticsTotals `json:"totals"`
	Ads        []AdSummary     `json:"ads"`
}
