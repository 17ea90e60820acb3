package domain

import "time"

// Device classification derived from the User-Agent at tracking time
type Device string

const (
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
	DeviceUnknown Device = "unknown"
)

// Ad is an advertisement subject. The impression/click/view counters are
// derived state: they are only ever mutated in the same transaction as the
// event row that causes the change, and stay recomputable from the event log.
type Ad struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CampaignID  uint64    `gorm:"column:campaign_id;index" json:"campaign_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	TargetURL   string    `gorm:"column:target_url;size:500" json:"target_url"`
	Impressions int64     `gorm:"default:0" json:"impressions"`
	ClickCount  int64     `gorm:"column:click_count;default:0" json:"click_count"`
	ViewCount   int64     `gorm:"column:view_count;default:0" json:"view_count"` // legacy alias of impressions
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Ad) TableName() string {
	return "ads"
}

// AdCampaign groups ads for campaign-level analytics
type AdCampaign struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AdCampaign) TableName() string {
	return "ad_campaigns"
}

// AdImpression is an append-only impression event. Rows are never updated
// or deleted.
type AdImpression struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AdID      uint64    `gorm:"column:ad_id;not null;index:idx_ad_impressions_ad_created" json:"ad_id"`
	ActorID   string    `gorm:"column:actor_id;size:64;index" json:"actor_id,omitempty"`
	IPAddress string    `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent string    `gorm:"column:user_agent;size:500" json:"user_agent,omitempty"`
	Device    Device    `gorm:"size:10;not null" json:"device"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_ad_impressions_ad_created" json:"created_at"`
}

func (AdImpression) TableName() string {
	return "ad_impressions"
}

// AdClick is an append-only click event
type AdClick struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AdID      uint64    `gorm:"column:ad_id;not null;index:idx_ad_clicks_ad_created" json:"ad_id"`
	ActorID   string    `gorm:"column:actor_id;size:64;index" json:"actor_id,omitempty"`
	IPAddress string    `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent string    `gorm:"column:user_agent;size:500" json:"user_agent,omitempty"`
	Device    Device    `gorm:"size:10;not null" json:"device"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_ad_clicks_ad_created" json:"created_at"`
}

func (AdClick) TableName() string {
	return "ad_clicks"
}

// TrackMeta carries the request metadata supplied by the HTTP layer.
// Any field may be empty when the caller is anonymous.
type TrackMeta struct {
	ActorID   string
	IPAddress string
	UserAgent string
}

// IdentityFilter names the optional identity predicates of a fraud-window
// query. Each set field translates to exactly one predicate, OR-combined.
// An empty filter applies no identity restriction.
type IdentityFilter struct {
	ActorID   string
	IPAddress string
}

// IsEmpty reports whether no identity information is available
func (f IdentityFilter) IsEmpty() bool {
	return f.ActorID == "" && f.IPAddress == ""
}

// Identity extracts the dedup/rate-limit identity from request metadata
func (m TrackMeta) Identity() IdentityFilter {
	return IdentityFilter{ActorID: m.ActorID, IPAddress: m.IPAddress}
}

// TrackResult is the outcome of an impression tracking attempt.
// A duplicate within the fraud window is a normal result, not an error.
type TrackResult struct {
	Tracked bool   `json:"tracked"`
	Reason  string `json:"reason,omitempty"`
}
