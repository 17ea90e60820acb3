package migration

import (
	"github.com/storynest/storynest-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every table the engagement engine owns or
// reads. AutoMigrate creates missing tables and adds missing columns and
// indexes; it never drops anything.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Ad{},
		&domain.AdCampaign{},
		&domain.AdImpression{},
		&domain.AdClick{},
		&domain.Story{},
		&domain.Chapter{},
		&domain.Rating{},
		&domain.Follow{},
		&domain.Comment{},
		&domain.ReadingHistory{},
	)
}
