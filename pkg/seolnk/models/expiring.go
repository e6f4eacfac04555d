package models

import (
	"time"

	"gorm.io/gorm"
)

// ExpiringLink is a short link that stops resolving after its deadline.
type ExpiringLink struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CampaignID  *uint          `gorm:"index" json:"campaign_id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `json:"title"`
	OriginalURL string         `gorm:"not null" json:"original_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	ExpiresAt   time.Time      `gorm:"not null" json:"expires_at"`
}
