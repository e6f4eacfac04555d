package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomAlias is a branded short link. The alias is stored normalized
// (lowercase, [a-z0-9-]) and is unique across the whole platform,
// including reserved route names enforced by the alias policy.
type CustomAlias struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CampaignID  *uint          `gorm:"index" json:"campaign_id"`
	Alias       string         `gorm:"uniqueIndex;not null" json:"alias"`
	Title       string         `json:"title"`
	OriginalURL string         `gorm:"not null" json:"original_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsLocked    bool           `gorm:"default:false" json:"is_locked"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	ClickCount  uint           `gorm:"default:0" json:"click_count"`
}
