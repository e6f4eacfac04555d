package models

import (
	"time"

	"gorm.io/gorm"
)

// PreviewCard is a short link with a custom social preview
// (title/description/image rendered by the card page before redirecting).
type PreviewCard struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CampaignID  *uint          `gorm:"index" json:"campaign_id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	ImageWidth  int            `json:"image_width"`
	ImageHeight int            `json:"image_height"`
	OriginalURL string         `gorm:"not null" json:"original_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
}
