package models

import (
	"time"

	"gorm.io/gorm"
)

// RotatorLink distributes visits across a set of destination URLs.
// A rotator always has at least one target; empty target sets are
// rejected at the API layer and never persisted.
type RotatorLink struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID    uint           `gorm:"not null;index" json:"owner_id"`
	CampaignID *uint          `gorm:"index" json:"campaign_id"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title      string         `gorm:"not null" json:"title"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`

	Targets []RotatorTarget `gorm:"foreignKey:RotatorLinkID" json:"targets,omitempty"`
}

// RotatorTarget is one destination URL owned exclusively by its rotator.
type RotatorTarget struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	RotatorLinkID uint      `gorm:"not null;index" json:"rotator_link_id"`
	URL           string    `gorm:"not null" json:"url"`
	Position      int       `json:"position"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
}
