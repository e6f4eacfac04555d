package models

import (
	"time"

	"gorm.io/gorm"
)

// ProtectedLink is a short link gated by a password. Only the bcrypt
// hash of the password is ever stored.
type ProtectedLink struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID      uint           `gorm:"not null;index" json:"owner_id"`
	CampaignID   *uint          `gorm:"index" json:"campaign_id"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title        string         `json:"title"`
	OriginalURL  string         `gorm:"not null" json:"original_url"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	PasswordHash string         `gorm:"not null" json:"-"`
}
