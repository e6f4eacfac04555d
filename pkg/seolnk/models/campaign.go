package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign is an optional grouping label attached to link records.
// Deleting a campaign nullifies the campaign reference on its links
// rather than cascading the delete.
type Campaign struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Name      string         `gorm:"not null" json:"name"`
}

// BeforeDelete clears campaign references on every link table.
// Links outlive their campaign.
func (c *Campaign) BeforeDelete(tx *gorm.DB) error {
	for _, model := range []interface{}{
		&PreviewCard{}, &CustomAlias{}, &ExpiringLink{}, &ProtectedLink{}, &RotatorLink{},
	} {
		if err := tx.Model(model).Where("campaign_id = ?", c.ID).
			Update("campaign_id", nil).Error; err != nil {
			return err
		}
	}
	return nil
}
