package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: Campaign must be migrated first as the link tables reference it
func AllModels() []interface{} {
	return []interface{}{
		&Campaign{},
		&PreviewCard{},
		&CustomAlias{},
		&ExpiringLink{},
		&ProtectedLink{},
		&RotatorLink{},
		&RotatorTarget{},
		&AliasClick{},
		&ExpiringClick{},
		&ProtectedClick{},
		&RotatorClick{},
		&CardView{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
