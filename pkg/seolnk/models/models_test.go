package models

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestCampaignDeleteNullifiesReferences(t *testing.T) {
	db := setupTestDB(t)

	campaign := Campaign{OwnerID: 1, Name: "Launch"}
	if err := db.Create(&campaign).Error; err != nil {
		t.Fatalf("Failed to create campaign: %v", err)
	}

	aliasLink := CustomAlias{
		OwnerID: 1, CampaignID: &campaign.ID, Alias: "launch-promo",
		OriginalURL: "https://example.com", IsActive: true,
	}
	db.Create(&aliasLink)
	expiring := ExpiringLink{
		OwnerID: 1, CampaignID: &campaign.ID, Slug: "abc12345",
		OriginalURL: "https://example.com", IsActive: true,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	db.Create(&expiring)
	rotator := RotatorLink{
		OwnerID: 1, CampaignID: &campaign.ID, Slug: "rot12345",
		Title: "AB", IsActive: true,
	}
	db.Create(&rotator)

	if err := db.Delete(&campaign).Error; err != nil {
		t.Fatalf("Failed to delete campaign: %v", err)
	}

	var gotAlias CustomAlias
	db.First(&gotAlias, aliasLink.ID)
	if gotAlias.CampaignID != nil {
		t.Errorf("alias campaign_id should be nullified, got %v", *gotAlias.CampaignID)
	}
	var gotExpiring ExpiringLink
	db.First(&gotExpiring, expiring.ID)
	if gotExpiring.CampaignID != nil {
		t.Errorf("expiring campaign_id should be nullified, got %v", *gotExpiring.CampaignID)
	}
	var gotRotator RotatorLink
	db.First(&gotRotator, rotator.ID)
	if gotRotator.CampaignID != nil {
		t.Errorf("rotator campaign_id should be nullified, got %v", *gotRotator.CampaignID)
	}
}

func TestCampaignDeleteLeavesOtherCampaignsAlone(t *testing.T) {
	db := setupTestDB(t)

	doomed := Campaign{OwnerID: 1, Name: "Doomed"}
	db.Create(&doomed)
	kept := Campaign{OwnerID: 1, Name: "Kept"}
	db.Create(&kept)

	link := CustomAlias{
		OwnerID: 1, CampaignID: &kept.ID, Alias: "keeper",
		OriginalURL: "https://example.com", IsActive: true,
	}
	db.Create(&link)

	if err := db.Delete(&doomed).Error; err != nil {
		t.Fatalf("Failed to delete campaign: %v", err)
	}

	var got CustomAlias
	db.First(&got, link.ID)
	if got.CampaignID == nil || *got.CampaignID != kept.ID {
		t.Error("link attached to a surviving campaign must keep its reference")
	}
}

func TestCustomAliasUniqueConstraint(t *testing.T) {
	db := setupTestDB(t)

	first := CustomAlias{OwnerID: 1, Alias: "taken", OriginalURL: "https://example.com", IsActive: true}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create alias: %v", err)
	}

	dup := CustomAlias{OwnerID: 2, Alias: "taken", OriginalURL: "https://other.example.com", IsActive: true}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("duplicate alias should violate the unique index")
	}
}
