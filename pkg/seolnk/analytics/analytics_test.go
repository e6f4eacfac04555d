package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", auth.AuthMiddleware())
	NewHandler(db).RegisterRoutes(api)
	return r
}

func getStats(t *testing.T, router *gin.Engine, ownerID uint, linkType string, linkID uint) *httptest.ResponseRecorder {
	token, err := auth.SignToken(ownerID, fmt.Sprintf("owner%d@example.com", ownerID))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/stats/%s/%d", linkType, linkID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestStoreEmitWritesPerTypeTables(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db, nil)

	now := time.Now()
	store.Emit(Event{LinkType: TypeAlias, LinkID: 1, Referrer: "https://ref.example.com", UserAgent: "test-agent", OccurredAt: now})
	store.Emit(Event{LinkType: TypeExpiring, LinkID: 2, OccurredAt: now})
	store.Emit(Event{LinkType: TypeProtected, LinkID: 3, OccurredAt: now})
	store.Emit(Event{LinkType: TypeRotator, LinkID: 4, OccurredAt: now})
	store.Emit(Event{LinkType: TypeCard, LinkID: 5, OccurredAt: now})

	var click models.AliasClick
	if err := db.First(&click).Error; err != nil {
		t.Fatalf("alias click not written: %v", err)
	}
	if click.LinkID != 1 || click.Referrer != "https://ref.example.com" || click.UserAgent != "test-agent" {
		t.Errorf("alias click row mismatch: %+v", click)
	}

	counts := map[string]interface{}{
		"expiring":  &models.ExpiringClick{},
		"protected": &models.ProtectedClick{},
		"rotator":   &models.RotatorClick{},
		"card":      &models.CardView{},
	}
	for name, model := range counts {
		var n int64
		db.Model(model).Count(&n)
		if n != 1 {
			t.Errorf("expected 1 %s event, got %d", name, n)
		}
	}
}

func TestStoreEmitUnknownTypeIsDiscarded(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db, nil)

	store.Emit(Event{LinkType: LinkType("bogus"), LinkID: 1, OccurredAt: time.Now()})

	var n int64
	db.Model(&models.AliasClick{}).Count(&n)
	if n != 0 {
		t.Errorf("unknown event type must not be persisted, got %d rows", n)
	}
}

func TestStatsForAlias(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	link := models.CustomAlias{
		OwnerID: 1, Alias: "promo", OriginalURL: "https://example.com",
		IsActive: true, ClickCount: 3,
	}
	db.Create(&link)
	store := NewStore(db, nil)
	for i := 0; i < 3; i++ {
		store.Emit(Event{
			LinkType: TypeAlias, LinkID: link.ID,
			UserAgent: "agent", OccurredAt: time.Now().Add(time.Duration(i) * time.Second),
		})
	}

	resp := getStats(t, router, 1, "alias", link.ID)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var stats StatsResponse
	json.Unmarshal(resp.Body.Bytes(), &stats)
	if stats.TotalVisits != 3 {
		t.Errorf("expected 3 total visits, got %d", stats.TotalVisits)
	}
	if stats.ClickCount == nil || *stats.ClickCount != 3 {
		t.Errorf("expected click_count 3 for an alias, got %v", stats.ClickCount)
	}
	if len(stats.Recent) != 3 {
		t.Errorf("expected 3 recent events, got %d", len(stats.Recent))
	}
}

func TestStatsRecentIsCapped(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	rotator := models.RotatorLink{OwnerID: 1, Slug: "spin", Title: "AB", IsActive: true}
	db.Create(&rotator)
	store := NewStore(db, nil)
	for i := 0; i < recentEventLimit+5; i++ {
		store.Emit(Event{
			LinkType: TypeRotator, LinkID: rotator.ID,
			OccurredAt: time.Now().Add(time.Duration(i) * time.Second),
		})
	}

	resp := getStats(t, router, 1, "rotator", rotator.ID)
	var stats StatsResponse
	json.Unmarshal(resp.Body.Bytes(), &stats)
	if stats.TotalVisits != int64(recentEventLimit+5) {
		t.Errorf("expected %d total visits, got %d", recentEventLimit+5, stats.TotalVisits)
	}
	if len(stats.Recent) != recentEventLimit {
		t.Errorf("expected recent capped at %d, got %d", recentEventLimit, len(stats.Recent))
	}
	if stats.ClickCount != nil {
		t.Error("click_count should only appear for aliases")
	}
}

func TestStatsNonOwnerLooksLikeNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	link := models.CustomAlias{OwnerID: 1, Alias: "mine", OriginalURL: "https://example.com", IsActive: true}
	db.Create(&link)

	resp := getStats(t, router, 2, "alias", link.ID)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for non-owner, got %d", resp.Code)
	}
}

func TestStatsInvalidType(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := getStats(t, router, 1, "bogus", 1)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid type, got %d", resp.Code)
	}
}

func TestNilGeoCountryIsEmpty(t *testing.T) {
	var geo *Geo
	if got := geo.Country("8.8.8.8"); got != "" {
		t.Errorf("nil geo should return empty country, got %q", got)
	}
}
