package resolve

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"gorm.io/gorm"
)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(New(db, nopEmitter{}))
	handler.RegisterRoutes(r)
	return r
}

func TestAliasRedirectHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createAlias(t, db, "promo", "https://example.com/landing", true, nil)

	req, _ := http.NewRequest("GET", "/s/promo", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "https://example.com/landing" {
		t.Errorf("Expected Location 'https://example.com/landing', got %s", loc)
	}
}

func TestAliasNotFoundHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/s/nonexistent", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestInactiveLinkGoneHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createAlias(t, db, "paused", "https://example.com", false, nil)

	req, _ := http.NewRequest("GET", "/s/paused", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusGone {
		t.Errorf("Expected status 410, got %d", resp.Code)
	}
}

func TestExpiredLinkGoneHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	db.Create(&models.ExpiringLink{
		OwnerID: 1, Slug: "old", OriginalURL: "https://example.com",
		IsActive: true, ExpiresAt: time.Now().Add(-time.Hour),
	})

	req, _ := http.NewRequest("GET", "/e/old", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusGone {
		t.Errorf("Expected status 410, got %d", resp.Code)
	}
}

func TestProtectedLinkFlowHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	hash, _ := auth.HashPassword("opensesame")
	db.Create(&models.ProtectedLink{
		OwnerID: 1, Slug: "vault", Title: "The Vault",
		OriginalURL: "https://example.com/secret", IsActive: true, PasswordHash: hash,
	})

	// Step 1: the challenge.
	req, _ := http.NewRequest("GET", "/p/vault", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	var challenge map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &challenge); err != nil {
		t.Fatalf("Failed to parse challenge: %v", err)
	}
	if challenge["state"] != "password_required" {
		t.Errorf("Expected password_required state, got %q", challenge["state"])
	}
	if challenge["title"] != "The Vault" {
		t.Errorf("Expected title in challenge, got %q", challenge["title"])
	}

	// Step 2: wrong password.
	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	req, _ = http.NewRequest("POST", "/p/vault", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}

	// Step 3: correct password.
	body, _ = json.Marshal(map[string]string{"password": "opensesame"})
	req, _ = http.NewRequest("POST", "/p/vault", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	var result map[string]string
	json.Unmarshal(resp.Body.Bytes(), &result)
	if result["url"] != "https://example.com/secret" {
		t.Errorf("Expected target URL in response, got %q", result["url"])
	}
}

func TestRotatorRedirectHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createRotator(t, db, "spin", []string{"https://a.example.com"})

	req, _ := http.NewRequest("GET", "/r/spin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "https://a.example.com" {
		t.Errorf("Expected Location 'https://a.example.com', got %s", loc)
	}
}

func TestCardRedirectHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	db.Create(&models.PreviewCard{
		OwnerID: 1, Slug: "card1", Title: "A Card",
		OriginalURL: "https://example.com/article", IsActive: true,
	})

	req, _ := http.NewRequest("GET", "/c/card1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", resp.Code)
	}
}
