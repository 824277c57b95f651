package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"finance_tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// setupTestRouter builds the full router against a throwaway SQLite
// database. Redis is nil, so handlers run uncached
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "finance_test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Transaction{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return NewRouter(db, nil, testSecret), db
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dest); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// registerTestUser registers a fresh account and returns its token
func registerTestUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/auth/register", "", map[string]string{
		"email":     email,
		"password":  "secret123",
		"firstName": "Test",
		"lastName":  "User",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register of %s: expected status %d, got %d: %s", email, http.StatusCreated, w.Code, w.Body.String())
	}
	var resp AuthResponse
	decodeJSON(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("Expected token, got empty")
	}
	return resp.Token
}

func categoryPath(id uint) string {
	return "/api/categories/" + strconv.Itoa(int(id))
}

func transactionPath(id uint) string {
	return "/api/transactions/" + strconv.Itoa(int(id))
}

// createCategoryViaAPI creates a category and returns its id
func createCategoryViaAPI(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/categories", token, map[string]string{
		"name":  name,
		"color": "#ff8800",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create category %s: expected status %d, got %d: %s", name, http.StatusCreated, w.Code, w.Body.String())
	}
	var resp struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, w, &resp)
	return resp.ID
}
