package service

import (
	"path/filepath"
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a throwaway SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "finance_test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Transaction{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	user := domain.User{Email: email, PasswordHash: "irrelevant"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user.ID
}

func createTestCategory(t *testing.T, db *gorm.DB, userID uint, name string) uint {
	t.Helper()
	category := domain.Category{UserID: userID, Name: name, Color: DefaultColor}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category %s: %v", name, err)
	}
	return category.ID
}

func createTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, txType string, amount float64, date time.Time) uint {
	t.Helper()
	transaction := domain.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Description: "test transaction",
		Amount:      amount,
		Type:        txType,
		Date:        date.UTC(),
	}
	if err := db.Create(&transaction).Error; err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	return transaction.ID
}
