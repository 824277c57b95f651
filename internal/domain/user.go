package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey"`       // Primary key
	Email        string    `gorm:"unique;not null"`  // Unique login email
	PasswordHash string    `gorm:"not null"`         // Hashed password
	FirstName    string    // Given name
	LastName     string    // Family name
	CreatedAt    time.Time // Timestamp of creation
	UpdatedAt    time.Time // Timestamp of last update

	// Owned records; removing a user removes everything they recorded
	Categories   []Category    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Transactions []Transaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
