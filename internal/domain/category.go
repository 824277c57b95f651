package domain

import "time"

// Category Model
type Category struct {
	ID          uint      `gorm:"primaryKey"`                                  // Primary key
	UserID      uint      `gorm:"index;uniqueIndex:idx_category_user_name"`    // Foreign key to User
	Name        string    `gorm:"not null;uniqueIndex:idx_category_user_name"` // Category name, unique per user
	Description string    // Optional description
	Color       string    `gorm:"not null"` // Hex color, #RGB or #RRGGBB
	CreatedAt   time.Time // Timestamp of creation
	UpdatedAt   time.Time // Timestamp of last update
}
