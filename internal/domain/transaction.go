package domain

import "time"

// Transaction types. Amounts are stored positive; the type decides the sign
// during aggregation.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey"` // Primary key
	UserID      uint      `gorm:"index"`      // Foreign key to User
	CategoryID  uint      `gorm:"index"`      // Foreign key to Category
	Description string    `gorm:"not null"`   // What the money was for
	Amount      float64   `gorm:"not null"`   // Always positive
	Type        string    `gorm:"not null"`   // income or expense
	Date        time.Time `gorm:"index"`      // When it happened, stored in UTC
	Notes       string    // Optional free-form notes
	CreatedAt   time.Time // Timestamp of creation
	UpdatedAt   time.Time // Timestamp of last update

	Category Category // Owning category, same user
}
