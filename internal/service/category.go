package service

import (
	"errors"
	"strings"
	"time"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// DefaultColor is used when a category is created without one.
const DefaultColor = "#6366f1"

// CategoryRollup is a category together with its derived aggregates. The
// aggregates are computed at read time and never stored.
type CategoryRollup struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Color            string    `json:"color"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	TransactionCount int64     `json:"transactionCount"`
	TotalAmount      float64   `json:"totalAmount"` // Income +, expense -
}

// CategoryInput carries the mutable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
	Color       string
}

// CategoryService owns all category reads and writes. Every query it builds
// is filtered by the owning user id, so callers cannot reach another user's
// data through it.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService backed by db
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// rollupQuery builds the owner-scoped category query with the derived
// transaction count and signed total joined in
func (s *CategoryService) rollupQuery(userID uint) *gorm.DB {
	return s.db.Model(&domain.Category{}).
		Select("categories.id, categories.name, categories.description, categories.color,"+
			" categories.created_at, categories.updated_at,"+
			" COUNT(transactions.id) AS transaction_count,"+
			" COALESCE(SUM(CASE WHEN transactions.type = ? THEN transactions.amount ELSE -transactions.amount END), 0) AS total_amount",
			domain.TypeIncome).
		Joins("LEFT JOIN transactions ON transactions.category_id = categories.id").
		Where("categories.user_id = ?", userID).
		Group("categories.id")
}

// List returns the user's categories with rollups, ordered by name ascending
func (s *CategoryService) List(userID uint) ([]CategoryRollup, error) {
	rollups := []CategoryRollup{}
	err := s.rollupQuery(userID).Order("categories.name ASC").Scan(&rollups).Error
	if err != nil {
		return nil, err
	}
	return rollups, nil
}

// Get returns a single category with its rollup
func (s *CategoryService) Get(userID, id uint) (*CategoryRollup, error) {
	var rollup CategoryRollup
	res := s.rollupQuery(userID).Where("categories.id = ?", id).Scan(&rollup)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &rollup, nil
}

// Create stores a new category for the user. Rollup fields start at zero
func (s *CategoryService) Create(userID uint, input CategoryInput) (*CategoryRollup, error) {
	color := input.Color
	if color == "" {
		color = DefaultColor
	}
	category := domain.Category{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       color,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &CategoryRollup{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}, nil
}

// Update replaces the mutable fields of a category and returns it with a
// fresh rollup
func (s *CategoryService) Update(userID, id uint, input CategoryInput) (*CategoryRollup, error) {
	var category domain.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	category.Name = input.Name
	category.Description = input.Description
	if input.Color != "" {
		category.Color = input.Color
	}
	if err := s.db.Save(&category).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes a category. It fails with ErrCategoryInUse while any
// transaction still references the category
func (s *CategoryService) Delete(userID, id uint) error {
	var category domain.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	var count int64
	if err := s.db.Model(&domain.Transaction{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.db.Delete(&category).Error
}

// isDuplicateErr recognizes unique-constraint violations across the MySQL
// and SQLite drivers
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
