package service

import (
	"errors"
	"time"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// TransactionInput carries the mutable fields of a transaction.
type TransactionInput struct {
	Description string
	Amount      float64
	Type        string
	Date        time.Time
	Notes       string
	CategoryID  uint
}

// TransactionService owns all transaction reads and writes, scoped to the
// owning user the same way CategoryService is.
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a TransactionService backed by db
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// scoped returns the base transaction query filtered to the user's records
func (s *TransactionService) scoped(userID uint) *gorm.DB {
	return s.db.Model(&domain.Transaction{}).Where("user_id = ?", userID)
}

// List returns one page of the user's transactions, newest date first, ties
// broken by creation time descending. The total count covers all pages
func (s *TransactionService) List(userID uint, page, pageSize int) ([]domain.Transaction, int64, error) {
	var total int64
	if err := s.scoped(userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	transactions := []domain.Transaction{}
	err := s.scoped(userID).
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// Get returns a single transaction with its category loaded
func (s *TransactionService) Get(userID, id uint) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := s.scoped(userID).Preload("Category").Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// Create validates the category reference and stores a new transaction.
// Nothing is written when the category is missing or owned by another user
func (s *TransactionService) Create(userID uint, input TransactionInput) (*domain.Transaction, error) {
	category, err := s.ownedCategory(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	transaction := domain.Transaction{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        input.Date.UTC(), // Normalize so grouping is timezone-consistent
		Notes:       input.Notes,
	}
	if err := s.db.Create(&transaction).Error; err != nil {
		return nil, err
	}
	transaction.Category = *category
	return &transaction, nil
}

// Update replaces the mutable fields of a transaction, including its
// category reference. The returned record carries the new category
func (s *TransactionService) Update(userID, id uint, input TransactionInput) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := s.scoped(userID).Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	category, err := s.ownedCategory(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	transaction.Description = input.Description
	transaction.Amount = input.Amount
	transaction.Type = input.Type
	transaction.Date = input.Date.UTC()
	transaction.Notes = input.Notes
	transaction.CategoryID = input.CategoryID
	if err := s.db.Save(&transaction).Error; err != nil {
		return nil, err
	}
	transaction.Category = *category
	return &transaction, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(userID, id uint) error {
	var transaction domain.Transaction
	err := s.scoped(userID).Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Delete(&transaction).Error
}

// ownedCategory fetches the category when it belongs to the user, and
// reports ErrCategoryNotOwned otherwise
func (s *TransactionService) ownedCategory(userID, categoryID uint) (*domain.Category, error) {
	var category domain.Category
	err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotOwned
		}
		return nil, err
	}
	return &category, nil
}
