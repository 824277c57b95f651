package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/service"
	"finance_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TransactionRequest carries the mutable transaction fields for create and
// update
type TransactionRequest struct {
	Description string    `json:"description" binding:"required,min=2,max=200"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Type        string    `json:"type" binding:"required,oneof=income expense"`
	Date        time.Time `json:"date" binding:"required"`
	Notes       string    `json:"notes" binding:"max=1000"`
	CategoryID  uint      `json:"categoryId" binding:"required"`
}

// CategoryRef is the category embedded in a transaction response
type CategoryRef struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TransactionResponse is the public view of a transaction
type TransactionResponse struct {
	ID          uint        `json:"id"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Type        string      `json:"type"`
	Date        time.Time   `json:"date"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	CategoryID  uint        `json:"categoryId"`
	Category    CategoryRef `json:"category"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CategoryID:  t.CategoryID,
		Category: CategoryRef{
			ID:          t.Category.ID,
			Name:        t.Category.Name,
			Description: t.Category.Description,
			Color:       t.Category.Color,
			CreatedAt:   t.Category.CreatedAt,
			UpdatedAt:   t.Category.UpdatedAt,
		},
	}
}

// ListTransactionsHandler returns one page of the user's transactions,
// newest date first
func ListTransactionsHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page := 1      // Default page
		pageSize := 10 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if ps := c.Query("pageSize"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		transactions, total, err := svc.List(userID, page, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		items := make([]TransactionResponse, len(transactions))
		for i := range transactions {
			items[i] = toTransactionResponse(&transactions[i])
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		c.JSON(http.StatusOK, gin.H{
			"transactions": items,
			"page":         page,
			"pageSize":     pageSize,
			"total":        total,
			"totalPages":   totalPages,
		})
	}
}

// GetTransactionHandler returns one transaction with its category
func GetTransactionHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		transaction, err := svc.Get(userID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
			return
		}
		c.JSON(http.StatusOK, toTransactionResponse(transaction))
	}
}

// CreateTransactionHandler validates the category reference and stores a new
// transaction
func CreateTransactionHandler(svc *service.TransactionService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		transaction, err := svc.Create(userID, service.TransactionInput{
			Description: req.Description,
			Amount:      req.Amount,
			Type:        req.Type,
			Date:        req.Date,
			Notes:       req.Notes,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotOwned) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"transaction_id": transaction.ID,
			"type":           transaction.Type,
			"amount":         transaction.Amount,
		}).Info("Transaction created")
		invalidateReportCaches(context.Background(), rdb, userID, transaction.Date.Year())
		c.JSON(http.StatusCreated, toTransactionResponse(transaction))
	}
}

// UpdateTransactionHandler replaces the mutable fields of a transaction; the
// response reflects the new category when the reference changed
func UpdateTransactionHandler(svc *service.TransactionService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		var req TransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		transaction, err := svc.Update(userID, id, service.TransactionInput{
			Description: req.Description,
			Amount:      req.Amount,
			Type:        req.Type,
			Date:        req.Date,
			Notes:       req.Notes,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			case errors.Is(err, service.ErrCategoryNotOwned):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			}
			return
		}
		// The transaction may have moved between years; invalidate both the
		// new year and the current one, anything else ages out with the TTL
		invalidateReportCaches(context.Background(), rdb, userID, transaction.Date.Year(), time.Now().UTC().Year())
		c.JSON(http.StatusOK, toTransactionResponse(transaction))
	}
}

// DeleteTransactionHandler removes a transaction
func DeleteTransactionHandler(svc *service.TransactionService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		// Fetch first so the cache invalidation knows the affected year
		transaction, err := svc.Get(userID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
			return
		}
		if err := svc.Delete(userID, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"transaction_id": id,
		}).Info("Transaction deleted")
		invalidateReportCaches(context.Background(), rdb, userID, transaction.Date.Year())
		c.Status(http.StatusNoContent)
	}
}

// GetSummaryHandler returns the aggregate totals over all of the user's
// transactions
func GetSummaryHandler(svc *service.TransactionService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()
		var cached service.Summary
		if found, err := utils.GetCache(ctx, rdb, summaryKey(userID), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		summary, err := svc.GetSummary(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
			return
		}
		_ = utils.SetCache(ctx, rdb, summaryKey(userID), summary, cacheTTL)
		c.JSON(http.StatusOK, summary)
	}
}

// GetMonthlyFlowHandler returns the per-month income/expense/balance
// breakdown for one calendar year, defaulting to the current one
func GetMonthlyFlowHandler(svc *service.TransactionService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		year := time.Now().UTC().Year()
		if y := c.Query("year"); y != "" {
			v, err := strconv.Atoi(y)
			if err != nil || v < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
				return
			}
			year = v
		}
		ctx := context.Background()
		var cached []service.MonthlyFlow
		if found, err := utils.GetCache(ctx, rdb, monthlyFlowKey(userID, year), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		flows, err := svc.GetMonthlyFlow(userID, year)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly flow"})
			return
		}
		_ = utils.SetCache(ctx, rdb, monthlyFlowKey(userID, year), flows, cacheTTL)
		c.JSON(http.StatusOK, flows)
	}
}
