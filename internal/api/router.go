package api

import (
	"finance_tracker/internal/middleware"
	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewRouter builds the gin engine with all application routes. rdb may be
// nil, which disables response caching
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string) *gin.Engine {
	r := gin.Default()

	categories := service.NewCategoryService(db)
	transactions := service.NewTransactionService(db)

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterHandler(db, jwtSecret))
	auth.POST("/login", LoginHandler(db, jwtSecret))

	// Category routes (protected by JWT)
	categoryGroup := r.Group("/api/categories")
	categoryGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	categoryGroup.GET("", ListCategoriesHandler(categories, rdb))
	categoryGroup.GET("/:id", GetCategoryHandler(categories))
	categoryGroup.POST("", CreateCategoryHandler(categories, rdb))
	categoryGroup.PUT("/:id", UpdateCategoryHandler(categories, rdb))
	categoryGroup.DELETE("/:id", DeleteCategoryHandler(categories, rdb))

	// Transaction routes (protected by JWT)
	transactionGroup := r.Group("/api/transactions")
	transactionGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	transactionGroup.GET("", ListTransactionsHandler(transactions))
	transactionGroup.GET("/summary", GetSummaryHandler(transactions, rdb))
	transactionGroup.GET("/monthly-flow", GetMonthlyFlowHandler(transactions, rdb))
	transactionGroup.GET("/:id", GetTransactionHandler(transactions))
	transactionGroup.POST("", CreateTransactionHandler(transactions, rdb))
	transactionGroup.PUT("/:id", UpdateTransactionHandler(transactions, rdb))
	transactionGroup.DELETE("/:id", DeleteTransactionHandler(transactions, rdb))

	return r
}
