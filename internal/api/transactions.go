package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // For precise monetary amounts
	"gorm.io/gorm"                  // GORM ORM library

	"walletapi/internal/domain"     // Domain models
	"walletapi/internal/middleware" // Auth context helpers
	"walletapi/internal/utils"      // Cache helpers
	"walletapi/internal/wallet"     // Money core
)

// TransactionCreateRequest is the payload for recording an income or expense
type TransactionCreateRequest struct {
	TransactionType string          `json:"transaction_type" binding:"required"` // income, expense, transfer_in, transfer_out
	Amount          decimal.Decimal `json:"amount" binding:"required"`           // Must be positive
	Description     string          `json:"description" binding:"required"`      // Free-form description
	Category        *string         `json:"category"`                            // Optional spending category
	RecipientEmail  *string         `json:"recipient_email"`                     // Optional denormalized counterparty
}

// SendMoneyRequest is the payload of a peer transfer
type SendMoneyRequest struct {
	RecipientEmail string          `json:"recipient_email" binding:"required,email"` // Receiving user
	Amount         decimal.Decimal `json:"amount" binding:"required"`                // Must be positive
	Description    string          `json:"description" binding:"required"`           // Sender-side description
	Category       *string         `json:"category"`                                 // Optional spending category
}

// ListTransactionsHandler returns the user's transactions newest first, with
// ?limit= (default 50) and ?offset= pagination
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		limit := 50 // Default page size
		offset := 0 // Default offset
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
				limit = v // Set limit if valid
			}
		}
		if o := c.Query("offset"); o != "" {
			if v, err := strconv.Atoi(o); err == nil && v >= 0 {
				offset = v // Set offset if valid
			}
		}
		ctx := context.Background()                              // Context for Redis operations
		cacheKey := utils.TxPageCacheKey(user.ID, limit, offset) // Cache key for this page
		var cached []domain.Transaction
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var transactions []domain.Transaction // Fetch the page, newest first
		if err := db.Where("user_id = ?", user.ID).
			Order("created_at desc").Offset(offset).Limit(limit).
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch transactions"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, transactions, cacheTTL) // Cache the page
		c.JSON(http.StatusOK, transactions)
	}
}

// GetTransactionHandler returns one transaction by its external UUID
func GetTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var txn domain.Transaction // Scoped to the caller; no peeking at other users' rows
		if err := db.Where("transaction_id = ? AND user_id = ?", c.Param("id"), user.ID).
			First(&txn).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}

// CreateTransactionHandler records a transaction and applies its balance
// effect atomically
func CreateTransactionHandler(db *gorm.DB, rdb *redis.Client, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req TransactionCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		txn, err := wallet.CreateTransaction(db, &user, currency, wallet.CreateTransactionInput{
			Type:           req.TransactionType, // Transaction type
			Amount:         req.Amount,          // Positive amount
			Description:    req.Description,     // Description
			Category:       req.Category,        // Optional category
			RecipientEmail: req.RecipientEmail,  // Optional counterparty
		})
		if err != nil {
			writeWalletError(c, err, "Error creating transaction")
			return
		}
		utils.InvalidateUserCaches(context.Background(), rdb, user.ID) // Balance changed
		c.JSON(http.StatusCreated, txn)
	}
}

// SendMoneyHandler transfers funds to the user behind recipient_email
func SendMoneyHandler(db *gorm.DB, rdb *redis.Client, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req SendMoneyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		txn, err := wallet.SendMoney(db, &user, currency, wallet.SendMoneyInput{
			RecipientEmail: req.RecipientEmail, // Receiving user
			Amount:         req.Amount,         // Positive amount
			Description:    req.Description,    // Sender-side description
			Category:       req.Category,       // Optional category
		})
		if err != nil {
			writeWalletError(c, err, "Error sending money")
			return
		}
		// Both parties' cached reads are stale now
		ctx := context.Background()
		utils.InvalidateUserCaches(ctx, rdb, user.ID)
		var recipient domain.User
		if err := db.Select("id").Where("email = ?", req.RecipientEmail).First(&recipient).Error; err == nil {
			utils.InvalidateUserCaches(ctx, rdb, recipient.ID)
		}
		c.JSON(http.StatusOK, txn)
	}
}
