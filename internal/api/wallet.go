package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing
	"time"     // Cache TTLs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"walletapi/internal/domain"     // Domain models
	"walletapi/internal/middleware" // Auth context helpers
	"walletapi/internal/utils"      // Cache helpers
	"walletapi/internal/wallet"     // Money core
)

// Cached read responses live this long
const cacheTTL = 60 * time.Second

// GetWalletHandler returns the authenticated user's wallet, creating it with a
// zero balance on first access
func GetWalletHandler(db *gorm.DB, rdb *redis.Client, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		ctx := context.Background()               // Context for Redis operations
		cacheKey := utils.WalletCacheKey(user.ID) // Cache key for wallet
		var cached domain.Wallet
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		w, err := wallet.GetOrCreateWallet(db, user.ID, currency)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wallet"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, w, cacheTTL) // Cache the wallet
		c.JSON(http.StatusOK, w)
	}
}

// StatsHandler returns income/expense statistics over the last ?months=N
// (default 6) approximate months
func StatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		months := 6 // Default window
		if m := c.Query("months"); m != "" {
			if v, err := strconv.Atoi(m); err == nil && v > 0 {
				months = v // Set window if valid
			}
		}
		ctx := context.Background()                      // Context for Redis operations
		cacheKey := utils.StatsCacheKey(user.ID, months) // Cache key for this window
		var cached wallet.Stats
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		stats, err := wallet.GetStatistics(db, user.ID, months)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute statistics"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, stats, cacheTTL) // Cache the result
		c.JSON(http.StatusOK, stats)
	}
}

// DashboardHandler composes the wallet, the ten most recent transactions and
// six-month statistics into one response
func DashboardHandler(db *gorm.DB, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		w, err := wallet.GetOrCreateWallet(db, user.ID, currency)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wallet"})
			return
		}
		var recent []domain.Transaction // Ten most recent movements
		if err := db.Where("user_id = ?", user.ID).
			Order("created_at desc").Limit(10).Find(&recent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch transactions"})
			return
		}
		// Statistics take the user id directly, independent of request state
		stats, err := wallet.GetStatistics(db, user.ID, 6)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute statistics"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"wallet":              w,      // Balance record
			"recent_transactions": recent, // Newest first
			"stats":               stats,  // Six-month window
		})
	}
}
