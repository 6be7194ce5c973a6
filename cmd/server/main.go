package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"walletapi/internal/api"        // Custom package for API handlers
	"walletapi/internal/config"     // Custom package for configuration
	"walletapi/internal/middleware" // Custom package for middleware
	"walletapi/internal/token"      // Token service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal JSON configuration
	"github.com/sirupsen/logrus"    // Logrus for structured logging
	"gorm.io/driver/mysql"          // MySQL driver for GORM
	"gorm.io/gorm"                  // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Monetary amounts serialize as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Token service built from explicit configuration
	tokens := token.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", api.RegisterHandler(db, tokens, cfg.Currency)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, tokens))                     // Login endpoint
	authGroup.POST("/refresh", api.RefreshHandler(db, tokens))                 // Token refresh endpoint
	authGroup.GET("/me", middleware.AuthMiddleware(db, tokens), api.MeHandler())

	// Wallet routes (protected by bearer access tokens)
	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.AuthMiddleware(db, tokens))
	walletGroup.GET("/wallet", api.GetWalletHandler(db, redisClient, cfg.Currency)) // Wallet endpoint

	walletGroup.GET("/cards", api.ListCardsHandler(db))         // List cards endpoint
	walletGroup.POST("/cards", api.CreateCardHandler(db))       // Add card endpoint
	walletGroup.GET("/cards/:id", api.GetCardHandler(db))       // Card detail endpoint
	walletGroup.PUT("/cards/:id", api.UpdateCardHandler(db))    // Card update endpoint
	walletGroup.DELETE("/cards/:id", api.DeleteCardHandler(db)) // Card delete endpoint

	walletGroup.GET("/transactions", api.ListTransactionsHandler(db, redisClient))                 // Transaction history endpoint
	walletGroup.GET("/transactions/:id", api.GetTransactionHandler(db))                            // Transaction detail endpoint
	walletGroup.POST("/transactions", api.CreateTransactionHandler(db, redisClient, cfg.Currency)) // Create transaction endpoint
	walletGroup.POST("/send-money", api.SendMoneyHandler(db, redisClient, cfg.Currency))           // Peer transfer endpoint

	walletGroup.POST("/qr-codes/generate", api.GenerateQRCodeHandler(db))                    // Payment request endpoint
	walletGroup.GET("/qr-codes", api.ListQRCodesHandler(db))                                 // Payment request listing endpoint
	walletGroup.POST("/qr-codes/scan", api.ScanQRCodeHandler(db, redisClient, cfg.Currency)) // Redemption endpoint

	walletGroup.GET("/stats", api.StatsHandler(db, redisClient))          // Statistics endpoint
	walletGroup.GET("/dashboard", api.DashboardHandler(db, cfg.Currency)) // Dashboard endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
