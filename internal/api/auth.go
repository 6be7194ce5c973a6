package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library

	"walletapi/internal/domain"     // Domain models
	"walletapi/internal/middleware" // Auth context helpers
	"walletapi/internal/token"      // Token service
	"walletapi/internal/wallet"     // Wallet creation at registration
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`    // Login email, unique
	Password    string  `json:"password" binding:"required,min=8"` // At least 8 characters
	FirstName   string  `json:"first_name" binding:"required"`     // First name
	LastName    string  `json:"last_name" binding:"required"`      // Last name
	PhoneNumber *string `json:"phone_number"`                      // Optional phone number
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Login email
	Password string `json:"password" binding:"required"`    // Password in clear, compared against the hash
}

// RefreshRequest carries the refresh token being exchanged
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"` // Refresh token
}

// TokenResponse is the token pair returned by register, login and refresh
type TokenResponse struct {
	Access  string `json:"access"`  // Access token
	Refresh string `json:"refresh"` // Refresh token
}

// RegisterHandler creates a user with a hashed password plus their wallet, and
// returns a fresh token pair
func RegisterHandler(db *gorm.DB, tokens *token.Service, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		email := strings.ToLower(req.Email) // Emails compare case-insensitively
		// Uniqueness check; the DB unique constraint is the backstop
		var count int64
		if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating user"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email already exists"})
			return
		}
		// Hash the password; it is never stored in clear
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		user := domain.User{
			Email:        email,           // Login email
			PasswordHash: string(hash),    // Bcrypt hash
			FirstName:    req.FirstName,   // First name
			LastName:     req.LastName,    // Last name
			PhoneNumber:  req.PhoneNumber, // Optional phone number
			IsActive:     true,            // Accounts start active
		}
		// User and wallet are created in one unit; no hidden save hooks
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err // Duplicate email races land here
			}
			_, err := wallet.GetOrCreateWallet(tx, user.ID, currency)
			return err
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email already exists"})
			return
		}
		access, refresh, err := tokens.IssuePair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // New user ID
			"email":   email,   // Login email
		}).Info("User registered")
		c.JSON(http.StatusCreated, TokenResponse{Access: access, Refresh: refresh})
	}
}

// LoginHandler authenticates by email and password and returns a token pair.
// Absent account and wrong password fail identically so callers cannot probe
// which emails are registered.
func LoginHandler(db *gorm.DB, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User account is disabled"})
			return
		}
		access, refresh, err := tokens.IssuePair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Access: access, Refresh: refresh})
	}
}

// RefreshHandler exchanges a valid refresh token for a brand-new pair. The old
// refresh token is not invalidated; expiry is the only termination mechanism.
func RefreshHandler(db *gorm.DB, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		claims, err := tokens.Verify(req.Refresh, token.KindRefresh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired refresh token"})
			return
		}
		var user domain.User // Resolve the subject
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found or inactive"})
			return
		}
		access, refresh, err := tokens.IssuePair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Access: access, Refresh: refresh})
	}
}

// MeHandler returns the authenticated user's record
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
