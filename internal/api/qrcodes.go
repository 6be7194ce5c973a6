package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Response timestamps

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // For precise monetary amounts
	"gorm.io/gorm"                  // GORM ORM library

	"walletapi/internal/domain"     // Domain models
	"walletapi/internal/middleware" // Auth context helpers
	"walletapi/internal/utils"      // Cache and QR image helpers
	"walletapi/internal/wallet"     // Money core
)

// QRCodeCreateRequest is the payload for generating a payment request
type QRCodeCreateRequest struct {
	Amount         *decimal.Decimal `json:"amount"`           // Optional fixed amount
	Description    *string          `json:"description"`      // Optional description
	ExpiresInHours *int             `json:"expires_in_hours"` // Optional lifetime in hours
}

// QRCodeScanRequest is the payload for redeeming a scanned code
type QRCodeScanRequest struct {
	QRCode string           `json:"qr_code" binding:"required"` // The scanned code string
	Amount *decimal.Decimal `json:"amount"`                     // Optional amount override
}

// QRCodeResponse is a payment request plus its rendered image
type QRCodeResponse struct {
	ID          uint             `json:"id"`            // Record ID
	QRCode      string           `json:"qr_code"`       // Opaque code string
	QRCodeImage string           `json:"qr_code_image"` // Base64 PNG data URI
	Amount      *decimal.Decimal `json:"amount"`        // Optional fixed amount
	Description *string          `json:"description"`   // Optional description
	IsActive    bool             `json:"is_active"`     // Redeemable flag
	ExpiresAt   *time.Time       `json:"expires_at"`    // Nil means never expires
	CreatedAt   time.Time        `json:"created_at"`    // Timestamp of creation
}

// qrResponse renders the code image and assembles the response record
func qrResponse(code *domain.QRCode) (QRCodeResponse, error) {
	image, err := utils.QRImageDataURI(code.Code)
	if err != nil {
		return QRCodeResponse{}, err
	}
	return QRCodeResponse{
		ID:          code.ID,          // Record ID
		QRCode:      code.Code,        // Opaque code string
		QRCodeImage: image,            // Rendered PNG
		Amount:      code.Amount,      // Optional fixed amount
		Description: code.Description, // Optional description
		IsActive:    code.IsActive,    // Redeemable flag
		ExpiresAt:   code.ExpiresAt,   // Optional expiry
		CreatedAt:   code.CreatedAt,   // Timestamp of creation
	}, nil
}

// GenerateQRCodeHandler creates a payment request for receiving money
func GenerateQRCodeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req QRCodeCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		code, err := wallet.GenerateCode(db, &user, wallet.GenerateCodeInput{
			Amount:         req.Amount,         // Optional fixed amount
			Description:    req.Description,    // Optional description
			ExpiresInHours: req.ExpiresInHours, // Optional lifetime
		})
		if err != nil {
			writeWalletError(c, err, "Error generating QR code")
			return
		}
		resp, err := qrResponse(code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating QR code"})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// ListQRCodesHandler returns the user's payment requests with rendered images
func ListQRCodesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		codes, err := wallet.ListCodes(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch QR codes"})
			return
		}
		resp := make([]QRCodeResponse, 0, len(codes))
		for i := range codes {
			r, err := qrResponse(&codes[i])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch QR codes"})
				return
			}
			resp = append(resp, r)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ScanQRCodeHandler redeems a scanned payment request, transferring funds from
// the caller to the code's owner
func ScanQRCodeHandler(db *gorm.DB, rdb *redis.Client, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req QRCodeScanRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		txn, err := wallet.RedeemCode(db, &user, currency, req.QRCode, req.Amount)
		if err != nil {
			writeWalletError(c, err, "Error scanning QR code")
			return
		}
		// Both parties' cached reads are stale now
		ctx := context.Background()
		utils.InvalidateUserCaches(ctx, rdb, user.ID)
		var owner domain.QRCode
		if err := db.Select("user_id").Where("code = ?", req.QRCode).First(&owner).Error; err == nil {
			utils.InvalidateUserCaches(ctx, rdb, owner.UserID)
		}
		c.JSON(http.StatusOK, txn)
	}
}
