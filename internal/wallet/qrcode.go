package wallet

import (
	"errors" // Error matching
	"time"   // Expiry computation

	"github.com/google/uuid"        // Random component of QR codes
	"github.com/shopspring/decimal" // For precise monetary calculations
	"gorm.io/gorm"                  // GORM ORM library

	"walletapi/internal/domain" // Domain models
)

// GenerateCodeInput carries the optional parameters of a new payment request
type GenerateCodeInput struct {
	Amount         *decimal.Decimal // Optional fixed amount
	Description    *string          // Optional description
	ExpiresInHours *int             // Optional lifetime; nil means the code never expires
}

// GenerateCode creates a payment request with a unique, unguessable code.
// The code combines the payee identity with a random component.
func GenerateCode(db *gorm.DB, user *domain.User, in GenerateCodeInput) (*domain.QRCode, error) {
	if in.Amount != nil && !in.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	var expiresAt *time.Time
	if in.ExpiresInHours != nil && *in.ExpiresInHours > 0 {
		t := time.Now().Add(time.Duration(*in.ExpiresInHours) * time.Hour)
		expiresAt = &t
	}
	code := &domain.QRCode{
		UserID:      user.ID,                             // The payee
		Code:        user.Email + ":" + uuid.NewString(), // Identity plus random component
		Amount:      in.Amount,                           // Optional fixed amount
		Description: in.Description,                      // Optional description
		IsActive:    true,                                // Redeemable until deactivated
		ExpiresAt:   expiresAt,                           // Nil means never expires
	}
	if err := db.Create(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}

// ListCodes returns the user's payment requests, newest first
func ListCodes(db *gorm.DB, userID uint) ([]domain.QRCode, error) {
	var codes []domain.QRCode
	err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&codes).Error
	return codes, err
}

// RedeemCode executes the transfer a payment request stands for: the payer is
// debited and the request's owner credited, atomically. Redemption does not
// deactivate the code; a non-expiring code can be redeemed again.
func RedeemCode(db *gorm.DB, payer *domain.User, currency, code string, amountOverride *decimal.Decimal) (*domain.Transaction, error) {
	var request domain.QRCode // Look the code up among active requests
	if err := db.Where("code = ? AND is_active = ?", code, true).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	if request.IsExpired() {
		return nil, ErrCodeExpired // Expiry wins regardless of is_active
	}
	// The scan may override the stored amount; one of the two must be present
	amount := request.Amount
	if amountOverride != nil {
		amount = amountOverride
	}
	if amount == nil {
		return nil, ErrAmountRequired
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if request.UserID == payer.ID {
		return nil, ErrSelfTransfer // No paying your own request
	}
	var owner domain.User // The payee behind the request
	if err := db.First(&owner, request.UserID).Error; err != nil {
		return nil, err
	}
	payerDesc := "Payment via QR code"
	if request.Description != nil && *request.Description != "" {
		payerDesc = *request.Description
	}
	return transferFunds(db, payer, &owner, currency, *amount, nil,
		payerDesc, "Received from "+payer.Email+" via QR code")
}
