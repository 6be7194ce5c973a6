package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// QRCode Model, a payment request that, when scanned, triggers a transfer to
// its owner (the payee behind UserID). Only active, unexpired codes can be
// redeemed; a nil ExpiresAt means the code never expires. IsActive carries no
// column default, so creators set it explicitly and a false value persists as
// written.
type QRCode struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserID      uint             `gorm:"index;not null" json:"user_id"`
	Code        string           `gorm:"size:255;uniqueIndex;not null" json:"qr_code"`
	Amount      *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	Description *string          `gorm:"size:255" json:"description"`
	IsActive    bool             `json:"is_active"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TableName avoids the default snake-casing of the QRCode initialism
func (QRCode) TableName() string { return "qr_codes" }

// IsExpired reports whether the code has an expiry in the past
func (q *QRCode) IsExpired() bool {
	return q.ExpiresAt != nil && time.Now().After(*q.ExpiresAt)
}
