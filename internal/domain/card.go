package domain

import "time"

// Card types
const (
	CardTypeCredit = "credit" // Credit card
	CardTypeDebit  = "debit"  // Debit card
	CardTypeBank   = "bank"   // Bank account
)

// Card Model, a linked bank account or credit/debit card. At most one card
// per user is primary; ExpiryDate is an optional MM/YYYY string.
type Card struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	CardNumber     string    `gorm:"size:19;not null" json:"card_number"`
	CardType       string    `gorm:"size:10;not null" json:"card_type"`
	CardHolderName string    `gorm:"size:200;not null" json:"card_holder_name"`
	ExpiryDate     *string   `gorm:"size:7" json:"expiry_date"`
	BankName       string    `gorm:"size:100;not null" json:"bank_name"`
	IsPrimary      bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
}
