package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Transaction types
const (
	TransactionTypeIncome      = "income"       // Money coming in
	TransactionTypeExpense     = "expense"      // Money going out
	TransactionTypeTransferIn  = "transfer_in"  // Credit side of a peer transfer
	TransactionTypeTransferOut = "transfer_out" // Debit side of a peer transfer
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Transaction Model, an immutable record of one balance-affecting event.
// TransactionID is the external UUID callers address the record by. Amount is
// always positive; TransactionType encodes the direction. RecipientEmail and
// SenderEmail are denormalized counterparties, not foreign keys.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	TransactionID   string          `gorm:"size:36;uniqueIndex;not null" json:"transaction_id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	TransactionType string          `gorm:"size:15;not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string          `gorm:"size:255;not null" json:"description"`
	Category        *string         `gorm:"size:50" json:"category"`
	Status          string          `gorm:"size:15;not null;default:completed" json:"status"`
	RecipientEmail  *string         `json:"recipient_email"`
	SenderEmail     *string         `json:"sender_email"`
	CreatedAt       time.Time       `json:"created_at"`
}

// IsCredit reports whether the transaction increases the owner's balance
func (t *Transaction) IsCredit() bool {
	return t.TransactionType == TransactionTypeIncome || t.TransactionType == TransactionTypeTransferIn
}
