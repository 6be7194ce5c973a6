package wallet

import (
	"errors" // Sentinel errors

	"github.com/shopspring/decimal" // For precise monetary calculations
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking clauses

	"walletapi/internal/domain" // Domain models
)

// Ledger errors surfaced to the API layer
var (
	ErrInsufficientFunds      = errors.New("insufficient balance")
	ErrNonPositiveAmount      = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrRecipientNotFound      = errors.New("recipient not found")
	ErrSelfTransfer           = errors.New("cannot send money to yourself")
	ErrAmountRequired         = errors.New("amount is required")
	ErrCodeNotFound           = errors.New("qr code not found or inactive")
	ErrCodeExpired            = errors.New("qr code has expired")
)

// GetOrCreateWallet returns the user's wallet, creating one with zero balance
// if absent. The unique index on user_id guarantees a single wallet per user
// even when two first-accesses race; the loser of the race re-reads the row.
func GetOrCreateWallet(db *gorm.DB, userID uint, currency string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := db.Where("user_id = ?", userID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	wallet = domain.Wallet{UserID: userID, Balance: decimal.Zero, Currency: currency}
	if createErr := db.Create(&wallet).Error; createErr != nil {
		// Lost a concurrent create race; the existing row is the wallet
		if err := db.Where("user_id = ?", userID).First(&wallet).Error; err == nil {
			return &wallet, nil
		}
		return nil, createErr
	}
	return &wallet, nil
}

// lockWallet fetches the user's wallet FOR UPDATE inside tx, creating it first
// when missing. Must be called inside a transaction.
func lockWallet(tx *gorm.DB, userID uint, currency string) (*domain.Wallet, error) {
	if _, err := GetOrCreateWallet(tx, userID, currency); err != nil {
		return nil, err
	}
	var wallet domain.Wallet
	// Row lock so two concurrent debits cannot both read a stale balance
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Credit adds amount to the user's wallet balance. Must be called inside a
// transaction; the wallet is created on first use.
func Credit(tx *gorm.DB, userID uint, currency string, amount decimal.Decimal) (*domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	wallet, err := lockWallet(tx, userID, currency)
	if err != nil {
		return nil, err
	}
	wallet.Balance = wallet.Balance.Add(amount)
	if err := tx.Model(wallet).Update("balance", wallet.Balance).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}

// Debit subtracts amount from the user's wallet balance, failing with
// ErrInsufficientFunds without mutating state when the balance is too low.
// Must be called inside a transaction.
func Debit(tx *gorm.DB, userID uint, currency string, amount decimal.Decimal) (*domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	wallet, err := lockWallet(tx, userID, currency)
	if err != nil {
		return nil, err
	}
	// The balance may never go negative
	if wallet.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}
	wallet.Balance = wallet.Balance.Sub(amount)
	if err := tx.Model(wallet).Update("balance", wallet.Balance).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}
