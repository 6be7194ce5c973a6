package wallet

import (
	"errors" // Error matching
	"time"   // Timestamps for logging

	"github.com/google/uuid"        // External transaction IDs
	"github.com/shopspring/decimal" // For precise monetary calculations
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library

	"walletapi/internal/domain" // Domain models
)

// CreateTransactionInput carries the explicit fields a caller may set on a new
// transaction. Nothing else from the request payload reaches the record.
type CreateTransactionInput struct {
	Type           string          // income, expense, transfer_in, transfer_out
	Amount         decimal.Decimal // Must be positive
	Description    string          // Free-form description
	Category       *string         // Optional spending category
	RecipientEmail *string         // Optional denormalized counterparty
}

// validTransactionType reports whether t is one of the known transaction types
func validTransactionType(t string) bool {
	switch t {
	case domain.TransactionTypeIncome, domain.TransactionTypeExpense,
		domain.TransactionTypeTransferIn, domain.TransactionTypeTransferOut:
		return true
	}
	return false
}

// CreateTransaction inserts a transaction row and applies its balance effect
// as one atomic unit. Income and transfer_in credit the wallet; expense and
// transfer_out debit it, rolling the insert back on insufficient funds.
func CreateTransaction(db *gorm.DB, user *domain.User, currency string, in CreateTransactionInput) (*domain.Transaction, error) {
	if !validTransactionType(in.Type) {
		return nil, ErrInvalidTransactionType
	}
	if !in.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),                  // Fresh external ID
		UserID:          user.ID,                           // Owning user
		TransactionType: in.Type,                           // Transaction type
		Amount:          in.Amount,                         // Positive amount
		Description:     in.Description,                    // Description
		Category:        in.Category,                       // Optional category
		Status:          domain.TransactionStatusCompleted, // Default status
		RecipientEmail:  in.RecipientEmail,                 // Optional counterparty
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		// Insert the transaction record
		if err := tx.Create(txn).Error; err != nil {
			return err // Return error to rollback
		}
		// Apply the balance effect
		if txn.IsCredit() {
			_, err := Credit(tx, user.ID, currency, in.Amount)
			return err
		}
		_, err := Debit(tx, user.ID, currency, in.Amount)
		return err // ErrInsufficientFunds rolls the insert back
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientFunds) {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Owning user
				"type":    in.Type,     // Transaction type
				"amount":  in.Amount,   // Amount
				"error":   err.Error(), // Error message
			}).Error("Transaction failed")
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":        user.ID,                         // Owning user
		"transaction_id": txn.TransactionID,               // External ID
		"type":           in.Type,                         // Transaction type
		"amount":         in.Amount,                       // Amount
		"timestamp":      time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Transaction recorded")
	return txn, nil
}

// SendMoneyInput carries the fields of a peer transfer request
type SendMoneyInput struct {
	RecipientEmail string          // Must resolve to an existing user
	Amount         decimal.Decimal // Must be positive
	Description    string          // Sender-side description
	Category       *string         // Optional spending category
}

// SendMoney moves funds from the sender to the user behind RecipientEmail.
// The debit, both transaction rows and the credit commit together or not at
// all. Two independent rows are created, one per party.
func SendMoney(db *gorm.DB, sender *domain.User, currency string, in SendMoneyInput) (*domain.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	var recipient domain.User // Resolve the counterparty
	if err := db.Where("email = ?", in.RecipientEmail).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == sender.ID {
		return nil, ErrSelfTransfer
	}
	senderTxn, err := transferFunds(db, sender, &recipient, currency, in.Amount, in.Category,
		in.Description, "Received from "+sender.Email)
	if err != nil {
		if !errors.Is(err, ErrInsufficientFunds) {
			logrus.WithFields(logrus.Fields{
				"from_user_id": sender.ID,    // Sender user ID
				"to_user_id":   recipient.ID, // Recipient user ID
				"amount":       in.Amount,    // Transfer amount
				"error":        err.Error(),  // Error message
			}).Error("Transfer failed")
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"from_user_id": sender.ID,                       // Sender user ID
		"to_user_id":   recipient.ID,                    // Recipient user ID
		"amount":       in.Amount,                       // Transfer amount
		"type":         "transfer",                      // Movement type
		"timestamp":    time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Transfer transaction")
	return senderTxn, nil
}

// transferFunds runs the four-way transfer mutation inside one transaction:
// debit the sender, record transfer_out and transfer_in rows, credit the
// recipient (creating their wallet if needed). Returns the sender-side row.
func transferFunds(db *gorm.DB, sender, recipient *domain.User, currency string,
	amount decimal.Decimal, category *string, senderDesc, recipientDesc string) (*domain.Transaction, error) {
	senderTxn := &domain.Transaction{
		TransactionID:   uuid.NewString(),                  // Fresh external ID
		UserID:          sender.ID,                         // Debited party
		TransactionType: domain.TransactionTypeTransferOut, // Debit side
		Amount:          amount,                            // Transfer amount
		Description:     senderDesc,                        // Sender-side description
		Category:        category,                          // Optional category
		Status:          domain.TransactionStatusCompleted, // Default status
		RecipientEmail:  &recipient.Email,                  // Denormalized counterparty
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		// Debit the sender first; insufficient funds aborts everything
		if _, err := Debit(tx, sender.ID, currency, amount); err != nil {
			return err
		}
		// Sender-side record
		if err := tx.Create(senderTxn).Error; err != nil {
			return err
		}
		// Recipient-side record
		recipientTxn := &domain.Transaction{
			TransactionID:   uuid.NewString(),                  // Fresh external ID
			UserID:          recipient.ID,                      // Credited party
			TransactionType: domain.TransactionTypeTransferIn,  // Credit side
			Amount:          amount,                            // Transfer amount
			Description:     recipientDesc,                     // Recipient-side description
			Category:        category,                          // Optional category
			Status:          domain.TransactionStatusCompleted, // Default status
			SenderEmail:     &sender.Email,                     // Denormalized counterparty
		}
		if err := tx.Create(recipientTxn).Error; err != nil {
			return err
		}
		// Credit the recipient, creating their wallet on first transfer
		_, err := Credit(tx, recipient.ID, currency, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return senderTxn, nil
}
