package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"walletapi/internal/domain"
)

// fund credits the user's wallet outside the code under test
func fund(t *testing.T, db *gorm.DB, userID uint, amount int64) {
	t.Helper()
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := Credit(tx, userID, testCurrency, decimal.NewFromInt(amount))
		return err
	}))
}

func balanceOf(t *testing.T, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()
	w, err := GetOrCreateWallet(db, userID, testCurrency)
	require.NoError(t, err)
	return w.Balance
}

func TestCreateTransaction_IncomeCreditsWallet(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "a@x.com")

	txn, err := CreateTransaction(db, user, testCurrency, CreateTransactionInput{
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(100),
		Description: "Salary",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, txn.TransactionID)
	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	assert.True(t, balanceOf(t, db, user.ID).Equal(decimal.NewFromInt(100)))
}

func TestCreateTransaction_ExpenseOverBalanceRollsBack(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "a@x.com")

	_, err := CreateTransaction(db, user, testCurrency, CreateTransactionInput{
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(100),
		Description: "Salary",
	})
	require.NoError(t, err)

	_, err = CreateTransaction(db, user, testCurrency, CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(150),
		Description: "Rent",
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// The failed expense left no partial state behind
	assert.True(t, balanceOf(t, db, user.ID).Equal(decimal.NewFromInt(100)))
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).
		Where("user_id = ? AND transaction_type = ?", user.ID, domain.TransactionTypeExpense).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateTransaction_Validation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "a@x.com")

	tests := []struct {
		name      string
		input     CreateTransactionInput
		expectErr error
	}{
		{
			name:      "unknown type",
			input:     CreateTransactionInput{Type: "donation", Amount: decimal.NewFromInt(10), Description: "x"},
			expectErr: ErrInvalidTransactionType,
		},
		{
			name:      "zero amount",
			input:     CreateTransactionInput{Type: domain.TransactionTypeIncome, Amount: decimal.Zero, Description: "x"},
			expectErr: ErrNonPositiveAmount,
		},
		{
			name:      "negative amount",
			input:     CreateTransactionInput{Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(-10), Description: "x"},
			expectErr: ErrNonPositiveAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTransaction(db, user, testCurrency, tt.input)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestSendMoney_MovesFundsAndRecordsBothSides(t *testing.T) {
	db := newTestDB(t)
	sender := newTestUser(t, db, "sender@x.com")
	recipient := newTestUser(t, db, "recipient@x.com")
	fund(t, db, sender.ID, 200)

	txn, err := SendMoney(db, sender, testCurrency, SendMoneyInput{
		RecipientEmail: recipient.Email,
		Amount:         decimal.NewFromInt(75),
		Description:    "Lunch",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeTransferOut, txn.TransactionType)
	require.NotNil(t, txn.RecipientEmail)
	assert.Equal(t, recipient.Email, *txn.RecipientEmail)

	// Sender down, recipient up by the same amount
	assert.True(t, balanceOf(t, db, sender.ID).Equal(decimal.NewFromInt(125)))
	assert.True(t, balanceOf(t, db, recipient.ID).Equal(decimal.NewFromInt(75)))

	// Exactly one transfer_out for the sender and one transfer_in for the recipient
	var out, in []domain.Transaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?", sender.ID, domain.TransactionTypeTransferOut).Find(&out).Error)
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?", recipient.ID, domain.TransactionTypeTransferIn).Find(&in).Error)
	require.Len(t, out, 1)
	require.Len(t, in, 1)
	assert.True(t, out[0].Amount.Equal(in[0].Amount))
	require.NotNil(t, in[0].SenderEmail)
	assert.Equal(t, sender.Email, *in[0].SenderEmail)
	assert.Equal(t, "Received from "+sender.Email, in[0].Description)
}

func TestSendMoney_RecipientWalletCreatedOnFirstTransfer(t *testing.T) {
	db := newTestDB(t)
	sender := newTestUser(t, db, "sender@x.com")
	recipient := newTestUser(t, db, "recipient@x.com")
	fund(t, db, sender.ID, 50)

	// The recipient has never touched their wallet
	var count int64
	require.NoError(t, db.Model(&domain.Wallet{}).Where("user_id = ?", recipient.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)

	_, err := SendMoney(db, sender, testCurrency, SendMoneyInput{
		RecipientEmail: recipient.Email,
		Amount:         decimal.NewFromInt(50),
		Description:    "First",
	})
	require.NoError(t, err)
	assert.True(t, balanceOf(t, db, recipient.ID).Equal(decimal.NewFromInt(50)))
}

func TestSendMoney_Failures(t *testing.T) {
	db := newTestDB(t)
	sender := newTestUser(t, db, "sender@x.com")
	newTestUser(t, db, "recipient@x.com")
	fund(t, db, sender.ID, 10)

	tests := []struct {
		name      string
		input     SendMoneyInput
		expectErr error
	}{
		{
			name:      "unknown recipient",
			input:     SendMoneyInput{RecipientEmail: "nobody@x.com", Amount: decimal.NewFromInt(5), Description: "x"},
			expectErr: ErrRecipientNotFound,
		},
		{
			name:      "self transfer",
			input:     SendMoneyInput{RecipientEmail: "sender@x.com", Amount: decimal.NewFromInt(5), Description: "x"},
			expectErr: ErrSelfTransfer,
		},
		{
			name:      "insufficient funds",
			input:     SendMoneyInput{RecipientEmail: "recipient@x.com", Amount: decimal.NewFromInt(100), Description: "x"},
			expectErr: ErrInsufficientFunds,
		},
		{
			name:      "non-positive amount",
			input:     SendMoneyInput{RecipientEmail: "recipient@x.com", Amount: decimal.Zero, Description: "x"},
			expectErr: ErrNonPositiveAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SendMoney(db, sender, testCurrency, tt.input)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}

	// No transfer rows were created by any failed attempt
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.True(t, balanceOf(t, db, sender.ID).Equal(decimal.NewFromInt(10)))
}
