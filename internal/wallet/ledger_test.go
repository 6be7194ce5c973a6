package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"walletapi/internal/domain"
)

func TestGetOrCreateWallet(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "owner@x.com")

	w, err := GetOrCreateWallet(db, user.ID, testCurrency)
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
	assert.Equal(t, testCurrency, w.Currency)

	// Second access returns the same wallet, never a second row
	again, err := GetOrCreateWallet(db, user.ID, testCurrency)
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&domain.Wallet{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreditAndDebit(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "owner@x.com")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Credit(tx, user.ID, testCurrency, decimal.NewFromFloat(100.50))
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := Debit(tx, user.ID, testCurrency, decimal.NewFromFloat(40.25))
		return err
	})
	require.NoError(t, err)

	w, err := GetOrCreateWallet(db, user.ID, testCurrency)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromFloat(60.25)), "got %s", w.Balance)
}

func TestDebit_InsufficientFundsLeavesBalanceUnchanged(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "owner@x.com")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Credit(tx, user.ID, testCurrency, decimal.NewFromInt(100))
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := Debit(tx, user.ID, testCurrency, decimal.NewFromInt(150))
		return err
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	w, err := GetOrCreateWallet(db, user.ID, testCurrency)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(100)), "got %s", w.Balance)
}

func TestLedger_NonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "owner@x.com")

	amounts := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)}
	for _, amount := range amounts {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := Credit(tx, user.ID, testCurrency, amount)
			return err
		})
		assert.ErrorIs(t, err, ErrNonPositiveAmount)

		err = db.Transaction(func(tx *gorm.DB) error {
			_, err := Debit(tx, user.ID, testCurrency, amount)
			return err
		})
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	}
}

func TestLedger_BalanceEqualsCreditsMinusDebits(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "owner@x.com")

	credits := []int64{100, 250, 75}
	debits := []int64{30, 120}
	for _, v := range credits {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			_, err := Credit(tx, user.ID, testCurrency, decimal.NewFromInt(v))
			return err
		}))
	}
	for _, v := range debits {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			_, err := Debit(tx, user.ID, testCurrency, decimal.NewFromInt(v))
			return err
		}))
	}

	w, err := GetOrCreateWallet(db, user.ID, testCurrency)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(100+250+75-30-120)), "got %s", w.Balance)
	assert.False(t, w.Balance.IsNegative())
}
