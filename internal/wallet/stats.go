package wallet

import (
	"sort" // Ascending month ordering
	"time" // Window cutoff

	"github.com/shopspring/decimal" // For precise monetary calculations
	"gorm.io/gorm"                  // GORM ORM library

	"walletapi/internal/domain" // Domain models
)

// MonthlyStat is one calendar-month bucket of income and expense
type MonthlyStat struct {
	Month   string          `json:"month"`   // YYYY-MM
	Income  decimal.Decimal `json:"income"`  // Credits in the month
	Expense decimal.Decimal `json:"expense"` // Debits in the month
	Net     decimal.Decimal `json:"net"`     // Income minus expense
}

// CategoryTotal is one entry of the top-spending-category ranking
type CategoryTotal struct {
	Category string          `json:"category"` // Expense category
	Total    decimal.Decimal `json:"total"`    // Summed expense amounts
}

// Stats aggregates a user's money movement
type Stats struct {
	TotalIncome   decimal.Decimal `json:"total_income"`   // income + transfer_in
	TotalExpense  decimal.Decimal `json:"total_expense"`  // expense + transfer_out
	NetBalance    decimal.Decimal `json:"net_balance"`    // Income minus expense
	MonthlyStats  []MonthlyStat   `json:"monthly_stats"`  // Ascending by month, empty months omitted
	TopCategories []CategoryTotal `json:"top_categories"` // Descending by total, at most topCategoryLimit
}

// At most this many categories are ranked
const topCategoryLimit = 5

var creditTypes = []string{domain.TransactionTypeIncome, domain.TransactionTypeTransferIn}
var debitTypes = []string{domain.TransactionTypeExpense, domain.TransactionTypeTransferOut}

// sumAmounts totals the amounts of a user's transactions of the given types.
// Missing data sums to zero.
func sumAmounts(db *gorm.DB, userID uint, types []string) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := db.Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND transaction_type IN ?", userID, types).
		Scan(&row).Error
	return row.Total, err
}

// GetStatistics derives aggregate totals, per-month buckets over roughly the
// last `months` months, and the top expense categories for the user. It takes
// the user directly so it can be called from any context.
func GetStatistics(db *gorm.DB, userID uint, months int) (*Stats, error) {
	totalIncome, err := sumAmounts(db, userID, creditTypes)
	if err != nil {
		return nil, err
	}
	totalExpense, err := sumAmounts(db, userID, debitTypes)
	if err != nil {
		return nil, err
	}

	// 30-day months are an approximation, not calendar-accurate
	cutoff := time.Now().AddDate(0, 0, -30*months)
	var recent []domain.Transaction
	if err := db.Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	buckets := map[string]*MonthlyStat{}
	for i := range recent {
		txn := &recent[i]
		key := txn.CreatedAt.Format("2006-01") // Calendar-month bucket
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthlyStat{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = bucket
		}
		if txn.IsCredit() {
			bucket.Income = bucket.Income.Add(txn.Amount)
		} else {
			bucket.Expense = bucket.Expense.Add(txn.Amount)
		}
	}
	monthly := make([]MonthlyStat, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.Net = bucket.Income.Sub(bucket.Expense)
		monthly = append(monthly, *bucket)
	}
	// Months emit in ascending chronological order
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	var top []CategoryTotal
	if err := db.Model(&domain.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND transaction_type = ? AND category IS NOT NULL", userID, domain.TransactionTypeExpense).
		Group("category").
		Order("total DESC").
		Limit(topCategoryLimit).
		Scan(&top).Error; err != nil {
		return nil, err
	}
	if top == nil {
		top = []CategoryTotal{}
	}

	return &Stats{
		TotalIncome:   totalIncome,                   // income + transfer_in
		TotalExpense:  totalExpense,                  // expense + transfer_out
		NetBalance:    totalIncome.Sub(totalExpense), // Income minus expense
		MonthlyStats:  monthly,                       // Ascending months
		TopCategories: top,                           // Descending totals
	}, nil
}
