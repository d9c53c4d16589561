package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type TransactionRepository interface {
	Save(transaction *Transaction) error
	FindByUser(userID string) ([]Transaction, error)
	FindByID(transactionID int) (*Transaction, error)
	Update(transaction Transaction) error
	Delete(transactionID int) error
	DeleteAll() (int64, error)
	FindByYear(year int) ([]Transaction, error)
}

// Transaction is a single bank-statement line item. Amount and Balance are
// currency values and stay decimal end to end; Balance is informational and is
// never validated against Amount.
type Transaction struct {
	ID         int             `json:"id"`
	Date       time.Time       `json:"date"`
	Vendor     string          `json:"vendor"`
	BucketName string          `json:"bucket_name"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	UserID     string          `json:"user_id"`
}

func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.BucketName) == "" {
		return expenseErrors.NewFieldValidationError("bucket_name", "Bucket name is required")
	}
	if t.UserID == "" {
		return expenseErrors.NewValidationError("Transaction must have an owner")
	}
	if t.Date.IsZero() {
		return expenseErrors.NewFieldValidationError("date", "Date is required")
	}
	return nil
}

// BucketSummary is one row of the yearly report: the decimal sum of all
// transaction amounts carrying a bucket name in the requested year.
type BucketSummary struct {
	BucketName  string          `json:"bucket_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
