package interfaces

import (
	"errors"
	"io"

	"github.com/jchung150/Expense-Classification/internal/expense/application"
	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type MockBucketService struct {
	Buckets    []domain.Bucket
	Vendors    []string
	ShouldFail bool
}

func (m *MockBucketService) ListBuckets() ([]domain.Bucket, error) {
	if m.ShouldFail {
		return nil, errors.New("service failure")
	}
	return m.Buckets, nil
}

func (m *MockBucketService) GetVendors(name string) ([]string, error) {
	if m.ShouldFail {
		return nil, errors.New("service failure")
	}
	return m.Vendors, nil
}

func (m *MockBucketService) CreateBucket(bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}
	bucket.ID = len(m.Buckets) + 1
	m.Buckets = append(m.Buckets, *bucket)
	return nil
}

func (m *MockBucketService) UpdateBucket(bucket domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}
	for i := range m.Buckets {
		if m.Buckets[i].ID == bucket.ID {
			m.Buckets[i] = bucket
			return nil
		}
	}
	return expenseErrors.ErrBucketNotFound
}

func (m *MockBucketService) DeleteBucket(bucketID int) error {
	for i := range m.Buckets {
		if m.Buckets[i].ID == bucketID {
			m.Buckets = append(m.Buckets[:i], m.Buckets[i+1:]...)
			return nil
		}
	}
	return expenseErrors.ErrBucketNotFound
}

type MockTransactionService struct {
	Transactions []domain.Transaction
	Err          error
}

func (m *MockTransactionService) GetUserTransactions(userID string) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transactions, nil
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	if err := transaction.Validate(); err != nil {
		return err
	}
	transaction.ID = len(m.Transactions) + 1
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionService) UpdateTransaction(callerID string, transaction domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Transactions {
		if m.Transactions[i].ID == transaction.ID {
			if m.Transactions[i].UserID != callerID {
				return expenseErrors.ErrNotOwner
			}
			transaction.UserID = m.Transactions[i].UserID
			m.Transactions[i] = transaction
			return nil
		}
	}
	return expenseErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) DeleteTransaction(callerID string, transactionID int) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			if m.Transactions[i].UserID != callerID {
				return expenseErrors.ErrTransactionNotFound
			}
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return expenseErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) DeleteAllTransactions() (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	deleted := int64(len(m.Transactions))
	m.Transactions = nil
	return deleted, nil
}

type MockImportService struct {
	Summary  *application.ImportSummary
	Err      error
	GotUser  string
	GotFile  string
	GotBytes []byte
}

func (m *MockImportService) Import(userID, fileName string, file io.Reader) (*application.ImportSummary, error) {
	m.GotUser = userID
	m.GotFile = fileName
	m.GotBytes, _ = io.ReadAll(file)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Summary, nil
}

type MockReportService struct {
	Summaries []domain.BucketSummary
	Err       error
	GotYear   int
}

func (m *MockReportService) GenerateYearlyReport(year int) ([]domain.BucketSummary, error) {
	m.GotYear = year
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Summaries, nil
}
