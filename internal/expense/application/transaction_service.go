package application

import (
	"errors"
	"log"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type TransactionService struct {
	repo domain.TransactionRepository
}

func NewTransactionService(repo domain.TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

func (s *TransactionService) GetUserTransactions(userID string) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Save(transaction)
}

// UpdateTransaction loads the stored record first and refuses when its owner
// differs from the caller. Ownership is never reassigned by an edit.
func (s *TransactionService) UpdateTransaction(callerID string, transaction domain.Transaction) error {
	existing, err := s.repo.FindByID(transaction.ID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return expenseErrors.ErrNotOwner
	}

	transaction.UserID = existing.UserID
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Update(transaction)
}

// DeleteTransaction reports not-found for both an absent record and a record
// owned by someone else, so existence is never revealed to a non-owner.
func (s *TransactionService) DeleteTransaction(callerID string, transactionID int) error {
	existing, err := s.repo.FindByID(transactionID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return expenseErrors.ErrTransactionNotFound
	}
	return s.repo.Delete(transactionID)
}

// DeleteAllTransactions removes every transaction for every user. Admin only;
// the route guard enforces the role before this runs.
func (s *TransactionService) DeleteAllTransactions() (int64, error) {
	deleted, err := s.repo.DeleteAll()
	if err != nil {
		return 0, err
	}
	log.Printf("Bulk delete removed %d transactions", deleted)
	return deleted, nil
}

// IsNotFound reports whether err is the deliberate not-found refusal.
func IsNotFound(err error) bool {
	return errors.Is(err, expenseErrors.ErrTransactionNotFound) || errors.Is(err, expenseErrors.ErrBucketNotFound)
}
