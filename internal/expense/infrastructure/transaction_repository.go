package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (date, vendor, bucket_name, amount, balance, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.db.QueryRow(query, transaction.Date, transaction.Vendor, transaction.BucketName,
		transaction.Amount, transaction.Balance, transaction.UserID).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("could not save transaction: %v", err)
	}
	return nil
}

func (r *TransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	query := `
		SELECT id, date, vendor, bucket_name, amount, balance, user_id
		FROM transactions
		WHERE user_id = $1
		ORDER BY date, id
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list transactions: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) FindByID(transactionID int) (*domain.Transaction, error) {
	query := `
		SELECT id, date, vendor, bucket_name, amount, balance, user_id
		FROM transactions
		WHERE id = $1
	`
	var transaction domain.Transaction
	err := r.db.QueryRow(query, transactionID).Scan(&transaction.ID, &transaction.Date,
		&transaction.Vendor, &transaction.BucketName, &transaction.Amount, &transaction.Balance, &transaction.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("could not find transaction: %v", err)
	}
	return &transaction, nil
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, vendor = $2, bucket_name = $3, amount = $4, balance = $5
		WHERE id = $6
	`
	result, err := r.db.Exec(query, transaction.Date, transaction.Vendor, transaction.BucketName,
		transaction.Amount, transaction.Balance, transaction.ID)
	if err != nil {
		return fmt.Errorf("could not update transaction: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update transaction: %v", err)
	}
	if affected == 0 {
		return expenseErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(transactionID int) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("could not delete transaction: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete transaction: %v", err)
	}
	if affected == 0 {
		return expenseErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("could not delete all transactions: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not delete all transactions: %v", err)
	}
	return affected, nil
}

func (r *TransactionRepository) FindByYear(year int) ([]domain.Transaction, error) {
	query := `
		SELECT id, date, vendor, bucket_name, amount, balance, user_id
		FROM transactions
		WHERE date >= $1 AND date < $2
	`
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-01-01", year+1)
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("could not list transactions for year %d: %v", year, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.Date, &transaction.Vendor,
			&transaction.BucketName, &transaction.Amount, &transaction.Balance, &transaction.UserID); err != nil {
			return nil, fmt.Errorf("could not scan transaction: %v", err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
