package infrastructure

import (
	"database/sql"
	"fmt"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
)

// SQLUnitOfWorkFactory opens one sql.Tx per import so staged buckets and
// transactions commit together or not at all.
type SQLUnitOfWorkFactory struct {
	db *sql.DB
}

func NewSQLUnitOfWorkFactory(db *sql.DB) *SQLUnitOfWorkFactory {
	return &SQLUnitOfWorkFactory{db: db}
}

func (f *SQLUnitOfWorkFactory) Begin() (domain.UnitOfWork, error) {
	tx, err := f.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %v", err)
	}
	return &sqlUnitOfWork{tx: tx}, nil
}

type sqlUnitOfWork struct {
	tx *sql.Tx
}

func (u *sqlUnitOfWork) SaveBucket(bucket *domain.Bucket) error {
	err := u.tx.QueryRow(`INSERT INTO buckets (name, vendor) VALUES ($1, $2) RETURNING id`,
		bucket.Name, bucket.Vendor).Scan(&bucket.ID)
	if err != nil {
		return fmt.Errorf("could not save bucket: %v", err)
	}
	return nil
}

func (u *sqlUnitOfWork) SaveTransaction(transaction *domain.Transaction) error {
	err := u.tx.QueryRow(`
		INSERT INTO transactions (date, vendor, bucket_name, amount, balance, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		transaction.Date, transaction.Vendor, transaction.BucketName,
		transaction.Amount, transaction.Balance, transaction.UserID).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("could not save transaction: %v", err)
	}
	return nil
}

func (u *sqlUnitOfWork) Commit() error {
	return u.tx.Commit()
}

func (u *sqlUnitOfWork) Rollback() error {
	return u.tx.Rollback()
}
