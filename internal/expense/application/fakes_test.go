package application

import (
	"errors"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

// fakeBucketRepository is an in-memory domain.BucketRepository.
type fakeBucketRepository struct {
	buckets []domain.Bucket
	nextID  int
	failAll bool
}

func (f *fakeBucketRepository) FindAll() ([]domain.Bucket, error) {
	if f.failAll {
		return nil, errors.New("catalog unavailable")
	}
	return append([]domain.Bucket(nil), f.buckets...), nil
}

func (f *fakeBucketRepository) FindByID(bucketID int) (*domain.Bucket, error) {
	for _, b := range f.buckets {
		if b.ID == bucketID {
			bucket := b
			return &bucket, nil
		}
	}
	return nil, expenseErrors.ErrBucketNotFound
}

func (f *fakeBucketRepository) FindVendorsByName(name string) ([]string, error) {
	seen := map[string]bool{}
	var vendors []string
	for _, b := range f.buckets {
		if b.Name == name && !seen[b.Vendor] {
			seen[b.Vendor] = true
			vendors = append(vendors, b.Vendor)
		}
	}
	return vendors, nil
}

func (f *fakeBucketRepository) Save(bucket *domain.Bucket) error {
	f.nextID++
	bucket.ID = f.nextID
	f.buckets = append(f.buckets, *bucket)
	return nil
}

func (f *fakeBucketRepository) Update(bucket domain.Bucket) error {
	for i := range f.buckets {
		if f.buckets[i].ID == bucket.ID {
			f.buckets[i] = bucket
			return nil
		}
	}
	return expenseErrors.ErrBucketNotFound
}

func (f *fakeBucketRepository) Delete(bucketID int) error {
	for i := range f.buckets {
		if f.buckets[i].ID == bucketID {
			f.buckets = append(f.buckets[:i], f.buckets[i+1:]...)
			return nil
		}
	}
	return expenseErrors.ErrBucketNotFound
}

// fakeTransactionRepository is an in-memory domain.TransactionRepository.
type fakeTransactionRepository struct {
	transactions []domain.Transaction
	nextID       int
}

func (f *fakeTransactionRepository) Save(transaction *domain.Transaction) error {
	f.nextID++
	transaction.ID = f.nextID
	f.transactions = append(f.transactions, *transaction)
	return nil
}

func (f *fakeTransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, txn := range f.transactions {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepository) FindByID(transactionID int) (*domain.Transaction, error) {
	for _, txn := range f.transactions {
		if txn.ID == transactionID {
			found := txn
			return &found, nil
		}
	}
	return nil, expenseErrors.ErrTransactionNotFound
}

func (f *fakeTransactionRepository) Update(transaction domain.Transaction) error {
	for i := range f.transactions {
		if f.transactions[i].ID == transaction.ID {
			f.transactions[i] = transaction
			return nil
		}
	}
	return expenseErrors.ErrTransactionNotFound
}

func (f *fakeTransactionRepository) Delete(transactionID int) error {
	for i := range f.transactions {
		if f.transactions[i].ID == transactionID {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return expenseErrors.ErrTransactionNotFound
}

func (f *fakeTransactionRepository) DeleteAll() (int64, error) {
	deleted := int64(len(f.transactions))
	f.transactions = nil
	return deleted, nil
}

func (f *fakeTransactionRepository) FindByYear(year int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, txn := range f.transactions {
		if txn.Date.Year() == year {
			out = append(out, txn)
		}
	}
	return out, nil
}

// fakeUnitOfWorkFactory buffers staged rows and only publishes them to the
// backing fakes when Commit is called, mirroring the sql.Tx semantics.
type fakeUnitOfWorkFactory struct {
	buckets      *fakeBucketRepository
	transactions *fakeTransactionRepository
	begun        int
	committed    int
	rolledBack   int
	failCommit   bool
	failSaveTxn  bool
}

func (f *fakeUnitOfWorkFactory) Begin() (domain.UnitOfWork, error) {
	f.begun++
	return &fakeUnitOfWork{factory: f}, nil
}

type fakeUnitOfWork struct {
	factory      *fakeUnitOfWorkFactory
	buckets      []*domain.Bucket
	transactions []*domain.Transaction
	done         bool
}

func (u *fakeUnitOfWork) SaveBucket(bucket *domain.Bucket) error {
	u.buckets = append(u.buckets, bucket)
	return nil
}

func (u *fakeUnitOfWork) SaveTransaction(transaction *domain.Transaction) error {
	if u.factory.failSaveTxn {
		return errors.New("insert failed")
	}
	u.transactions = append(u.transactions, transaction)
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.factory.failCommit {
		return errors.New("commit failed")
	}
	if u.done {
		return errors.New("unit of work already finished")
	}
	u.done = true
	u.factory.committed++
	for _, bucket := range u.buckets {
		if err := u.factory.buckets.Save(bucket); err != nil {
			return err
		}
	}
	for _, transaction := range u.transactions {
		if err := u.factory.transactions.Save(transaction); err != nil {
			return err
		}
	}
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.done {
		return errors.New("unit of work already finished")
	}
	u.done = true
	u.factory.rolledBack++
	return nil
}
