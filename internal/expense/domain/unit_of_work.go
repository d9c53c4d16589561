package domain

// UnitOfWork groups bucket and transaction writes so an import either commits
// everything or nothing. Staged rows are invisible to other requests until
// Commit returns.
type UnitOfWork interface {
	SaveBucket(bucket *Bucket) error
	SaveTransaction(transaction *Transaction) error
	Commit() error
	Rollback() error
}

type UnitOfWorkFactory interface {
	Begin() (UnitOfWork, error)
}
