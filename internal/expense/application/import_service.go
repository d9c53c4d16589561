package application

import (
	"fmt"
	"io"
	"log"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
)

// UploadStore is the on-disk area where raw statement files are kept.
type UploadStore interface {
	Save(userID, fileName string, r io.Reader) (string, error)
	MarkImported(path string) (string, error)
	Open(path string) (io.ReadCloser, error)
}

// ImportSummary reports what a completed import produced.
type ImportSummary struct {
	Transactions int `json:"transactions"`
	NewBuckets   int `json:"new_buckets"`
}

// ImportService ingests a user's statement upload: the file is persisted and
// renamed first so it cannot be consumed twice, then parsed in full, and only
// then are new buckets and transactions committed in a single unit of work. A
// failure anywhere before commit leaves both stores unchanged.
type ImportService struct {
	buckets domain.BucketRepository
	uow     domain.UnitOfWorkFactory
	store   UploadStore
}

func NewImportService(buckets domain.BucketRepository, uow domain.UnitOfWorkFactory, store UploadStore) *ImportService {
	return &ImportService{buckets: buckets, uow: uow, store: store}
}

type bucketKey struct {
	name   string
	vendor string
}

func (s *ImportService) Import(userID, fileName string, file io.Reader) (*ImportSummary, error) {
	path, err := s.store.Save(userID, fileName, file)
	if err != nil {
		return nil, fmt.Errorf("could not store upload: %w", err)
	}

	importedPath, err := s.store.MarkImported(path)
	if err != nil {
		return nil, fmt.Errorf("could not claim upload: %w", err)
	}

	stored, err := s.store.Open(importedPath)
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}
	defer stored.Close()

	transactions, err := parseStatement(stored)
	if err != nil {
		return nil, fmt.Errorf("could not parse upload: %w", err)
	}

	// Reconciliation is exact, case-sensitive string equality on both name
	// and vendor. Pairs unseen in the catalog and not yet staged from an
	// earlier row become new buckets.
	existing, err := s.buckets.FindAll()
	if err != nil {
		return nil, fmt.Errorf("could not load bucket catalog: %w", err)
	}
	known := make(map[bucketKey]bool, len(existing))
	for _, bucket := range existing {
		known[bucketKey{name: bucket.Name, vendor: bucket.Vendor}] = true
	}

	var newBuckets []domain.Bucket
	for i := range transactions {
		transactions[i].UserID = userID

		key := bucketKey{name: transactions[i].BucketName, vendor: transactions[i].Vendor}
		if known[key] {
			continue
		}
		known[key] = true
		newBuckets = append(newBuckets, domain.Bucket{Name: key.name, Vendor: key.vendor})
	}

	unit, err := s.uow.Begin()
	if err != nil {
		return nil, fmt.Errorf("could not begin import commit: %w", err)
	}
	defer func() {
		if err != nil {
			safeRollback(unit)
		}
	}()

	for i := range newBuckets {
		if err = unit.SaveBucket(&newBuckets[i]); err != nil {
			return nil, fmt.Errorf("could not stage bucket %q/%q: %w", newBuckets[i].Name, newBuckets[i].Vendor, err)
		}
	}
	for i := range transactions {
		if err = unit.SaveTransaction(&transactions[i]); err != nil {
			return nil, fmt.Errorf("could not stage transaction at row %d: %w", i+1, err)
		}
	}
	if err = unit.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit import: %w", err)
	}

	log.Printf("Imported %d transactions (%d new buckets) for user %s from %s",
		len(transactions), len(newBuckets), userID, fileName)

	return &ImportSummary{Transactions: len(transactions), NewBuckets: len(newBuckets)}, nil
}

func safeRollback(unit domain.UnitOfWork) {
	if err := unit.Rollback(); err != nil {
		log.Printf("Error during import rollback: %v", err)
	}
}
