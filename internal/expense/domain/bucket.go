package domain

import (
	"strings"

	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type BucketRepository interface {
	FindAll() ([]Bucket, error)
	FindByID(bucketID int) (*Bucket, error)
	FindVendorsByName(name string) ([]string, error)
	Save(bucket *Bucket) error
	Update(bucket Bucket) error
	Delete(bucketID int) error
}

// Bucket is a (name, vendor) classification rule, not a pure category: the
// same name may appear across many vendors. Matching during import is exact
// string equality on both fields.
type Bucket struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
}

func (b *Bucket) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return expenseErrors.NewFieldValidationError("name", "Name is required")
	}
	if strings.TrimSpace(b.Vendor) == "" {
		return expenseErrors.NewFieldValidationError("vendor", "Vendor is required")
	}
	return nil
}
