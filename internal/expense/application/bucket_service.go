package application

import (
	"github.com/jchung150/Expense-Classification/internal/expense/domain"
)

// BucketService is the CRUD surface over (name, vendor) classification rules.
// Deleting a bucket never cascades: transactions keep the stale bucket name as
// free text.
type BucketService struct {
	repo domain.BucketRepository
}

func NewBucketService(repo domain.BucketRepository) *BucketService {
	return &BucketService{repo: repo}
}

func (s *BucketService) ListBuckets() ([]domain.Bucket, error) {
	buckets, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	if buckets == nil {
		return []domain.Bucket{}, nil
	}
	return buckets, nil
}

// GetVendors returns the distinct vendors recorded under a bucket name, for
// dependent selection lists in the transaction entry form.
func (s *BucketService) GetVendors(name string) ([]string, error) {
	vendors, err := s.repo.FindVendorsByName(name)
	if err != nil {
		return nil, err
	}
	if vendors == nil {
		return []string{}, nil
	}
	return vendors, nil
}

func (s *BucketService) CreateBucket(bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}
	return s.repo.Save(bucket)
}

func (s *BucketService) UpdateBucket(bucket domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}
	return s.repo.Update(bucket)
}

func (s *BucketService) DeleteBucket(bucketID int) error {
	return s.repo.Delete(bucketID)
}
