package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type BucketRepository struct {
	db *sql.DB
}

func NewBucketRepository(db *sql.DB) *BucketRepository {
	return &BucketRepository{db: db}
}

func (r *BucketRepository) FindAll() ([]domain.Bucket, error) {
	rows, err := r.db.Query(`SELECT id, name, vendor FROM buckets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("could not list buckets: %v", err)
	}
	defer rows.Close()

	var buckets []domain.Bucket
	for rows.Next() {
		var bucket domain.Bucket
		if err := rows.Scan(&bucket.ID, &bucket.Name, &bucket.Vendor); err != nil {
			return nil, fmt.Errorf("could not scan bucket: %v", err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

func (r *BucketRepository) FindByID(bucketID int) (*domain.Bucket, error) {
	var bucket domain.Bucket
	err := r.db.QueryRow(`SELECT id, name, vendor FROM buckets WHERE id = $1`, bucketID).
		Scan(&bucket.ID, &bucket.Name, &bucket.Vendor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrBucketNotFound
		}
		return nil, fmt.Errorf("could not find bucket: %v", err)
	}
	return &bucket, nil
}

func (r *BucketRepository) FindVendorsByName(name string) ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT vendor FROM buckets WHERE name = $1 ORDER BY vendor`, name)
	if err != nil {
		return nil, fmt.Errorf("could not list vendors: %v", err)
	}
	defer rows.Close()

	var vendors []string
	for rows.Next() {
		var vendor string
		if err := rows.Scan(&vendor); err != nil {
			return nil, fmt.Errorf("could not scan vendor: %v", err)
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

func (r *BucketRepository) Save(bucket *domain.Bucket) error {
	err := r.db.QueryRow(`INSERT INTO buckets (name, vendor) VALUES ($1, $2) RETURNING id`,
		bucket.Name, bucket.Vendor).Scan(&bucket.ID)
	if err != nil {
		return fmt.Errorf("could not save bucket: %v", err)
	}
	return nil
}

func (r *BucketRepository) Update(bucket domain.Bucket) error {
	result, err := r.db.Exec(`UPDATE buckets SET name = $1, vendor = $2 WHERE id = $3`,
		bucket.Name, bucket.Vendor, bucket.ID)
	if err != nil {
		return fmt.Errorf("could not update bucket: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update bucket: %v", err)
	}
	if affected == 0 {
		return expenseErrors.ErrBucketNotFound
	}
	return nil
}

func (r *BucketRepository) Delete(bucketID int) error {
	result, err := r.db.Exec(`DELETE FROM buckets WHERE id = $1`, bucketID)
	if err != nil {
		return fmt.Errorf("could not delete bucket: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete bucket: %v", err)
	}
	if affected == 0 {
		return expenseErrors.ErrBucketNotFound
	}
	return nil
}
