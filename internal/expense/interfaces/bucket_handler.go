package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jchung150/Expense-Classification/internal/expense/application"
	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	expenseErrors "github.com/jchung150/Expense-Classification/internal/expense/errors"
)

type BucketServiceInterface interface {
	ListBuckets() ([]domain.Bucket, error)
	GetVendors(name string) ([]string, error)
	CreateBucket(bucket *domain.Bucket) error
	UpdateBucket(bucket domain.Bucket) error
	DeleteBucket(bucketID int) error
}

type BucketHandler struct {
	service      BucketServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewBucketHandler(
	service BucketServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *BucketHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &BucketHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *BucketHandler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.ListBuckets()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve buckets")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   buckets,
	})
}

func (h *BucketHandler) GetVendors(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "Bucket name is required")
		return
	}
	vendors, err := h.service.GetVendors(name)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve vendors")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   vendors,
	})
}

func (h *BucketHandler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	var bucket domain.Bucket
	if err := json.NewDecoder(r.Body).Decode(&bucket); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.service.CreateBucket(&bucket); err != nil {
		if expenseErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create bucket")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   bucket,
	})
}

func (h *BucketHandler) UpdateBucket(w http.ResponseWriter, r *http.Request) {
	bucketID, err := strconv.Atoi(r.PathValue("bucketID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid bucket ID")
		return
	}
	var bucket domain.Bucket
	if err := json.NewDecoder(r.Body).Decode(&bucket); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	bucket.ID = bucketID
	if err := h.service.UpdateBucket(bucket); err != nil {
		if expenseErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if application.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Bucket not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update bucket")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   bucket,
	})
}

func (h *BucketHandler) DeleteBucket(w http.ResponseWriter, r *http.Request) {
	bucketID, err := strconv.Atoi(r.PathValue("bucketID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid bucket ID")
		return
	}
	if err := h.service.DeleteBucket(bucketID); err != nil {
		if application.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Bucket not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete bucket")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Bucket deleted",
	})
}
