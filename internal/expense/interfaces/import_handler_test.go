package interfaces

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchung150/Expense-Classification/internal/expense/application"
)

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestHandleUpload_RequiresAuthContext(t *testing.T) {
	handler := NewImportHandler(&MockImportService{}, respondJSON, respondError)
	w := httptest.NewRecorder()

	body, contentType := multipartUpload(t, "jan.csv", "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n")
	req := httptest.NewRequest(http.MethodPost, "/api/protected/transactions/upload", body)
	req.Header.Set("Content-Type", contentType)
	handler.HandleUpload(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestHandleUpload_RequiresFile(t *testing.T) {
	handler := NewImportHandler(&MockImportService{}, respondJSON, respondError)
	w := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/protected/transactions/upload", nil)
	req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
	handler.HandleUpload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandleUpload_RejectsEmptyFile(t *testing.T) {
	handler := NewImportHandler(&MockImportService{}, respondJSON, respondError)
	w := httptest.NewRecorder()

	body, contentType := multipartUpload(t, "empty.csv", "")
	req := httptest.NewRequest(http.MethodPost, "/api/protected/transactions/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
	handler.HandleUpload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandleUpload_PassesFileToService(t *testing.T) {
	mockService := &MockImportService{Summary: &application.ImportSummary{Transactions: 1, NewBuckets: 1}}
	handler := NewImportHandler(mockService, respondJSON, respondError)
	w := httptest.NewRecorder()

	content := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n"
	body, contentType := multipartUpload(t, "jan.csv", content)
	req := httptest.NewRequest(http.MethodPost, "/api/protected/transactions/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
	handler.HandleUpload(w, req)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	assert.Equal(t, "user-1", mockService.GotUser)
	assert.Equal(t, "jan.csv", mockService.GotFile)
	assert.Equal(t, content, string(mockService.GotBytes))
}

func TestHandleUpload_ImportFailureSummarized(t *testing.T) {
	mockService := &MockImportService{Err: errors.New("row 2: parsing date \"garbage\"")}
	handler := NewImportHandler(mockService, respondJSON, respondError)
	w := httptest.NewRecorder()

	body, contentType := multipartUpload(t, "jan.csv", "garbage\n")
	req := httptest.NewRequest(http.MethodPost, "/api/protected/transactions/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
	handler.HandleUpload(w, req)

	res := w.Result()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
