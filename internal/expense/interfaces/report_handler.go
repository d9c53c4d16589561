package interfaces

import (
	"log"
	"net/http"
	"strconv"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
)

type ReportServiceInterface interface {
	GenerateYearlyReport(year int) ([]domain.BucketSummary, error)
}

type ReportHandler struct {
	service      ReportServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewReportHandler(
	service ReportServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ReportHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &ReportHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ReportHandler) GenerateYearlyReport(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1000 || year > 9999 {
		h.respondError(w, http.StatusBadRequest, "Year must be a four-digit number")
		return
	}

	summaries, err := h.service.GenerateYearlyReport(year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}
	if summaries == nil {
		summaries = []domain.BucketSummary{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summaries,
	})
}
