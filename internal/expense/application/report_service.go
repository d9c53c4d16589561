package application

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
)

// ReportService produces the yearly per-bucket totals. The aggregation spans
// all users; only bucket names with at least one transaction in the year
// appear.
type ReportService struct {
	repo domain.TransactionRepository
}

func NewReportService(repo domain.TransactionRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) GenerateYearlyReport(year int) ([]domain.BucketSummary, error) {
	transactions, err := s.repo.FindByYear(year)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, transaction := range transactions {
		totals[transaction.BucketName] = totals[transaction.BucketName].Add(transaction.Amount)
	}

	summaries := make([]domain.BucketSummary, 0, len(totals))
	for name, total := range totals {
		summaries = append(summaries, domain.BucketSummary{BucketName: name, TotalAmount: total})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].BucketName < summaries[j].BucketName
	})
	return summaries, nil
}
