package application

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
)

// Statement rows have five positional columns and no header:
// date, vendor, bucket name, amount, balance.
const (
	statementDateFormat = "01/02/2006"
	colDate             = 0
	colVendor           = 1
	colBucket           = 2
	colAmount           = 3
	colBalance          = 4
)

// parseStatement reads a whole statement file into transaction records.
// Blank lines are skipped and missing trailing fields are treated as absent,
// but a present, malformed date or number fails the whole file.
func parseStatement(r io.Reader) ([]domain.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	var txns []domain.Transaction
	for i, rec := range records {
		if isBlankRow(rec) {
			continue
		}
		txn, err := parseStatementRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func isBlankRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseStatementRow(rec []string) (domain.Transaction, error) {
	field := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var txn domain.Transaction

	if raw := field(colDate); raw != "" {
		date, err := time.Parse(statementDateFormat, raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("parsing date %q: %w", raw, err)
		}
		txn.Date = date
	}

	txn.Vendor = field(colVendor)
	txn.BucketName = field(colBucket)

	amount, err := parseStatementDecimal(field(colAmount))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing amount: %w", err)
	}
	txn.Amount = amount

	balance, err := parseStatementDecimal(field(colBalance))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parsing balance: %w", err)
	}
	txn.Balance = balance

	return txn, nil
}

// parseStatementDecimal parses an invariant-format decimal (period separator,
// no grouping). An absent field yields zero.
func parseStatementDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q: %w", raw, err)
	}
	return value, nil
}
