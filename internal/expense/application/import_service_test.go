package application

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchung150/Expense-Classification/internal/expense/domain"
	"github.com/jchung150/Expense-Classification/internal/storage"
)

func newImportFixture(t *testing.T) (*ImportService, *fakeBucketRepository, *fakeTransactionRepository, *fakeUnitOfWorkFactory) {
	t.Helper()
	buckets := &fakeBucketRepository{}
	transactions := &fakeTransactionRepository{}
	factory := &fakeUnitOfWorkFactory{buckets: buckets, transactions: transactions}
	store := storage.NewUploadStore(t.TempDir())
	return NewImportService(buckets, factory, store), buckets, transactions, factory
}

func TestImport_CreatesTransactionsAndBuckets(t *testing.T) {
	service, buckets, transactions, factory := newImportFixture(t)

	file := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n" +
		"01/20/2024,STARBUCKS,Coffee,-4.25,995.75\n" +
		"02/01/2024,ST JAMES RESTAURANT,Entertainment,-42.10,953.65\n"

	summary, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Transactions)
	assert.Equal(t, 2, summary.NewBuckets)
	assert.Equal(t, 1, factory.committed)

	require.Len(t, buckets.buckets, 2)
	assert.Equal(t, "Coffee", buckets.buckets[0].Name)
	assert.Equal(t, "STARBUCKS", buckets.buckets[0].Vendor)

	require.Len(t, transactions.transactions, 3)
	for _, txn := range transactions.transactions {
		assert.Equal(t, "user-1", txn.UserID)
	}
	first := transactions.transactions[0]
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("-5.50")))
	assert.True(t, first.Balance.Equal(decimal.RequireFromString("1000.00")))
}

func TestImport_KnownPairsCreateNoBuckets(t *testing.T) {
	service, buckets, _, _ := newImportFixture(t)
	buckets.buckets = []domain.Bucket{{ID: 1, Name: "Coffee", Vendor: "STARBUCKS"}}
	buckets.nextID = 1

	file := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n"

	summary, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.NewBuckets)
	assert.Len(t, buckets.buckets, 1)
}

func TestImport_ReimportDuplicatesTransactionsNotBuckets(t *testing.T) {
	service, buckets, transactions, _ := newImportFixture(t)

	file := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n"

	_, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.NoError(t, err)
	summary, err := service.Import("user-1", "jan-again.csv", strings.NewReader(file))
	require.NoError(t, err)

	// No de-duplication key exists: rows duplicate, bucket pairs do not.
	assert.Equal(t, 0, summary.NewBuckets)
	assert.Len(t, transactions.transactions, 2)
	assert.Len(t, buckets.buckets, 1)
}

func TestImport_CaseSensitivePairMatching(t *testing.T) {
	service, buckets, _, _ := newImportFixture(t)
	buckets.buckets = []domain.Bucket{{ID: 1, Name: "Coffee", Vendor: "STARBUCKS"}}
	buckets.nextID = 1

	file := "01/15/2024,Starbucks,coffee,-5.50,1000.00\n"

	summary, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NewBuckets)
}

func TestImport_ParseFailureCommitsNothing(t *testing.T) {
	service, buckets, transactions, factory := newImportFixture(t)

	file := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n" +
		"garbage-date,GROCER,Food,-20.00,980.00\n"

	_, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.Error(t, err)

	assert.Equal(t, 0, factory.begun)
	assert.Empty(t, buckets.buckets)
	assert.Empty(t, transactions.transactions)
}

func TestImport_PersistFailureRollsBack(t *testing.T) {
	service, buckets, transactions, factory := newImportFixture(t)
	factory.failSaveTxn = true

	file := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n"

	_, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.Error(t, err)

	assert.Equal(t, 1, factory.rolledBack)
	assert.Equal(t, 0, factory.committed)
	assert.Empty(t, buckets.buckets)
	assert.Empty(t, transactions.transactions)
}

func TestImport_SameFileNameCannotBeConsumedTwice(t *testing.T) {
	buckets := &fakeBucketRepository{}
	transactions := &fakeTransactionRepository{}
	factory := &fakeUnitOfWorkFactory{buckets: buckets, transactions: transactions}
	store := storage.NewUploadStore(t.TempDir())
	service := NewImportService(buckets, factory, store)

	file := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n"

	_, err := service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.NoError(t, err)

	// The first import left jan.csv.imported behind; claiming the same
	// name again must fail before anything is persisted.
	_, err = service.Import("user-1", "jan.csv", strings.NewReader(file))
	require.Error(t, err)
	assert.Len(t, transactions.transactions, 1)
}

func TestImport_WorkedExample(t *testing.T) {
	service, buckets, transactions, _ := newImportFixture(t)

	_, err := service.Import("uploader", "statement.csv",
		strings.NewReader("01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n"))
	require.NoError(t, err)

	require.Len(t, buckets.buckets, 1)
	assert.Equal(t, domain.Bucket{ID: 1, Name: "Coffee", Vendor: "STARBUCKS"}, buckets.buckets[0])

	require.Len(t, transactions.transactions, 1)
	txn := transactions.transactions[0]
	assert.Equal(t, "STARBUCKS", txn.Vendor)
	assert.Equal(t, "Coffee", txn.BucketName)
	assert.Equal(t, "uploader", txn.UserID)

	report, err := NewReportService(transactions).GenerateYearlyReport(2024)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "Coffee", report[0].BucketName)
	assert.True(t, report[0].TotalAmount.Equal(decimal.RequireFromString("-5.50")))
}
