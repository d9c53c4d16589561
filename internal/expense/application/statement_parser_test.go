package application

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatement_ValidRows(t *testing.T) {
	input := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n" +
		"02/01/2024,ST JAMES RESTAURANT,Entertainment,-42.10,957.90\n"

	txns, err := parseStatement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, "STARBUCKS", txns[0].Vendor)
	assert.Equal(t, "Coffee", txns[0].BucketName)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-5.50")))
	assert.True(t, txns[0].Balance.Equal(decimal.RequireFromString("1000.00")))

	assert.Equal(t, "ST JAMES RESTAURANT", txns[1].Vendor)
	assert.Equal(t, "Entertainment", txns[1].BucketName)
}

func TestParseStatement_SkipsBlankLines(t *testing.T) {
	input := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n" +
		"\n" +
		"01/16/2024,GROCER,Food,-20.00,980.00\n"

	txns, err := parseStatement(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestParseStatement_MissingTrailingFields(t *testing.T) {
	// Missing balance, and missing amount+balance, are treated as absent.
	input := "01/15/2024,STARBUCKS,Coffee,-5.50\n" +
		"01/16/2024,GROCER,Food\n"

	txns, err := parseStatement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.True(t, txns[0].Balance.IsZero())
	assert.True(t, txns[1].Amount.IsZero())
	assert.True(t, txns[1].Balance.IsZero())
}

func TestParseStatement_MalformedDateFailsFile(t *testing.T) {
	input := "01/15/2024,STARBUCKS,Coffee,-5.50,1000.00\n" +
		"2024-01-16,GROCER,Food,-20.00,980.00\n"

	_, err := parseStatement(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseStatement_MalformedAmountFailsFile(t *testing.T) {
	input := "01/15/2024,STARBUCKS,Coffee,not-a-number,1000.00\n"

	_, err := parseStatement(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestParseStatement_Empty(t *testing.T) {
	txns, err := parseStatement(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, txns)
}
