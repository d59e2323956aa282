package reader

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

func readAll(r *CSVReader) ([]models.Transaction, []error) {
	var txs []models.Transaction
	var errs []error
	for {
		tx, err := r.Next()
		if err == io.EOF {
			return txs, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		txs = append(txs, tx)
	}
}

func TestIteratesRows(t *testing.T) {
	src := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"deposit, 2, 2, 2.0\n" +
		"foo, foo\n" +
		"foo, foo, foo, foo\n"

	txs, errs := readAll(New(strings.NewReader(src)))

	require.Len(t, txs, 2)
	require.Len(t, errs, 2)

	assert.Equal(t, models.TxDeposit, txs[0].Type)
	assert.Equal(t, uint16(1), txs[0].Client)
	assert.Equal(t, uint32(1), txs[0].TxID)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("1.0")))

	assert.Equal(t, models.TxDeposit, txs[1].Type)
	assert.Equal(t, uint16(2), txs[1].Client)
	assert.Equal(t, uint32(2), txs[1].TxID)
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("2.0")))
}

func TestParsesDisputeRowsWithoutAmount(t *testing.T) {
	src := "type, client, tx, amount\n" +
		"deposit, 1, 1, 5.0\n" +
		"dispute, 1, 1,\n" +
		"resolve, 1, 1\n" +
		"chargeback, 1, 1,\n"

	txs, errs := readAll(New(strings.NewReader(src)))

	require.Empty(t, errs)
	require.Len(t, txs, 4)
	assert.Equal(t, models.TxDispute, txs[1].Type)
	assert.True(t, txs[1].Amount.IsZero())
	assert.Equal(t, models.TxResolve, txs[2].Type)
	assert.Equal(t, models.TxChargeback, txs[3].Type)
}

func TestNormalizesCasingAndWhitespace(t *testing.T) {
	src := "type, client, tx, amount\n" +
		"  Deposit ,  1 ,  7 ,  3.5 \n"

	txs, errs := readAll(New(strings.NewReader(src)))

	require.Empty(t, errs)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TxDeposit, txs[0].Type)
	assert.Equal(t, uint32(7), txs[0].TxID)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("3.5")))
}

func TestRejectsMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{"unknown type", "transfer, 1, 1, 1.0"},
		{"bad client", "deposit, x, 1, 1.0"},
		{"client overflow", "deposit, 70000, 1, 1.0"},
		{"bad tx id", "deposit, 1, x, 1.0"},
		{"missing amount", "deposit, 1, 1"},
		{"empty amount", "withdrawal, 1, 1,"},
		{"bad amount", "deposit, 1, 1, abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := "type, client, tx, amount\n" + tc.row + "\n"
			txs, errs := readAll(New(strings.NewReader(src)))
			assert.Empty(t, txs)
			assert.Len(t, errs, 1)
		})
	}
}

func TestEmptyInputReturnsEOF(t *testing.T) {
	r := New(strings.NewReader(""))

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestHeaderOnlyInputReturnsEOF(t *testing.T) {
	r := New(strings.NewReader("type, client, tx, amount\n"))

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}
