package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

// CSVReader parses the transaction input stream. Expected columns are
// "type, client, tx, amount"; the amount column may be empty or missing on
// dispute, resolve and chargeback rows. Fields are whitespace-trimmed and
// the type is lowercased before matching.
type CSVReader struct {
	r          *csv.Reader
	headerRead bool
}

// New wraps src in a transaction reader.
func New(src io.Reader) *CSVReader {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	// Rows without an amount column are legal.
	r.FieldsPerRecord = -1
	return &CSVReader{r: r}
}

// Next returns the next transaction in the stream. It returns io.EOF when
// the input is exhausted and a descriptive error for each malformed row;
// callers are expected to skip those and keep reading.
func (c *CSVReader) Next() (models.Transaction, error) {
	if !c.headerRead {
		c.headerRead = true
		if _, err := c.r.Read(); err != nil {
			if err == io.EOF {
				return models.Transaction{}, io.EOF
			}
			return models.Transaction{}, fmt.Errorf("reading header: %w", err)
		}
	}

	record, err := c.r.Read()
	if err == io.EOF {
		return models.Transaction{}, io.EOF
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("reading row: %w", err)
	}

	return parseRecord(record)
}

func parseRecord(record []string) (models.Transaction, error) {
	if len(record) < 3 {
		return models.Transaction{}, fmt.Errorf("row has %d fields, want at least 3", len(record))
	}

	txType := models.TxType(strings.ToLower(strings.TrimSpace(record[0])))
	if !txType.Valid() {
		return models.Transaction{}, fmt.Errorf("unknown transaction type %q", record[0])
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid client id %q: %w", record[1], err)
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction id %q: %w", record[2], err)
	}

	tx := models.Transaction{
		Type:   txType,
		Client: uint16(client),
		TxID:   uint32(txID),
	}

	raw := ""
	if len(record) > 3 {
		raw = strings.TrimSpace(record[3])
	}

	switch txType {
	case models.TxDeposit, models.TxWithdrawal:
		if raw == "" {
			return models.Transaction{}, fmt.Errorf("%s row is missing an amount", txType)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		tx.Amount = amount
	default:
		// Dispute, resolve and chargeback reference a prior transaction;
		// any amount on the row is ignored.
	}

	return tx, nil
}
