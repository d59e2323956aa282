package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

// decimalPlaces is the fixed precision of rendered balance fields.
const decimalPlaces = 4

// WriteCSV renders the final balance summary as CSV with the header
// "client,available,held,total,locked". Amounts carry exactly four
// fractional digits.
func WriteCSV(w io.Writer, rows []models.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.StringFixed(decimalPlaces),
			row.Held.StringFixed(decimalPlaces),
			row.Total.StringFixed(decimalPlaces),
			strconv.FormatBool(row.Locked),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row for client %d: %w", row.Client, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
