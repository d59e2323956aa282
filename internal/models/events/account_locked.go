package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountLocked is published when a chargeback freezes an account.
type AccountLocked struct {
	EventID    string          `json:"event_id"`
	Client     uint16          `json:"client"`
	TxID       uint32          `json:"tx_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}
