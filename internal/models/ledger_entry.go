package models

import "github.com/shopspring/decimal"

// EntryKind classifies a ledger entry. Only deposits and withdrawals are
// recorded; they are the only transactions that can later be disputed.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
)

// LedgerEntry is the retained record of an applied deposit or withdrawal,
// keyed by its globally-unique transaction id. The Disputed flag tracks the
// dispute lifecycle; entries persist for the run so a charged-back
// transaction can never be disputed again.
type LedgerEntry struct {
	TxID     uint32
	Client   uint16
	Amount   decimal.Decimal
	Kind     EntryKind
	Disputed bool
}
