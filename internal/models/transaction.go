package models

import "github.com/shopspring/decimal"

// TxType identifies what effect a transaction has on an account.
type TxType string

const (
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxDispute    TxType = "dispute"
	TxResolve    TxType = "resolve"
	TxChargeback TxType = "chargeback"
)

// Valid reports whether t is one of the supported transaction types.
func (t TxType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxDispute, TxResolve, TxChargeback:
		return true
	}
	return false
}

// Transaction is a single input record from the transaction stream.
// Amount is only meaningful for deposits and withdrawals; dispute, resolve
// and chargeback reference a prior transaction by TxID and carry no amount.
type Transaction struct {
	Type   TxType
	Client uint16
	TxID   uint32
	Amount decimal.Decimal
}
