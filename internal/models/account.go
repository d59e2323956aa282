package models

import "github.com/shopspring/decimal"

// Account holds the per-client balance state. Created lazily on the first
// transaction that references the client, never deleted.
type Account struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount returns a zero-balance, unlocked account for the client.
func NewAccount(client uint16) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is the invariant sum of available and held funds.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Snapshot is one row of the final per-client balance summary.
type Snapshot struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
