package accounts

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

// Manager owns every client account and performs the balance mutations the
// engine asks for. Accounts are created lazily via Ensure and live for the
// whole run.
type Manager struct {
	accounts map[uint16]*models.Account
}

// NewManager returns an empty account registry.
func NewManager() *Manager {
	return &Manager{
		accounts: make(map[uint16]*models.Account),
	}
}

// Ensure returns the account for client, creating it if this is the first
// transaction referencing that client.
func (m *Manager) Ensure(client uint16) *models.Account {
	acc, ok := m.accounts[client]
	if !ok {
		acc = models.NewAccount(client)
		m.accounts[client] = acc
	}
	return acc
}

// Get returns the account for client if it exists.
func (m *Manager) Get(client uint16) (*models.Account, bool) {
	acc, ok := m.accounts[client]
	return acc, ok
}

// Deposit adds amount to the client's available funds.
func (m *Manager) Deposit(client uint16, amount decimal.Decimal) error {
	acc, ok := m.accounts[client]
	if !ok {
		return fmt.Errorf("account for client %d not found", client)
	}

	acc.Available = acc.Available.Add(amount)
	return nil
}

// Withdraw removes amount from the client's available funds. It fails when
// available funds are insufficient; there is no partial withdrawal.
func (m *Manager) Withdraw(client uint16, amount decimal.Decimal) error {
	acc, ok := m.accounts[client]
	if !ok {
		return fmt.Errorf("account for client %d not found", client)
	}
	if acc.Available.LessThan(amount) {
		return fmt.Errorf("available amount is too low")
	}

	acc.Available = acc.Available.Sub(amount)
	return nil
}

// Hold moves amount from available to held while a dispute is open. The move
// is unconditional: available funds may go negative when a withdrawal was
// applied before the dispute on an earlier deposit arrived.
func (m *Manager) Hold(client uint16, amount decimal.Decimal) error {
	acc, ok := m.accounts[client]
	if !ok {
		return fmt.Errorf("account for client %d not found", client)
	}

	acc.Available = acc.Available.Sub(amount)
	acc.Held = acc.Held.Add(amount)
	return nil
}

// Release moves amount back from held to available, undoing a hold.
func (m *Manager) Release(client uint16, amount decimal.Decimal) error {
	acc, ok := m.accounts[client]
	if !ok {
		return fmt.Errorf("account for client %d not found", client)
	}
	if acc.Held.LessThan(amount) {
		return fmt.Errorf("held amount is too low")
	}

	acc.Held = acc.Held.Sub(amount)
	acc.Available = acc.Available.Add(amount)
	return nil
}

// WithdrawHeld removes amount from held funds, the chargeback reversal.
func (m *Manager) WithdrawHeld(client uint16, amount decimal.Decimal) error {
	acc, ok := m.accounts[client]
	if !ok {
		return fmt.Errorf("account for client %d not found", client)
	}
	if acc.Held.LessThan(amount) {
		return fmt.Errorf("held amount is too low")
	}

	acc.Held = acc.Held.Sub(amount)
	return nil
}

// Lock freezes the client's account permanently.
func (m *Manager) Lock(client uint16) error {
	acc, ok := m.accounts[client]
	if !ok {
		return fmt.Errorf("account for client %d not found", client)
	}

	acc.Locked = true
	return nil
}

// All returns every known account, sorted by client id so snapshots render
// deterministically.
func (m *Manager) All() []*models.Account {
	out := make([]*models.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}
