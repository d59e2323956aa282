package memory

import (
	"context"
	"fmt"
	"sync"

	interfaces "github.com/sheikh-saqib/payments-transaction-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

// MemoryLedgerStore is the in-memory implementation of interfaces.LedgerStore.
// Entries live in a map keyed by transaction id and are never removed.
type MemoryLedgerStore struct {
	mu      sync.Mutex // protects entries from concurrent access
	entries map[uint32]models.LedgerEntry
}

// NewMemoryLedgerStore creates and returns a new MemoryLedgerStore instance.
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		entries: make(map[uint32]models.LedgerEntry),
	}
}

// Record stores a new ledger entry. Transaction ids are unique, so a
// duplicate id is rejected with an error.
func (m *MemoryLedgerStore) Record(ctx context.Context, entry models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[entry.TxID]; exists {
		return fmt.Errorf("transaction %d already recorded", entry.TxID)
	}

	m.entries[entry.TxID] = entry
	return nil
}

// Find returns the entry for txID, or ok=false if it was never recorded.
func (m *MemoryLedgerStore) Find(ctx context.Context, txID uint32) (models.LedgerEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[txID]
	return entry, ok, nil
}

// SetDisputed flips the dispute flag on an existing entry. Unknown ids are
// a no-op.
func (m *MemoryLedgerStore) SetDisputed(ctx context.Context, txID uint32, disputed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[txID]
	if !ok {
		return nil
	}

	entry.Disputed = disputed
	m.entries[txID] = entry
	return nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore.
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
