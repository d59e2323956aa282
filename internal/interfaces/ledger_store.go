package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

// LedgerStore persists the per-transaction history that disputes are
// resolved against. Entries are keyed by transaction id and never removed.
type LedgerStore interface {
	// Record stores a new entry. Transaction ids are unique, so recording
	// an id that already exists is an internal inconsistency error.
	Record(ctx context.Context, entry models.LedgerEntry) error
	// Find returns the entry for txID, or ok=false if it was never recorded.
	Find(ctx context.Context, txID uint32) (models.LedgerEntry, bool, error)
	// SetDisputed flips the dispute flag on an existing entry. Unknown ids
	// are a no-op.
	SetDisputed(ctx context.Context, txID uint32, disputed bool) error
}
