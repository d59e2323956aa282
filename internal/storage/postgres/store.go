package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	interfaces "github.com/sheikh-saqib/payments-transaction-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
)

// PostgresLedgerStore persists ledger entries in a postgres table. Schema:
//
//	CREATE TABLE ledger_entries (
//	    tx_id    BIGINT PRIMARY KEY,
//	    client   INTEGER NOT NULL,
//	    amount   NUMERIC NOT NULL,
//	    kind     TEXT NOT NULL,
//	    disputed BOOLEAN NOT NULL DEFAULT FALSE
//	);
type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

func (p *PostgresLedgerStore) Record(ctx context.Context, entry models.LedgerEntry) error {
	const query = `INSERT INTO ledger_entries (tx_id, client, amount, kind, disputed)
	VALUES ($1, $2, $3, $4, $5)`

	_, err := p.db.ExecContext(ctx, query, entry.TxID, entry.Client, entry.Amount, entry.Kind, entry.Disputed)
	if err != nil {
		return fmt.Errorf("recording transaction %d: %w", entry.TxID, err)
	}
	return nil
}

func (p *PostgresLedgerStore) Find(ctx context.Context, txID uint32) (models.LedgerEntry, bool, error) {
	const query = `SELECT tx_id, client, amount, kind, disputed FROM ledger_entries
	WHERE tx_id = $1`

	var entry models.LedgerEntry
	err := p.db.QueryRowContext(ctx, query, txID).Scan(
		&entry.TxID,
		&entry.Client,
		&entry.Amount,
		&entry.Kind,
		&entry.Disputed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerEntry{}, false, nil
	}
	if err != nil {
		return models.LedgerEntry{}, false, err
	}

	return entry, true, nil
}

func (p *PostgresLedgerStore) SetDisputed(ctx context.Context, txID uint32, disputed bool) error {
	const query = `UPDATE ledger_entries SET disputed = $2 WHERE tx_id = $1`

	_, err := p.db.ExecContext(ctx, query, txID, disputed)
	return err
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
