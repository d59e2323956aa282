package engine

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/accounts"
	interfaces "github.com/sheikh-saqib/payments-transaction-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/models"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/models/events"
)

// TopicAccountLocked is the event topic for chargeback account freezes.
const TopicAccountLocked = "account_locked"

// TransactionSource yields transactions in arrival order. Next returns
// io.EOF when the stream is exhausted; any other error marks a corrupt
// record that the engine logs and skips.
type TransactionSource interface {
	Next() (models.Transaction, error)
}

// Engine is the account state machine. For each incoming transaction it
// looks up or creates the client's account, applies the transaction
// according to its type and the referenced prior transaction's dispute
// state, and updates the account balances.
//
// Policy violations (duplicate tx id, insufficient funds, disputes against
// unknown or wrongly-staged transactions, anything touching a locked
// account) are absorbed as silent no-ops: a bad record never halts the run,
// and its only observable effect is the missing balance change in the final
// snapshot.
type Engine struct {
	accounts *accounts.Manager
	ledger   interfaces.LedgerStore
	events   interfaces.EventPublisher
	log      *zap.Logger
}

// New wires an engine from its collaborators. events may be a no-op
// publisher; log may be zap.NewNop().
func New(accts *accounts.Manager, ledger interfaces.LedgerStore, publisher interfaces.EventPublisher, log *zap.Logger) *Engine {
	return &Engine{
		accounts: accts,
		ledger:   ledger,
		events:   publisher,
		log:      log,
	}
}

// Apply processes a single transaction. The returned error reports store
// failures only; policy violations are logged at warn level and absorbed.
func (e *Engine) Apply(ctx context.Context, tx models.Transaction) error {
	acc := e.accounts.Ensure(tx.Client)

	if acc.Locked {
		e.reject(tx, "account is locked")
		return nil
	}

	switch tx.Type {
	case models.TxDeposit:
		return e.deposit(ctx, tx)
	case models.TxWithdrawal:
		return e.withdraw(ctx, tx)
	case models.TxDispute:
		return e.dispute(ctx, tx)
	case models.TxResolve:
		return e.resolve(ctx, tx)
	case models.TxChargeback:
		return e.chargeback(ctx, tx)
	default:
		e.reject(tx, "unsupported transaction type")
		return nil
	}
}

func (e *Engine) deposit(ctx context.Context, tx models.Transaction) error {
	if !tx.Amount.IsPositive() {
		e.reject(tx, "amount must be positive")
		return nil
	}

	if _, exists, err := e.ledger.Find(ctx, tx.TxID); err != nil {
		return err
	} else if exists {
		e.reject(tx, "duplicate transaction id")
		return nil
	}

	if err := e.accounts.Deposit(tx.Client, tx.Amount); err != nil {
		e.reject(tx, err.Error())
		return nil
	}

	return e.ledger.Record(ctx, models.LedgerEntry{
		TxID:   tx.TxID,
		Client: tx.Client,
		Amount: tx.Amount,
		Kind:   models.EntryDeposit,
	})
}

func (e *Engine) withdraw(ctx context.Context, tx models.Transaction) error {
	if !tx.Amount.IsPositive() {
		e.reject(tx, "amount must be positive")
		return nil
	}

	if _, exists, err := e.ledger.Find(ctx, tx.TxID); err != nil {
		return err
	} else if exists {
		e.reject(tx, "duplicate transaction id")
		return nil
	}

	if err := e.accounts.Withdraw(tx.Client, tx.Amount); err != nil {
		e.reject(tx, err.Error())
		return nil
	}

	// Withdrawals are recorded too so they can themselves be disputed.
	return e.ledger.Record(ctx, models.LedgerEntry{
		TxID:   tx.TxID,
		Client: tx.Client,
		Amount: tx.Amount,
		Kind:   models.EntryWithdrawal,
	})
}

func (e *Engine) dispute(ctx context.Context, tx models.Transaction) error {
	entry, ok, err := e.resolveEntry(ctx, tx)
	if err != nil || !ok {
		return err
	}
	if entry.Disputed {
		e.reject(tx, "transaction already under dispute")
		return nil
	}

	// The hold applies with equal magnitude whether the disputed
	// transaction was a deposit or a withdrawal.
	if err := e.accounts.Hold(tx.Client, entry.Amount); err != nil {
		e.reject(tx, err.Error())
		return nil
	}

	return e.ledger.SetDisputed(ctx, tx.TxID, true)
}

func (e *Engine) resolve(ctx context.Context, tx models.Transaction) error {
	entry, ok, err := e.resolveEntry(ctx, tx)
	if err != nil || !ok {
		return err
	}
	if !entry.Disputed {
		e.reject(tx, "transaction is not under dispute")
		return nil
	}

	if err := e.accounts.Release(tx.Client, entry.Amount); err != nil {
		e.reject(tx, err.Error())
		return nil
	}

	return e.ledger.SetDisputed(ctx, tx.TxID, false)
}

func (e *Engine) chargeback(ctx context.Context, tx models.Transaction) error {
	entry, ok, err := e.resolveEntry(ctx, tx)
	if err != nil || !ok {
		return err
	}
	if !entry.Disputed {
		e.reject(tx, "transaction is not under dispute")
		return nil
	}

	if err := e.accounts.WithdrawHeld(tx.Client, entry.Amount); err != nil {
		e.reject(tx, err.Error())
		return nil
	}
	if err := e.accounts.Lock(tx.Client); err != nil {
		return err
	}

	// The ledger entry stays flagged disputed: a second chargeback or
	// resolve on the same id only ever meets a locked account.
	e.publishAccountLocked(tx.Client, tx.TxID, entry.Amount)
	return nil
}

// resolveEntry looks up the referenced transaction for a dispute, resolve or
// chargeback. ok=false means the record was rejected and already logged.
func (e *Engine) resolveEntry(ctx context.Context, tx models.Transaction) (models.LedgerEntry, bool, error) {
	entry, exists, err := e.ledger.Find(ctx, tx.TxID)
	if err != nil {
		return models.LedgerEntry{}, false, err
	}
	if !exists {
		e.reject(tx, "referenced transaction not found")
		return models.LedgerEntry{}, false, nil
	}
	if entry.Client != tx.Client {
		e.reject(tx, "referenced transaction belongs to a different client")
		return models.LedgerEntry{}, false, nil
	}
	return entry, true, nil
}

func (e *Engine) publishAccountLocked(client uint16, txID uint32, amount decimal.Decimal) {
	event := events.AccountLocked{
		EventID:    uuid.New().String(),
		Client:     client,
		TxID:       txID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}

	if err := e.events.Publish(TopicAccountLocked, event); err != nil {
		e.log.Warn("failed to publish account_locked event",
			zap.Uint16("client", client),
			zap.Uint32("tx", txID),
			zap.Error(err),
		)
	}
}

func (e *Engine) reject(tx models.Transaction, reason string) {
	e.log.Warn("transaction rejected",
		zap.String("type", string(tx.Type)),
		zap.Uint16("client", tx.Client),
		zap.Uint32("tx", tx.TxID),
		zap.String("reason", reason),
	)
}

// ProcessAll drains the source, applying every well-formed transaction in
// order. Corrupt records are logged and skipped. Store failures abort the
// run.
func (e *Engine) ProcessAll(ctx context.Context, src TransactionSource) error {
	for {
		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			e.log.Error("encountered corrupt transaction", zap.Error(err))
			continue
		}

		e.log.Debug("processing transaction",
			zap.String("type", string(tx.Type)),
			zap.Uint16("client", tx.Client),
			zap.Uint32("tx", tx.TxID),
		)

		if err := e.Apply(ctx, tx); err != nil {
			return err
		}
	}
}

// Snapshot returns the final balance summary, one row per known account,
// sorted by client id.
func (e *Engine) Snapshot() []models.Snapshot {
	accts := e.accounts.All()
	rows := make([]models.Snapshot, 0, len(accts))
	for _, acc := range accts {
		rows = append(rows, models.Snapshot{
			Client:    acc.Client,
			Available: acc.Available,
			Held:      acc.Held,
			Total:     acc.Total(),
			Locked:    acc.Locked,
		})
	}
	return rows
}
