package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sheikh-saqib/payments-transaction-engine/internal/accounts"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/config"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/engine"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/events"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/payments-transaction-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/reader"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/storage/memory"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/storage/postgres"
	"github.com/sheikh-saqib/payments-transaction-engine/internal/writer"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	txFile, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, cleanup, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	publisher, pubCleanup := newPublisher(cfg)
	defer pubCleanup()

	file, err := os.Open(txFile)
	if err != nil {
		return fmt.Errorf("opening transaction file: %w", err)
	}
	defer file.Close()

	log.Info("processing transaction file", zap.String("file", txFile))

	eng := engine.New(accounts.NewManager(), store, publisher, log)
	if err := eng.ProcessAll(context.Background(), reader.New(file)); err != nil {
		return err
	}

	return writer.WriteCSV(os.Stdout, eng.Snapshot())
}

func parseArgs(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: %s <transactions.csv>", args[0])
	}
	return args[1], nil
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	// Stdout carries the snapshot; diagnostics go to stderr only.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newStore(cfg config.Config) (interfaces.LedgerStore, func(), error) {
	if cfg.Store == config.StorePostgres {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("pinging postgres: %w", err)
		}
		return postgres.NewPostgresLedgerStore(db), func() { db.Close() }, nil
	}

	return memory.NewMemoryLedgerStore(), func() {}, nil
}

func newPublisher(cfg config.Config) (interfaces.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NopPublisher{}, func() {}
	}

	p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	return p, func() { p.Close() }
}
