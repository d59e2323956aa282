package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEDGER_STORE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "account_locked", cfg.KafkaTopic)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("LEDGER_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("LEDGER_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ledger")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("LEDGER_STORE", "cassandra")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadSplitsKafkaBrokers(t *testing.T) {
	t.Setenv("LEDGER_STORE", "")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}
