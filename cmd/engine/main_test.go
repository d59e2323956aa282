package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsReturnsTransactionFile(t *testing.T) {
	file, err := parseArgs([]string{"app", "transactions.csv"})

	require.NoError(t, err)
	assert.Equal(t, "transactions.csv", file)
}

func TestParseArgsErrorsWithoutTransactionFile(t *testing.T) {
	_, err := parseArgs([]string{"app"})

	assert.Error(t, err)
}
