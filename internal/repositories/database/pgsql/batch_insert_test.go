package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiRowInsert(t *testing.T) {
	query, args, err := multiRowInsert("journal_entries", []string{"journal_id", "account_id", "debit", "credit"}, [][]any{
		{int64(1), int64(10), "100", "0"},
		{int64(1), int64(20), "0", "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO journal_entries (journal_id, account_id, debit, credit) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8)", query)
	assert.Equal(t, []any{int64(1), int64(10), "100", "0", int64(1), int64(20), "0", "100"}, args)
}

func TestMultiRowInsert_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
	}{
		{"no rows", nil},
		{"short row", [][]any{{1, 2}, {1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := multiRowInsert("t", []string{"a", "b"}, tt.rows)
			assert.Error(t, err)
		})
	}
}
