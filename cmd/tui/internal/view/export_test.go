package view

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/credito/internal/export"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

func TestWriteStatement(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	st := &export.Statement{
		Transactions: []*transaction.Transaction{{
			Amount:      5000,
			Direction:   transaction.DirectionIn,
			Status:      transaction.StatusSettled,
			Category:    transaction.CategoryReceipt,
			Description: "Juros: Ana",
			Date:        day(2024, 3, 10),
		}},
		Totals: transaction.Totals{In: 5000, Net: 5000},
	}

	path, err := writeStatement(dir, st, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fluxo_de_caixa_20240331.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Juros: Ana")
}
