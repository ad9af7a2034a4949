package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// sampleLoan is 1000.00 lent at 5% for 1050.00, due 2024-01-10.
func sampleLoan(t *testing.T) ledger.Loan {
	t.Helper()

	l, err := ledger.NewLoan(ledger.LoanParams{
		ClientID:       uuid.New(),
		ClientName:     "João Silva",
		Amount:         100000,
		InterestRate:   decimal.NewFromInt(5),
		TotalToReceive: 105000,
		StartDate:      date(2023, 12, 10),
		DueDate:        date(2024, 1, 10),
	})
	require.NoError(t, err)

	return l
}

func pay(t *testing.T, l ledger.Loan, value int64, interestOnly bool, today time.Time) ledger.Loan {
	t.Helper()

	applied, err := ledger.ApplyPayment(l, value, interestOnly, today)
	require.NoError(t, err)

	return applied.Loan
}
