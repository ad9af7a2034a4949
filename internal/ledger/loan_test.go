package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

func TestNewLoan(t *testing.T) {
	valid := ledger.LoanParams{
		ClientID:     uuid.New(),
		ClientName:   "Maria Oliveira",
		Amount:       50000,
		InterestRate: decimal.NewFromInt(10),
		StartDate:    date(2024, 1, 1),
		DueDate:      date(2024, 2, 1),
	}

	type testCase struct {
		name      string
		mutate    func(p *ledger.LoanParams)
		wantTotal int64
		wantErr   error
	}

	tests := []testCase{
		{name: "DefaultTotal", wantTotal: 55000},
		{name: "ExplicitTotal", mutate: func(p *ledger.LoanParams) { p.TotalToReceive = 60000 }, wantTotal: 60000},
		{name: "ZeroRate", mutate: func(p *ledger.LoanParams) { p.InterestRate = decimal.Zero }, wantTotal: 50000},
		{name: "ZeroAmount", mutate: func(p *ledger.LoanParams) { p.Amount = 0 }, wantErr: ledger.ErrInvalidLoan},
		{name: "NegativeRate", mutate: func(p *ledger.LoanParams) { p.InterestRate = decimal.NewFromInt(-1) }, wantErr: ledger.ErrInvalidLoan},
		{name: "MissingClient", mutate: func(p *ledger.LoanParams) { p.ClientName = " " }, wantErr: ledger.ErrInvalidLoan},
		{name: "DueBeforeStart", mutate: func(p *ledger.LoanParams) { p.DueDate = date(2023, 12, 1) }, wantErr: ledger.ErrInvalidLoan},
		{name: "TotalBelowPrincipal", mutate: func(p *ledger.LoanParams) { p.TotalToReceive = 100 }, wantErr: ledger.ErrInvalidLoan},
		{name: "NegativeTotal", mutate: func(p *ledger.LoanParams) { p.TotalToReceive = -1 }, wantErr: ledger.ErrDegenerateContract},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			if tt.mutate != nil {
				tt.mutate(&p)
			}

			got, err := ledger.NewLoan(p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.wantTotal, got.TotalToReceive)
			assert.Zero(t, got.AmountPaid)
			assert.Empty(t, got.Payments)
		})
	}
}

func TestDisbursement(t *testing.T) {
	l := sampleLoan(t)

	tx := ledger.Disbursement(l)
	assert.Equal(t, int64(100000), tx.Amount)
	assert.Equal(t, transaction.DirectionOut, tx.Direction)
	assert.Equal(t, transaction.CategoryLoans, tx.Category)
	assert.Equal(t, "Empréstimo Liberado: João Silva", tx.Description)
	assert.Equal(t, l.StartDate, tx.Date)
}

func TestLoan_DerivedFigures(t *testing.T) {
	l := sampleLoan(t)

	assert.Equal(t, int64(5000), l.SuggestedInterestPayment())
	assert.Equal(t, int64(105000), l.SuggestedSettlementPayment())
	assert.Equal(t, 0.0, l.ProgressPercent())

	l = pay(t, l, 5000, true, date(2024, 1, 5))
	l = pay(t, l, 47500, false, date(2024, 2, 5))

	assert.Equal(t, int64(5000), l.InterestPaid())
	assert.Equal(t, int64(47500), l.PrincipalPaid())
	assert.Equal(t, int64(52500), l.RemainingBalance())
	assert.Equal(t, int64(52500), l.PrincipalOutstanding())
	assert.Equal(t, int64(0), l.InterestOutstanding())
	assert.InDelta(t, 50.0, l.ProgressPercent(), 0.0001)
}

func TestLoan_ProgressPercentGuards(t *testing.T) {
	assert.Equal(t, 0.0, ledger.Loan{}.ProgressPercent())
	assert.Equal(t, 100.0, ledger.Loan{TotalToReceive: 100, AmountPaid: 250}.ProgressPercent())
}

func TestLoan_OutstandingNeverNegative(t *testing.T) {
	l := ledger.Loan{
		Amount:         1000,
		TotalToReceive: 1100,
		AmountPaid:     1500,
		Payments: []ledger.Payment{
			{Value: 1200, Kind: ledger.KindPrincipal},
			{Value: 300, Kind: ledger.KindInterest},
		},
	}

	assert.Equal(t, int64(0), l.PrincipalOutstanding())
	assert.Equal(t, int64(0), l.InterestOutstanding())
	assert.Equal(t, int64(0), l.SuggestedSettlementPayment())
	assert.Equal(t, int64(-400), l.RemainingBalance())
}

func TestLoan_History(t *testing.T) {
	l := ledger.Loan{
		TotalToReceive: 105000,
		Payments: []ledger.Payment{
			{ID: uuid.New(), Date: date(2024, 3, 10), Value: 40000, Kind: ledger.KindPrincipal},
			{ID: uuid.New(), Date: date(2024, 1, 10), Value: 5000, Kind: ledger.KindInterest},
			{ID: uuid.New(), Date: date(2024, 2, 10), Value: 30000, Kind: ledger.KindPrincipal},
			{ID: uuid.New(), Date: date(2024, 2, 10), Value: 5000, Kind: ledger.KindInterest},
		},
	}

	got := l.History()
	require.Len(t, got, 4)

	// Most recent first; the two 2024-02-10 entries keep insertion order when
	// computed ascending, so they come out reversed.
	assert.Equal(t, l.Payments[0], got[0].Payment)
	assert.Equal(t, int64(35000), got[0].BalanceAfter)

	assert.Equal(t, l.Payments[3], got[1].Payment)
	assert.Equal(t, int64(75000), got[1].BalanceAfter)

	assert.Equal(t, l.Payments[2], got[2].Payment)
	assert.Equal(t, int64(75000), got[2].BalanceAfter)

	assert.Equal(t, l.Payments[1], got[3].Payment)
	assert.Equal(t, int64(105000), got[3].BalanceAfter)
}

func TestLoan_HistoryEmpty(t *testing.T) {
	assert.Empty(t, ledger.Loan{TotalToReceive: 100}.History())
}
