package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

func TestApplyPayment_InterestOnlyThenSettlement(t *testing.T) {
	l := sampleLoan(t)

	before := ledger.ComputeStats([]ledger.Loan{l}, nil, date(2024, 1, 15))
	assert.Equal(t, int64(5000), before.InterestPending)

	applied, err := ledger.ApplyPayment(l, 5000, true, date(2024, 1, 15))
	require.NoError(t, err)

	l = applied.Loan
	assert.Equal(t, int64(5000), l.AmountPaid)
	assert.Equal(t, date(2024, 2, 10), l.DueDate)
	assert.Equal(t, date(2023, 12, 10), l.StartDate)
	assert.Equal(t, ledger.StatusActive, ledger.Classify(l, date(2024, 1, 15)))
	assert.Equal(t, ledger.KindInterest, applied.Payment.Kind)
	assert.Equal(t, date(2024, 1, 15), applied.Payment.Date)

	after := ledger.ComputeStats([]ledger.Loan{l}, nil, date(2024, 1, 15))
	assert.Equal(t, int64(0), after.InterestPending)
	assert.Equal(t, int64(100000), after.PrincipalOut)

	applied, err = ledger.ApplyPayment(l, 100000, false, date(2024, 2, 20))
	require.NoError(t, err)

	l = applied.Loan
	assert.Equal(t, int64(105000), l.AmountPaid)
	assert.Equal(t, l.TotalToReceive, l.AmountPaid)
	assert.Equal(t, date(2024, 2, 10), l.DueDate)
	assert.Equal(t, ledger.StatusSettled, ledger.Classify(l, date(2024, 2, 20)))
	assert.Equal(t, int64(0), l.RemainingBalance())
	assert.Equal(t, 100.0, l.ProgressPercent())
	assert.True(t, l.Consistent())
}

func TestApplyPayment_EmitsReceipt(t *testing.T) {
	l := sampleLoan(t)

	type testCase struct {
		name         string
		interestOnly bool
		wantDesc     string
	}

	tests := []testCase{
		{name: "Interest", interestOnly: true, wantDesc: "Juros: João Silva"},
		{name: "Amortization", interestOnly: false, wantDesc: "Amortização: João Silva"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied, err := ledger.ApplyPayment(l, 2500, tt.interestOnly, date(2024, 1, 5))
			require.NoError(t, err)

			tx := applied.Transaction
			assert.Equal(t, int64(2500), tx.Amount)
			assert.Equal(t, transaction.DirectionIn, tx.Direction)
			assert.Equal(t, transaction.CategoryReceipt, tx.Category)
			assert.Equal(t, transaction.StatusSettled, tx.Status)
			assert.Equal(t, tt.wantDesc, tx.Description)
			assert.Equal(t, date(2024, 1, 5), tx.Date)
			require.NotNil(t, tx.LoanID)
			assert.Equal(t, l.ID, *tx.LoanID)
		})
	}
}

func TestApplyPayment_LeapYearRollover(t *testing.T) {
	l := sampleLoan(t)
	l.DueDate = date(2024, 1, 31)

	l = pay(t, l, 5000, true, date(2024, 1, 20))
	assert.Equal(t, date(2024, 2, 29), l.DueDate)
}

func TestApplyPayment_AmortizationKeepsDueDate(t *testing.T) {
	l := sampleLoan(t)

	l = pay(t, l, 30000, false, date(2024, 1, 5))
	assert.Equal(t, date(2024, 1, 10), l.DueDate)
	assert.Equal(t, int64(30000), l.PrincipalPaid())
	assert.Equal(t, int64(70000), l.PrincipalOutstanding())
}

func TestApplyPayment_Rejections(t *testing.T) {
	settled := sampleLoan(t)
	settled = pay(t, settled, 105000, false, date(2024, 1, 5))

	partlyPaid := pay(t, sampleLoan(t), 5000, true, date(2024, 1, 5))

	type args struct {
		loan  ledger.Loan
		value int64
	}

	type testCase struct {
		name    string
		args    args
		wantErr error
	}

	tests := []testCase{
		{name: "ZeroAmount", args: args{loan: sampleLoan(t), value: 0}, wantErr: ledger.ErrInvalidPaymentAmount},
		{name: "NegativeAmount", args: args{loan: sampleLoan(t), value: -100}, wantErr: ledger.ErrInvalidPaymentAmount},
		{name: "Settled", args: args{loan: settled, value: 100}, wantErr: ledger.ErrLoanSettled},
		{name: "OverflowsAmountPaid", args: args{loan: partlyPaid, value: math.MaxInt64}, wantErr: ledger.ErrInvalidPaymentAmount},
		{name: "OverflowsByOne", args: args{loan: partlyPaid, value: math.MaxInt64 - 4999}, wantErr: ledger.ErrInvalidPaymentAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := tt.args.loan
			snapshot.Payments = append([]ledger.Payment(nil), tt.args.loan.Payments...)

			got, err := ledger.ApplyPayment(tt.args.loan, tt.args.value, false, date(2024, 2, 1))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, ledger.Applied{}, got)
			assert.Equal(t, snapshot, tt.args.loan)
		})
	}
}

func TestApplyPayment_DoesNotMutateInput(t *testing.T) {
	l := sampleLoan(t)
	l = pay(t, l, 5000, true, date(2024, 1, 5))

	original := l
	originalPayments := append([]ledger.Payment(nil), l.Payments...)

	_, err := ledger.ApplyPayment(l, 1000, true, date(2024, 1, 6))
	require.NoError(t, err)

	assert.Equal(t, original.AmountPaid, l.AmountPaid)
	assert.Equal(t, original.DueDate, l.DueDate)
	assert.Equal(t, originalPayments, l.Payments)
}

func TestApplyPayment_Monotonic(t *testing.T) {
	l := sampleLoan(t)

	payments := []struct {
		value        int64
		interestOnly bool
	}{
		{5000, true},
		{20000, false},
		{5000, true},
		{40000, false},
		{35000, false},
	}

	day := date(2024, 1, 1)

	for _, p := range payments {
		prevPaid, prevProgress := l.AmountPaid, l.ProgressPercent()

		l = pay(t, l, p.value, p.interestOnly, day)

		assert.Greater(t, l.AmountPaid, prevPaid)
		assert.GreaterOrEqual(t, l.ProgressPercent(), prevProgress)
		assert.True(t, l.Consistent())

		day = day.AddDate(0, 0, 7)
	}

	assert.Equal(t, ledger.StatusSettled, ledger.Classify(l, day))
	assert.Len(t, l.Payments, len(payments))
}

func TestApplyPayment_LargestPaymentThatFits(t *testing.T) {
	l := pay(t, sampleLoan(t), 5000, true, date(2024, 1, 5))

	applied, err := ledger.ApplyPayment(l, math.MaxInt64-l.AmountPaid, false, date(2024, 1, 16))
	require.NoError(t, err)

	assert.Equal(t, int64(math.MaxInt64), applied.Loan.AmountPaid)
	assert.Greater(t, applied.Loan.AmountPaid, l.AmountPaid)
	assert.Equal(t, ledger.StatusSettled, ledger.Classify(applied.Loan, date(2024, 1, 16)))
	assert.Equal(t, 100.0, applied.Loan.ProgressPercent())
}
