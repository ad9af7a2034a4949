package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/credito/internal/client"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/loan"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fixture struct {
	repo    *loan.MockRepository
	ptx     *loan.MockPaymentTx
	clients *loan.MockClientDirectory
	svc     *loan.Service
}

func newFixture(t *testing.T, today time.Time) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    loan.NewMockRepository(ctrl),
		ptx:     loan.NewMockPaymentTx(ctrl),
		clients: loan.NewMockClientDirectory(ctrl),
	}
	f.svc = loan.NewService(f.repo, f.clients, decimal.NewFromInt(5), clockAt(today))

	return f
}

func openLoan() *ledger.Loan {
	return &ledger.Loan{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		ClientName:     "João Silva",
		Amount:         100000,
		InterestRate:   decimal.NewFromInt(5),
		TotalToReceive: 105000,
		StartDate:      date(2023, 12, 10),
		DueDate:        date(2024, 1, 10),
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture(t, date(2024, 1, 15))

	c := &client.Client{ID: uuid.New(), Name: "Maria Oliveira"}

	f.clients.EXPECT().GetClient(gomock.Any(), c.ID).Return(c, nil)
	f.repo.EXPECT().
		CreateLoan(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *ledger.Loan, tx *transaction.Transaction) error {
			assert.Equal(t, "Maria Oliveira", l.ClientName)
			assert.Equal(t, int64(105000), l.TotalToReceive)
			assert.Equal(t, date(2024, 1, 15), l.StartDate)
			assert.Equal(t, date(2024, 2, 15), l.DueDate)

			assert.Equal(t, transaction.DirectionOut, tx.Direction)
			assert.Equal(t, transaction.CategoryLoans, tx.Category)
			assert.Equal(t, int64(100000), tx.Amount)
			require.NotNil(t, tx.LoanID)
			assert.Equal(t, l.ID, *tx.LoanID)

			return nil
		})

	got, err := f.svc.Create(context.Background(), loan.CreateParams{ClientID: c.ID, Amount: 100000})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusActive, got.Status)
	assert.Equal(t, int64(5000), got.SuggestedInterest)
	assert.Equal(t, int64(105000), got.SuggestedSettlement)
}

func TestService_Create_Errors(t *testing.T) {
	type testCase struct {
		name      string
		params    loan.CreateParams
		setupMock func(f fixture, c *client.Client)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "ClientNotFound",
			params: loan.CreateParams{Amount: 1000},
			setupMock: func(f fixture, _ *client.Client) {
				f.clients.EXPECT().GetClient(gomock.Any(), gomock.Any()).Return(nil, client.ErrNotFound)
			},
			wantErr: client.ErrNotFound,
		},
		{
			name:   "InvalidAmount",
			params: loan.CreateParams{Amount: 0},
			setupMock: func(f fixture, c *client.Client) {
				f.clients.EXPECT().GetClient(gomock.Any(), gomock.Any()).Return(c, nil)
			},
			wantErr: ledger.ErrInvalidLoan,
		},
		{
			name:   "RepoError",
			params: loan.CreateParams{Amount: 1000, InterestRate: new(decimal.NewFromInt(10))},
			setupMock: func(f fixture, c *client.Client) {
				f.clients.EXPECT().GetClient(gomock.Any(), gomock.Any()).Return(c, nil)
				f.repo.EXPECT().CreateLoan(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, date(2024, 1, 15))
			c := &client.Client{ID: uuid.New(), Name: "Maria Oliveira"}
			tt.setupMock(f, c)

			got, err := f.svc.Create(context.Background(), tt.params)
			assert.Error(t, err)
			assert.Nil(t, got)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_RegisterPayment_InterestOnly(t *testing.T) {
	f := newFixture(t, date(2024, 1, 15))
	l := openLoan()

	f.repo.EXPECT().BeginPayment(gomock.Any(), l.ID).Return(f.ptx, nil)
	f.ptx.EXPECT().GetLoan(gomock.Any()).Return(l, nil)
	f.ptx.EXPECT().
		RecordPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, applied ledger.Applied) error {
			assert.Equal(t, int64(5000), applied.Loan.AmountPaid)
			assert.Equal(t, date(2024, 2, 10), applied.Loan.DueDate)
			assert.Len(t, applied.Loan.Payments, 1)
			assert.Equal(t, ledger.KindInterest, applied.Payment.Kind)
			assert.Equal(t, "Juros: João Silva", applied.Transaction.Description)

			return nil
		})
	f.ptx.EXPECT().Commit().Return(nil)
	f.ptx.EXPECT().Rollback().Return(nil)

	got, err := f.svc.RegisterPayment(context.Background(), loan.PaymentRequest{
		LoanID:       l.ID,
		Value:        5000,
		InterestOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusActive, got.View.Status)
	assert.Equal(t, int64(5000), got.View.Loan.AmountPaid)
	assert.Equal(t, int64(100000), got.View.RemainingBalance)
	assert.Equal(t, transaction.CategoryReceipt, got.Transaction.Category)

	// The loan handed out by the store is untouched.
	assert.Zero(t, l.AmountPaid)
}

func TestService_RegisterPayment_InvalidAmount(t *testing.T) {
	f := newFixture(t, date(2024, 1, 15))

	got, err := f.svc.RegisterPayment(context.Background(), loan.PaymentRequest{LoanID: uuid.New(), Value: 0})
	assert.ErrorIs(t, err, ledger.ErrInvalidPaymentAmount)
	assert.Nil(t, got)
}

func TestService_RegisterPayment_Failures(t *testing.T) {
	settled := openLoan()
	settled.AmountPaid = settled.TotalToReceive
	settled.Payments = []ledger.Payment{{ID: uuid.New(), Value: settled.TotalToReceive, Kind: ledger.KindPrincipal}}

	type testCase struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "BeginFails",
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginPayment(gomock.Any(), gomock.Any()).Return(nil, errors.New("lock timeout"))
			},
		},
		{
			name: "LoanNotFound",
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginPayment(gomock.Any(), gomock.Any()).Return(f.ptx, nil)
				f.ptx.EXPECT().GetLoan(gomock.Any()).Return(nil, loan.ErrNotFound)
				f.ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr: loan.ErrNotFound,
		},
		{
			name: "AlreadySettled",
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginPayment(gomock.Any(), gomock.Any()).Return(f.ptx, nil)
				f.ptx.EXPECT().GetLoan(gomock.Any()).Return(settled, nil)
				f.ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrLoanSettled,
		},
		{
			name: "RecordFails",
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginPayment(gomock.Any(), gomock.Any()).Return(f.ptx, nil)
				f.ptx.EXPECT().GetLoan(gomock.Any()).Return(openLoan(), nil)
				f.ptx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				f.ptx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "CommitFails",
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginPayment(gomock.Any(), gomock.Any()).Return(f.ptx, nil)
				f.ptx.EXPECT().GetLoan(gomock.Any()).Return(openLoan(), nil)
				f.ptx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(nil)
				f.ptx.EXPECT().Commit().Return(errors.New("serialization failure"))
				f.ptx.EXPECT().Rollback().Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, date(2024, 1, 15))
			tt.setupMock(f)

			got, err := f.svc.RegisterPayment(context.Background(), loan.PaymentRequest{LoanID: uuid.New(), Value: 1000})
			assert.Error(t, err)
			assert.Nil(t, got)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_RegisterPayments(t *testing.T) {
	f := newFixture(t, date(2024, 1, 15))
	l := openLoan()

	f.repo.EXPECT().BeginPayment(gomock.Any(), l.ID).Return(f.ptx, nil)
	f.ptx.EXPECT().GetLoan(gomock.Any()).Return(l, nil)
	f.ptx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(nil)
	f.ptx.EXPECT().Commit().Return(nil)
	f.ptx.EXPECT().Rollback().Return(nil)

	results := f.svc.RegisterPayments(context.Background(), []loan.PaymentRequest{
		{LoanID: l.ID, Value: -10},
		{LoanID: l.ID, Value: 20000},
	})
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, ledger.ErrInvalidPaymentAmount)
	assert.Nil(t, results[0].Receipt)

	require.NoError(t, results[1].Err)
	assert.Equal(t, int64(20000), results[1].Receipt.View.PrincipalPaid)
}

func TestService_Get(t *testing.T) {
	f := newFixture(t, date(2024, 3, 1))
	l := openLoan()

	f.repo.EXPECT().GetLoan(gomock.Any(), l.ID).Return(l, nil)

	got, err := f.svc.Get(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusLate, got.Status)
	assert.Equal(t, int64(105000), got.RemainingBalance)
	assert.Empty(t, got.History)
}

func TestService_Get_NotFound(t *testing.T) {
	f := newFixture(t, date(2024, 3, 1))

	f.repo.EXPECT().GetLoan(gomock.Any(), gomock.Any()).Return(nil, loan.ErrNotFound)

	_, err := f.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, loan.ErrNotFound)
}

func TestService_List(t *testing.T) {
	late := openLoan()
	current := openLoan()
	current.DueDate = date(2024, 6, 1)

	type testCase struct {
		name    string
		filter  loan.ListFilter
		wantLen int
	}

	tests := []testCase{
		{name: "All", filter: loan.ListFilter{}, wantLen: 2},
		{name: "LateOnly", filter: loan.ListFilter{Status: new(ledger.StatusLate)}, wantLen: 1},
		{name: "SettledOnly", filter: loan.ListFilter{Status: new(ledger.StatusSettled)}, wantLen: 0},
		{
			name:    "DueInJanuary",
			filter:  loan.ListFilter{DueFrom: new(date(2024, 1, 1)), DueTo: new(date(2024, 1, 31))},
			wantLen: 1,
		},
		{
			name:    "DueFromIsInclusive",
			filter:  loan.ListFilter{DueFrom: new(date(2024, 6, 1))},
			wantLen: 1,
		},
		{
			name:    "DueToIgnoresTimeOfDay",
			filter:  loan.ListFilter{DueTo: new(time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC))},
			wantLen: 1,
		},
		{
			name:    "NothingDueInMarch",
			filter:  loan.ListFilter{DueFrom: new(date(2024, 3, 1)), DueTo: new(date(2024, 3, 31))},
			wantLen: 0,
		},
		{
			name: "DueWindowAndStatus",
			filter: loan.ListFilter{
				Status:  new(ledger.StatusActive),
				DueFrom: new(date(2024, 1, 1)),
				DueTo:   new(date(2024, 1, 31)),
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, date(2024, 3, 1))
			f.repo.EXPECT().ListLoans(gomock.Any(), tt.filter.ClientID).Return([]*ledger.Loan{late, current}, nil)

			got, err := f.svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_AllLoans(t *testing.T) {
	f := newFixture(t, date(2024, 3, 1))
	l := openLoan()

	f.repo.EXPECT().ListLoans(gomock.Any(), (*uuid.UUID)(nil)).Return([]*ledger.Loan{l}, nil)

	got, err := f.svc.AllLoans(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *l, got[0])
}
