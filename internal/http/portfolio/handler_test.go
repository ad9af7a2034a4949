package portfolio_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/credito/internal/client"
	portfolioHandler "github.com/MrJamesThe3rd/credito/internal/http/portfolio"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/portfolio"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

type fixture struct {
	loans   *portfolio.MockLoanBook
	cash    *portfolio.MockCashFlow
	clients *portfolio.MockClientRoster
	router  http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		loans:   portfolio.NewMockLoanBook(ctrl),
		cash:    portfolio.NewMockCashFlow(ctrl),
		clients: portfolio.NewMockClientRoster(ctrl),
	}

	svc := portfolio.NewService(f.loans, f.cash, f.clients, func() time.Time {
		return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	})

	r := chi.NewRouter()
	r.Route("/portfolio", portfolioHandler.NewHandler(svc).Routes)
	f.router = r

	return f
}

func (f fixture) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_Stats(t *testing.T) {
	f := newFixture(t)

	f.loans.EXPECT().AllLoans(gomock.Any()).Return([]ledger.Loan{{
		ID:             uuid.New(),
		Amount:         100000,
		TotalToReceive: 105000,
		DueDate:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}}, nil)
	f.cash.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
		{Amount: 100000, Direction: transaction.DirectionOut, Category: transaction.CategoryLoans},
	}, nil)

	rec := f.get("/portfolio/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total_balance":-100000,"principal_out":100000,"interest_pending":5000,"total_received":0}`,
		rec.Body.String())
}

func TestHandler_Delinquency(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.clients.EXPECT().List(gomock.Any()).Return([]*client.View{
		{Client: &client.Client{ID: id, Name: "Ana Costa", Initials: "AC"}, TotalOpen: 30000, Status: ledger.ClientLate, OpenLoans: 1},
		{Client: &client.Client{ID: uuid.New(), Name: "Bruno Lima"}, TotalOpen: 1000, Status: ledger.ClientUpToDate},
	}, nil)

	rec := f.get("/portfolio/delinquency")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total_late":30000,"late_clients":1,"clients":[{"id":"`+id.String()+`","name":"Ana Costa","initials":"AC","total_open":30000,"open_loans":1}]}`,
		rec.Body.String())
}

func TestHandler_Stats_Error(t *testing.T) {
	f := newFixture(t)
	f.loans.EXPECT().AllLoans(gomock.Any()).Return(nil, assert.AnError)

	rec := f.get("/portfolio/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
