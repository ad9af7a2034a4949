package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	creditoHttp "github.com/MrJamesThe3rd/credito/internal/http"
	"github.com/MrJamesThe3rd/credito/internal/http/auth"
	"github.com/MrJamesThe3rd/credito/internal/http/client"
	"github.com/MrJamesThe3rd/credito/internal/http/export"
	"github.com/MrJamesThe3rd/credito/internal/http/importcsv"
	"github.com/MrJamesThe3rd/credito/internal/http/loan"
	portfolioHandler "github.com/MrJamesThe3rd/credito/internal/http/portfolio"
	"github.com/MrJamesThe3rd/credito/internal/http/transaction"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/portfolio"
	txsvc "github.com/MrJamesThe3rd/credito/internal/transaction"
)

const secret = "router-secret"

func newRouter(t *testing.T) (*portfolio.MockLoanBook, *portfolio.MockCashFlow, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	loans := portfolio.NewMockLoanBook(ctrl)
	cash := portfolio.NewMockCashFlow(ctrl)

	svc := portfolio.NewService(loans, cash, portfolio.NewMockClientRoster(ctrl), time.Now)

	router := creditoHttp.New(
		creditoHttp.Options{JWTSecret: secret, CORSOrigins: []string{"http://app.local"}},
		client.NewHandler(nil),
		loan.NewHandler(nil),
		importcsv.NewHandler(nil),
		transaction.NewHandler(nil),
		export.NewHandler(nil),
		portfolioHandler.NewHandler(svc),
	)

	return loans, cash, router
}

func TestRouter_Healthz(t *testing.T) {
	_, _, router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	_, _, router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_WithToken(t *testing.T) {
	loans, cash, router := newRouter(t)

	loans.EXPECT().AllLoans(gomock.Any()).Return([]ledger.Loan{}, nil)
	cash.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*txsvc.Transaction{}, nil)

	token, err := auth.Issue(secret, "admin", time.Hour, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	_, _, router := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/loans/", nil)
	req.Header.Set("Origin", "http://app.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://app.local", rec.Header().Get("Access-Control-Allow-Origin"))
}
