package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	txHandler "github.com/MrJamesThe3rd/credito/internal/http/transaction"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

func setup(t *testing.T) (*transaction.MockRepository, http.Handler) {
	t.Helper()

	repo := transaction.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/cashflow", txHandler.NewHandler(transaction.NewService(repo)).Routes)

	return repo, r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name     string
		body     string
		wantCode int
	}

	tests := []testCase{
		{
			name:     "Success",
			body:     `{"amount":200000,"direction":"in","category":"Aporte","description":"Capital","date":"2024-01-02T00:00:00Z"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "InvalidDirection",
			body:     `{"amount":200000,"direction":"sideways","category":"Aporte"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "ZeroAmount",
			body:     `{"amount":0,"direction":"out","category":"Despesa"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "MissingDate",
			body:     `{"amount":100,"direction":"out","category":"Despesa"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "UnknownStatus",
			body:     `{"amount":100,"direction":"out","status":"cancelled","category":"Despesa","date":"2024-01-02T00:00:00Z"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, h := setup(t)

			if tt.wantCode == http.StatusCreated {
				repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec := serve(h, http.MethodPost, "/cashflow/", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	repo, h := setup(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{StartDate: &start, Direction: new(transaction.DirectionIn)}).
		Return([]*transaction.Transaction{{ID: uuid.New(), Amount: 5000, Direction: transaction.DirectionIn}}, nil)

	rec := serve(h, http.MethodGet, "/cashflow/?start_date=2024-01-01&end_date=bogus&direction=in", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0]["direction"])
}

func TestHandler_Summary(t *testing.T) {
	repo, h := setup(t)

	repo.EXPECT().ListTransactions(gomock.Any(), transaction.ListFilter{}).Return([]*transaction.Transaction{
		{Amount: 100000, Direction: transaction.DirectionOut},
		{Amount: 5000, Direction: transaction.DirectionIn},
	}, nil)

	rec := serve(h, http.MethodGet, "/cashflow/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"in":5000,"out":100000,"net":-95000}`, rec.Body.String())
}

func TestHandler_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		repo, h := setup(t)
		repo.EXPECT().GetTransaction(gomock.Any(), gomock.Any()).Return(nil, transaction.ErrNotFound)

		rec := serve(h, http.MethodGet, "/cashflow/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Found", func(t *testing.T) {
		repo, h := setup(t)
		loanID := uuid.New()
		tx := &transaction.Transaction{ID: uuid.New(), Amount: 100000, Direction: transaction.DirectionOut, LoanID: &loanID}
		repo.EXPECT().GetTransaction(gomock.Any(), tx.ID).Return(tx, nil)

		rec := serve(h, http.MethodGet, "/cashflow/"+tx.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, loanID.String(), got["loan_id"])
	})
}
