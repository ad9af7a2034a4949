package importcsv_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/credito/internal/http/importcsv"
	"github.com/MrJamesThe3rd/credito/internal/importer"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/loan"
)

func setup(t *testing.T) (*importer.MockPaymentRegistrar, http.Handler) {
	t.Helper()

	payments := importer.NewMockPaymentRegistrar(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/loans", importcsv.NewHandler(importer.NewService(payments)).Routes)

	return payments, r
}

func upload(t *testing.T, h http.Handler, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "recebimentos.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/loans/payments/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Import(t *testing.T) {
	payments, h := setup(t)

	loanID := uuid.New()
	reqs := []loan.PaymentRequest{
		{LoanID: loanID, Value: 5000, InterestOnly: true},
		{LoanID: loanID, Value: 10000},
	}

	payments.EXPECT().RegisterPayments(gomock.Any(), reqs).Return([]loan.BatchResult{
		{Request: reqs[0], Receipt: &loan.Receipt{View: &loan.View{Status: ledger.StatusActive, RemainingBalance: 100000}}},
		{Request: reqs[1], Err: ledger.ErrLoanSettled},
	})

	rec := upload(t, h, "Contrato;Data;Juros;Amortização\n"+loanID.String()+";10/02/2024;50,00;100,00\n")
	require.Equal(t, http.StatusMultiStatus, rec.Code, rec.Body.String())

	var got struct {
		Layout  string `json:"layout"`
		Applied int    `json:"applied"`
		Failed  int    `json:"failed"`
		Results []struct {
			Applied          bool   `json:"applied"`
			Error            string `json:"error"`
			Status           string `json:"status"`
			RemainingBalance *int64 `json:"remaining_balance"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "recibos", got.Layout)
	assert.Equal(t, 1, got.Applied)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "ATIVO", got.Results[0].Status)
	require.NotNil(t, got.Results[0].RemainingBalance)
	assert.Equal(t, int64(100000), *got.Results[0].RemainingBalance)
	assert.Equal(t, ledger.ErrLoanSettled.Error(), got.Results[1].Error)
}

func TestHandler_Import_AllApplied(t *testing.T) {
	payments, h := setup(t)

	loanID := uuid.New()
	req := loan.PaymentRequest{LoanID: loanID, Value: 123456}

	payments.EXPECT().RegisterPayments(gomock.Any(), []loan.PaymentRequest{req}).
		Return([]loan.BatchResult{{Request: req, Receipt: &loan.Receipt{View: &loan.View{}}}})

	rec := upload(t, h, "Contrato;Data;Valor;Tipo\n"+loanID.String()+";10/02/2024;1.234,56;Amortização\n")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_Import_Rejected(t *testing.T) {
	t.Run("BadSheet", func(t *testing.T) {
		_, h := setup(t)

		rec := upload(t, h, "Contrato;Data;Valor;Tipo\nnope;10/02/2024;1,00;Juros\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid contract")
	})

	t.Run("NoFile", func(t *testing.T) {
		_, h := setup(t)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("other", "x"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/loans/payments/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
