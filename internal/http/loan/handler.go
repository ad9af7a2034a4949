package loan

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/credito/internal/client"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/loan"
)

type Handler struct {
	svc *loan.Service
}

func NewHandler(svc *loan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/payments", h.pay)
}

type createLoanRequest struct {
	ClientID       uuid.UUID        `json:"client_id"`
	Amount         int64            `json:"amount"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	TotalToReceive int64            `json:"total_to_receive,omitempty"`
	StartDate      string           `json:"start_date,omitempty"`
	DueDate        string           `json:"due_date,omitempty"`
}

// parseDay reads a calendar date as YYYY-MM-DD. Full RFC 3339 timestamps are
// accepted too and truncated to their day by the ledger.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}

	return t, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := loan.CreateParams{
		ClientID:       req.ClientID,
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		TotalToReceive: req.TotalToReceive,
	}

	if req.StartDate != "" {
		t, err := parseDay(req.StartDate)
		if err != nil {
			http.Error(w, "start_date: "+err.Error(), http.StatusBadRequest)
			return
		}

		params.StartDate = t
	}

	if req.DueDate != "" {
		t, err := parseDay(req.DueDate)
		if err != nil {
			http.Error(w, "due_date: "+err.Error(), http.StatusBadRequest)
			return
		}

		params.DueDate = t
	}

	v, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(v))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := loan.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := ledger.Status(s)
		if !status.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		filter.Status = &status
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("due_from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid due_from", http.StatusBadRequest)
			return
		}

		filter.DueFrom = &t
	}

	if s := r.URL.Query().Get("due_to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid due_to", http.StatusBadRequest)
			return
		}

		filter.DueTo = &t
	}

	views, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(views))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(v))
}

type paymentRequest struct {
	Value        int64 `json:"value"`
	InterestOnly bool  `json:"interest_only"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := h.svc.RegisterPayment(r.Context(), loan.PaymentRequest{
		LoanID:       id,
		Value:        req.Value,
		InterestOnly: req.InterestOnly,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReceiptResponse(receipt))
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidPaymentAmount):
		return http.StatusBadRequest
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrLoanSettled):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidLoan), errors.Is(err, ledger.ErrDegenerateContract):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		slog.Error("loan request failed", "error", err)
		http.Error(w, "internal error", code)

		return
	}

	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
