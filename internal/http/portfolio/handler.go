package portfolio

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/portfolio"
)

type Handler struct {
	svc *portfolio.Service
}

func NewHandler(svc *portfolio.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/delinquency", h.delinquency)
}

type statsResponse struct {
	TotalBalance    int64 `json:"total_balance"`
	PrincipalOut    int64 `json:"principal_out"`
	InterestPending int64 `json:"interest_pending"`
	TotalReceived   int64 `json:"total_received"`
}

type lateClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Initials  string    `json:"initials"`
	TotalOpen int64     `json:"total_open"`
	OpenLoans int       `json:"open_loans"`
}

type delinquencyResponse struct {
	TotalLate   int64                `json:"total_late"`
	LateClients int                  `json:"late_clients"`
	Clients     []lateClientResponse `json:"clients"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Stats(r.Context())
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, statsResponse{
		TotalBalance:    s.TotalBalance,
		PrincipalOut:    s.PrincipalOut,
		InterestPending: s.InterestPending,
		TotalReceived:   s.TotalReceived,
	})
}

func (h *Handler) delinquency(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Delinquency(r.Context())
	if err != nil {
		slog.Error("failed to build delinquency report", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := delinquencyResponse{
		TotalLate:   report.TotalLate,
		LateClients: len(report.Clients),
		Clients:     make([]lateClientResponse, len(report.Clients)),
	}

	for i, c := range report.Clients {
		resp.Clients[i] = lateClientResponse{
			ID:        c.Client.ID,
			Name:      c.Client.Name,
			Document:  c.Client.Document,
			Initials:  c.Client.Initials,
			TotalOpen: c.TotalOpen,
			OpenLoans: c.OpenLoans,
		}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
