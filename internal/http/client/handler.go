package client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/client"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.register)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type registerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

type clientResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Document  string              `json:"document,omitempty"`
	Initials  string              `json:"initials"`
	TotalOpen int64               `json:"total_open"`
	Status    ledger.ClientStatus `json:"status"`
	OpenLoans int                 `json:"open_loans"`
	CreatedAt time.Time           `json:"created_at"`
}

func toResponse(v *client.View) clientResponse {
	return clientResponse{
		ID:        v.Client.ID,
		Name:      v.Client.Name,
		Document:  v.Client.Document,
		Initials:  v.Client.Initials,
		TotalOpen: v.TotalOpen,
		Status:    v.Status,
		OpenLoans: v.OpenLoans,
		CreatedAt: v.Client.CreatedAt,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Register(r.Context(), client.RegisterParams{Name: req.Name, Document: req.Document})
	if err != nil {
		if errors.Is(err, client.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to register client", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	// A new client has no loans yet.
	writeJSON(w, http.StatusCreated, toResponse(&client.View{Client: c, Status: ledger.ClientUpToDate}))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]clientResponse, len(views))
	for i, v := range views {
		resp[i] = toResponse(v)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to get client", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(v))
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
