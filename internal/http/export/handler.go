package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/credito/internal/export"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/export", h.export)
}

type exportRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Format    string     `json:"format,omitempty"` // "csv" (default) or "text"
}

type textExportResponse struct {
	Body  string `json:"body"`
	In    int64  `json:"in"`
	Out   int64  `json:"out"`
	Net   int64  `json:"net"`
	Count int    `json:"count"`
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Format != "" && req.Format != "csv" && req.Format != "text" {
		http.Error(w, "format must be csv or text", http.StatusBadRequest)
		return
	}

	st, err := h.svc.Statement(r.Context(), transaction.ListFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		slog.Error("failed to build statement", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Format == "text" {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(textExportResponse{
			Body:  export.Body(st),
			In:    st.Totals.In,
			Out:   st.Totals.Out,
			Net:   st.Totals.Net,
			Count: len(st.Transactions),
		}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	// Buffer so a write failure can still become a 500.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, st); err != nil {
		slog.Error("failed to write csv", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"fluxo_de_caixa_%s.csv\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
