package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/importer"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
)

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/payments/import", h.importSheet)
}

type resultDTO struct {
	LoanID           uuid.UUID     `json:"loan_id"`
	Value            int64         `json:"value"`
	InterestOnly     bool          `json:"interest_only"`
	Applied          bool          `json:"applied"`
	Error            string        `json:"error,omitempty"`
	Status           ledger.Status `json:"status,omitempty"`
	RemainingBalance *int64        `json:"remaining_balance,omitempty"`
}

type importResponse struct {
	Layout  importer.Layout `json:"layout"`
	Charset string          `json:"charset"`
	Applied int             `json:"applied"`
	Failed  int             `json:"failed"`
	Results []resultDTO     `json:"results"`
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{
		Layout:  report.Layout,
		Charset: report.Charset,
		Applied: report.Applied,
		Failed:  report.Failed,
		Results: make([]resultDTO, 0, len(report.Results)),
	}

	for _, res := range report.Results {
		dto := resultDTO{
			LoanID:       res.Request.LoanID,
			Value:        res.Request.Value,
			InterestOnly: res.Request.InterestOnly,
			Applied:      res.Err == nil,
		}

		if res.Err != nil {
			dto.Error = res.Err.Error()
		} else if res.Receipt != nil && res.Receipt.View != nil {
			dto.Status = res.Receipt.View.Status
			dto.RemainingBalance = new(res.Receipt.View.RemainingBalance)
		}

		resp.Results = append(resp.Results, dto)
	}

	code := http.StatusCreated
	if report.Failed > 0 {
		code = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
