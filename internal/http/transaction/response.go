package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID             `json:"id"`
	Amount      int64                 `json:"amount"`
	Direction   transaction.Direction `json:"direction"`
	Status      transaction.Status    `json:"status"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
	LoanID      *uuid.UUID            `json:"loan_id,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

type totalsResponse struct {
	In  int64 `json:"in"`
	Out int64 `json:"out"`
	Net int64 `json:"net"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Direction:   tx.Direction,
		Status:      tx.Status,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date,
		LoanID:      tx.LoanID,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toTotalsResponse(t transaction.Totals) totalsResponse {
	return totalsResponse{In: t.In, Out: t.Out, Net: t.Net}
}
