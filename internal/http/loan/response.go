package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/loan"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

type loanResponse struct {
	ID                  uuid.UUID         `json:"id"`
	ClientID            uuid.UUID         `json:"client_id"`
	ClientName          string            `json:"client_name"`
	Amount              int64             `json:"amount"`
	InterestRate        decimal.Decimal   `json:"interest_rate"`
	TotalToReceive      int64             `json:"total_to_receive"`
	StartDate           time.Time         `json:"start_date"`
	DueDate             time.Time         `json:"due_date"`
	AmountPaid          int64             `json:"amount_paid"`
	Status              ledger.Status     `json:"status"`
	PrincipalPaid       int64             `json:"principal_paid"`
	InterestPaid        int64             `json:"interest_paid"`
	RemainingBalance    int64             `json:"remaining_balance"`
	ProgressPercent     float64           `json:"progress_percent"`
	SuggestedInterest   int64             `json:"suggested_interest"`
	SuggestedSettlement int64             `json:"suggested_settlement"`
	History             []historyResponse `json:"history"`
	CreatedAt           time.Time         `json:"created_at"`
}

type historyResponse struct {
	ID           uuid.UUID   `json:"id"`
	Date         time.Time   `json:"date"`
	Value        int64       `json:"value"`
	Kind         ledger.Kind `json:"kind"`
	BalanceAfter int64       `json:"balance_after"`
}

type transactionResponse struct {
	ID          uuid.UUID             `json:"id"`
	Amount      int64                 `json:"amount"`
	Direction   transaction.Direction `json:"direction"`
	Status      transaction.Status    `json:"status"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
}

type receiptResponse struct {
	Loan        loanResponse        `json:"loan"`
	Payment     historyResponse     `json:"payment"`
	Transaction transactionResponse `json:"transaction"`
}

func toResponse(v *loan.View) loanResponse {
	l := v.Loan

	history := make([]historyResponse, len(v.History))
	for i, e := range v.History {
		history[i] = historyResponse{
			ID:           e.Payment.ID,
			Date:         e.Payment.Date,
			Value:        e.Payment.Value,
			Kind:         e.Payment.Kind,
			BalanceAfter: e.BalanceAfter,
		}
	}

	return loanResponse{
		ID:                  l.ID,
		ClientID:            l.ClientID,
		ClientName:          l.ClientName,
		Amount:              l.Amount,
		InterestRate:        l.InterestRate,
		TotalToReceive:      l.TotalToReceive,
		StartDate:           l.StartDate,
		DueDate:             l.DueDate,
		AmountPaid:          l.AmountPaid,
		Status:              v.Status,
		PrincipalPaid:       v.PrincipalPaid,
		InterestPaid:        v.InterestPaid,
		RemainingBalance:    v.RemainingBalance,
		ProgressPercent:     v.ProgressPercent,
		SuggestedInterest:   v.SuggestedInterest,
		SuggestedSettlement: v.SuggestedSettlement,
		History:             history,
		CreatedAt:           l.CreatedAt,
	}
}

func toResponseList(views []*loan.View) []loanResponse {
	resp := make([]loanResponse, len(views))
	for i, v := range views {
		resp[i] = toResponse(v)
	}

	return resp
}

func toReceiptResponse(r *loan.Receipt) receiptResponse {
	loanResp := toResponse(r.View)

	var balanceAfter int64
	if len(loanResp.History) > 0 {
		balanceAfter = loanResp.History[0].BalanceAfter
	}

	tx := r.Transaction

	return receiptResponse{
		Loan: loanResp,
		Payment: historyResponse{
			ID:           r.Payment.ID,
			Date:         r.Payment.Date,
			Value:        r.Payment.Value,
			Kind:         r.Payment.Kind,
			BalanceAfter: balanceAfter,
		},
		Transaction: transactionResponse{
			ID:          tx.ID,
			Amount:      tx.Amount,
			Direction:   tx.Direction,
			Status:      tx.Status,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date,
		},
	}
}
