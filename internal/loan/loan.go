package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

var ErrNotFound = errors.New("loan not found")

// View is a loan with every figure the display needs, derived at read time.
type View struct {
	Loan                ledger.Loan
	Status              ledger.Status
	PrincipalPaid       int64
	InterestPaid        int64
	RemainingBalance    int64
	ProgressPercent     float64
	SuggestedInterest   int64
	SuggestedSettlement int64
	History             []ledger.HistoryEntry
}

// NewView derives the display figures of l as of today.
func NewView(l ledger.Loan, today time.Time) *View {
	return &View{
		Loan:                l,
		Status:              ledger.Classify(l, today),
		PrincipalPaid:       l.PrincipalPaid(),
		InterestPaid:        l.InterestPaid(),
		RemainingBalance:    l.RemainingBalance(),
		ProgressPercent:     l.ProgressPercent(),
		SuggestedInterest:   l.SuggestedInterestPayment(),
		SuggestedSettlement: l.SuggestedSettlementPayment(),
		History:             l.History(),
	}
}

// PaymentRequest asks for a payment of Value cents to be applied to a loan.
type PaymentRequest struct {
	LoanID       uuid.UUID
	Value        int64
	InterestOnly bool
}

// Receipt is what a successful payment left behind.
type Receipt struct {
	View        *View
	Payment     ledger.Payment
	Transaction transaction.Transaction
}

// BatchResult is the outcome of one request of a payment batch.
type BatchResult struct {
	Request PaymentRequest
	Receipt *Receipt
	Err     error
}
