package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("transaction not found")

// Direction tells whether money entered or left the cash position.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Status represents whether the money actually moved.
type Status string

const (
	StatusPending Status = "pending"
	StatusSettled Status = "settled"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusSettled
}

// Categories produced by the loan ledger. Manual entries may use any other label.
const (
	CategoryReceipt = "Recebimento"
	CategoryLoans   = "Empréstimos"
)

// Transaction is one entry of the cash-flow ledger. Entries are never edited after
// they are recorded.
type Transaction struct {
	ID          uuid.UUID
	Amount      int64 // Amount in cents
	Direction   Direction
	Status      Status
	Category    string
	Description string
	Date        time.Time
	LoanID      *uuid.UUID // Set for entries produced by a loan
	CreatedAt   time.Time
}

// Totals summarises a set of transactions.
type Totals struct {
	In  int64
	Out int64
	Net int64
}

// Summarize adds up the inflows and outflows of txs.
func Summarize(txs []*Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		switch tx.Direction {
		case DirectionIn:
			t.In += tx.Amount
		case DirectionOut:
			t.Out += tx.Amount
		}
	}

	t.Net = t.In - t.Out

	return t
}
