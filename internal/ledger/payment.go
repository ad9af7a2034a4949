package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies which figure of the loan a payment reduces.
type Kind string

const (
	KindInterest  Kind = "interest"
	KindPrincipal Kind = "principal"
)

func (k Kind) Valid() bool {
	return k == KindInterest || k == KindPrincipal
}

// Payment is a single money movement applied to a loan. Payments are never mutated
// or removed once recorded.
type Payment struct {
	ID    uuid.UUID
	Date  time.Time
	Value int64 // Value in cents
	Kind  Kind
}
