package client

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
)

var (
	ErrNotFound = errors.New("client not found")
	ErrInvalid  = errors.New("invalid client")
)

// Client is a registered borrower. Identity fields never change after registration.
type Client struct {
	ID        uuid.UUID
	Name      string
	Document  string // CPF or CNPJ
	Initials  string
	CreatedAt time.Time
}

// View is a client together with its exposure, recomputed from the loan book on
// every read.
type View struct {
	Client    *Client
	TotalOpen int64
	Status    ledger.ClientStatus
	OpenLoans int
}
