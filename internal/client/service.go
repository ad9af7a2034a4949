package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
}

// LoanBook gives read access to every loan, settled or not.
type LoanBook interface {
	AllLoans(ctx context.Context) ([]ledger.Loan, error)
}

type Service struct {
	repo  Repository
	loans LoanBook
	now   func() time.Time
}

func NewService(repo Repository, loans LoanBook, now func() time.Time) *Service {
	return &Service{repo: repo, loans: loans, now: now}
}

type RegisterParams struct {
	Name     string
	Document string
}

// Register creates a client and derives its display initials from the name.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Client, error) {
	name := strings.Join(strings.Fields(params.Name), " ")
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	c := &Client{
		ID:       uuid.New(),
		Name:     name,
		Document: strings.TrimSpace(params.Document),
		Initials: ledger.Initials(name),
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	loans, err := s.loans.AllLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading loans: %w", err)
	}

	return newView(c, loans, s.now()), nil
}

func (s *Service) List(ctx context.Context) ([]*View, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.loans.AllLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading loans: %w", err)
	}

	today := s.now()

	views := make([]*View, len(clients))
	for i, c := range clients {
		views[i] = newView(c, loans, today)
	}

	return views, nil
}

func newView(c *Client, loans []ledger.Loan, today time.Time) *View {
	summary := ledger.AggregateClient(c.ID, loans, today)

	return &View{
		Client:    c,
		TotalOpen: summary.TotalOpen,
		Status:    summary.Status,
		OpenLoans: summary.OpenLoans,
	}
}
