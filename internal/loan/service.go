package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/credito/internal/client"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	// CreateLoan stores a new loan together with its disbursement entry.
	CreateLoan(ctx context.Context, l *ledger.Loan, disbursement *transaction.Transaction) error
	GetLoan(ctx context.Context, id uuid.UUID) (*ledger.Loan, error)
	ListLoans(ctx context.Context, clientID *uuid.UUID) ([]*ledger.Loan, error)

	// BeginPayment opens a unit of work holding an exclusive lock on one loan.
	BeginPayment(ctx context.Context, loanID uuid.UUID) (PaymentTx, error)
}

// PaymentTx is a unit of work over a single locked loan. Nothing it writes is
// visible to readers before Commit.
type PaymentTx interface {
	GetLoan(ctx context.Context) (*ledger.Loan, error)
	RecordPayment(ctx context.Context, applied ledger.Applied) error
	Commit() error
	Rollback() error
}

// ClientDirectory resolves the client a new loan is issued to.
type ClientDirectory interface {
	GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error)
}

type Service struct {
	repo        Repository
	clients     ClientDirectory
	defaultRate decimal.Decimal
	now         func() time.Time
}

func NewService(repo Repository, clients ClientDirectory, defaultRate decimal.Decimal, now func() time.Time) *Service {
	return &Service{
		repo:        repo,
		clients:     clients,
		defaultRate: defaultRate,
		now:         now,
	}
}

type CreateParams struct {
	ClientID       uuid.UUID
	Amount         int64
	InterestRate   *decimal.Decimal // Service default when nil
	TotalToReceive int64            // Amount plus one period of interest when zero
	StartDate      time.Time        // Today when zero
	DueDate        time.Time        // One month after StartDate when zero
}

// ListFilter narrows List. DueFrom and DueTo bound the current due date by
// calendar day, both inclusive.
type ListFilter struct {
	ClientID *uuid.UUID
	Status   *ledger.Status
	DueFrom  *time.Time
	DueTo    *time.Time
}

func (f ListFilter) matches(v *View) bool {
	if f.Status != nil && v.Status != *f.Status {
		return false
	}

	due := ledger.Day(v.Loan.DueDate)

	if f.DueFrom != nil && due.Before(ledger.Day(*f.DueFrom)) {
		return false
	}

	if f.DueTo != nil && due.After(ledger.Day(*f.DueTo)) {
		return false
	}

	return true
}

// Create opens a loan for an existing client and records the disbursement.
func (s *Service) Create(ctx context.Context, params CreateParams) (*View, error) {
	c, err := s.clients.GetClient(ctx, params.ClientID)
	if err != nil {
		return nil, fmt.Errorf("getting client: %w", err)
	}

	rate := s.defaultRate
	if params.InterestRate != nil {
		rate = *params.InterestRate
	}

	start := params.StartDate
	if start.IsZero() {
		start = s.now()
	}

	due := params.DueDate
	if due.IsZero() {
		due = ledger.AddMonth(ledger.Day(start))
	}

	l, err := ledger.NewLoan(ledger.LoanParams{
		ClientID:       c.ID,
		ClientName:     c.Name,
		Amount:         params.Amount,
		InterestRate:   rate,
		TotalToReceive: params.TotalToReceive,
		StartDate:      start,
		DueDate:        due,
	})
	if err != nil {
		return nil, err
	}

	disbursement := ledger.Disbursement(l)
	if err := s.repo.CreateLoan(ctx, &l, &disbursement); err != nil {
		return nil, err
	}

	return NewView(l, s.now()), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	return NewView(*l, s.now()), nil
}

// List returns loan views, optionally narrowed to one client or one derived status.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*View, error) {
	loans, err := s.repo.ListLoans(ctx, filter.ClientID)
	if err != nil {
		return nil, err
	}

	today := s.now()

	views := make([]*View, 0, len(loans))

	for _, l := range loans {
		v := NewView(*l, today)
		if !filter.matches(v) {
			continue
		}

		views = append(views, v)
	}

	return views, nil
}

// AllLoans returns the whole loan book for aggregation.
func (s *Service) AllLoans(ctx context.Context) ([]ledger.Loan, error) {
	loans, err := s.repo.ListLoans(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Loan, len(loans))
	for i, l := range loans {
		out[i] = *l
	}

	return out, nil
}

// RegisterPayment applies a payment and persists the updated loan, the payment
// entry and the cash receipt as one unit. On any error nothing is written.
func (s *Service) RegisterPayment(ctx context.Context, req PaymentRequest) (*Receipt, error) {
	if req.Value <= 0 {
		return nil, ledger.ErrInvalidPaymentAmount
	}

	ptx, err := s.repo.BeginPayment(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer ptx.Rollback()

	l, err := ptx.GetLoan(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()

	applied, err := ledger.ApplyPayment(*l, req.Value, req.InterestOnly, today)
	if err != nil {
		return nil, err
	}

	if err := ptx.RecordPayment(ctx, applied); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return &Receipt{
		View:        NewView(applied.Loan, today),
		Payment:     applied.Payment,
		Transaction: applied.Transaction,
	}, nil
}

// RegisterPayments applies reqs in order. A failed request does not undo or stop
// the ones around it.
func (s *Service) RegisterPayments(ctx context.Context, reqs []PaymentRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))

	for i, req := range reqs {
		receipt, err := s.RegisterPayment(ctx, req)
		results[i] = BatchResult{Request: req, Receipt: receipt, Err: err}
	}

	return results
}
