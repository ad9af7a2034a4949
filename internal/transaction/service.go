package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

var ErrInvalid = errors.New("invalid transaction")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount      int64
	Direction   Direction
	Status      Status
	Category    string
	Description string
	Date        time.Time
}

type ListFilter struct {
	Direction *Direction
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create records a manual cash-flow entry, such as a capital contribution or an expense.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	if !params.Direction.Valid() {
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalid, params.Direction)
	}

	if strings.TrimSpace(params.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalid)
	}

	if params.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalid)
	}

	status := params.Status
	if status == "" {
		status = StatusSettled
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	tx := &Transaction{
		ID:          uuid.New(),
		Amount:      params.Amount,
		Direction:   params.Direction,
		Status:      status,
		Category:    params.Category,
		Description: params.Description,
		Date:        params.Date,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Summary returns the totals of the transactions matching filter.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (Totals, error) {
	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return Totals{}, fmt.Errorf("listing transactions: %w", err)
	}

	return Summarize(txs), nil
}
