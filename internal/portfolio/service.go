// Package portfolio reports on the loan book as a whole: dashboard figures and
// the delinquency report.
package portfolio

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/credito/internal/client"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=portfolio
type LoanBook interface {
	AllLoans(ctx context.Context) ([]ledger.Loan, error)
}

type CashFlow interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type ClientRoster interface {
	List(ctx context.Context) ([]*client.View, error)
}

type Service struct {
	loans   LoanBook
	cash    CashFlow
	clients ClientRoster
	now     func() time.Time
}

func NewService(loans LoanBook, cash CashFlow, clients ClientRoster, now func() time.Time) *Service {
	return &Service{loans: loans, cash: cash, clients: clients, now: now}
}

// Stats computes the dashboard figures over the whole loan book and cash-flow ledger.
func (s *Service) Stats(ctx context.Context) (ledger.Stats, error) {
	loans, err := s.loans.AllLoans(ctx)
	if err != nil {
		return ledger.Stats{}, fmt.Errorf("loading loans: %w", err)
	}

	txs, err := s.cash.List(ctx, transaction.ListFilter{})
	if err != nil {
		return ledger.Stats{}, fmt.Errorf("loading transactions: %w", err)
	}

	return ledger.ComputeStats(loans, txs, s.now()), nil
}

// LateClient is a client with at least one loan past its due date.
type LateClient struct {
	Client    *client.Client
	TotalOpen int64
	OpenLoans int
}

type DelinquencyReport struct {
	Clients   []LateClient // Largest exposure first
	TotalLate int64        // Open balance of every late client
}

// Delinquency lists the clients flagged ATRASADO and the balance they still owe.
func (s *Service) Delinquency(ctx context.Context) (DelinquencyReport, error) {
	views, err := s.clients.List(ctx)
	if err != nil {
		return DelinquencyReport{}, fmt.Errorf("loading clients: %w", err)
	}

	report := DelinquencyReport{Clients: []LateClient{}}

	for _, v := range views {
		if v.Status != ledger.ClientLate {
			continue
		}

		report.Clients = append(report.Clients, LateClient{
			Client:    v.Client,
			TotalOpen: v.TotalOpen,
			OpenLoans: v.OpenLoans,
		})
		report.TotalLate += v.TotalOpen
	}

	slices.SortStableFunc(report.Clients, func(a, b LateClient) int {
		return cmp.Compare(b.TotalOpen, a.TotalOpen)
	})

	return report, nil
}
