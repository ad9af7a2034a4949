package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/credito/internal/loan"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type PaymentRegistrar interface {
	RegisterPayments(ctx context.Context, reqs []loan.PaymentRequest) []loan.BatchResult
}

type Service struct {
	parser   *Parser
	payments PaymentRegistrar
}

func NewService(payments PaymentRegistrar) *Service {
	return &Service{
		parser:   NewParser(),
		payments: payments,
	}
}

// Report is the outcome of applying a sheet. Results follow the order the
// payments were applied in.
type Report struct {
	Layout  Layout
	Charset string
	Results []loan.BatchResult
	Applied int
	Failed  int
}

// Import parses the sheet in r and registers its payments one by one. A payment
// that fails is reported and does not stop the ones after it.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Report, error) {
	sheet, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing payment sheet: %w", err)
	}

	report := &Report{
		Layout:  sheet.Layout,
		Charset: sheet.Charset,
		Results: s.payments.RegisterPayments(ctx, sheet.Requests()),
	}

	for _, res := range report.Results {
		if res.Err != nil {
			report.Failed++
		} else {
			report.Applied++
		}
	}

	return report, nil
}
