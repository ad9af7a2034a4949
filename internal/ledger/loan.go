package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// Loan is a single credit contract and its payment ledger.
type Loan struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	// ClientName is a snapshot taken when the loan was opened. Later renames of the
	// client do not reach it.
	ClientName     string
	Amount         int64           // Principal disbursed, in cents
	InterestRate   decimal.Decimal // Percent per period
	TotalToReceive int64           // Principal plus agreed interest, in cents
	StartDate      time.Time
	DueDate        time.Time
	AmountPaid     int64 // Sum of every payment value, in cents
	Payments       []Payment
	CreatedAt      time.Time
}

// LoanParams describes a loan offer that has been accepted.
type LoanParams struct {
	ClientID     uuid.UUID
	ClientName   string
	Amount       int64
	InterestRate decimal.Decimal
	// TotalToReceive defaults to Amount plus one period of interest when zero.
	TotalToReceive int64
	StartDate      time.Time
	DueDate        time.Time
}

// NewLoan validates p and opens a loan with an empty payment ledger.
func NewLoan(p LoanParams) (Loan, error) {
	if p.Amount <= 0 {
		return Loan{}, fmt.Errorf("%w: amount must be positive", ErrInvalidLoan)
	}

	if p.InterestRate.IsNegative() {
		return Loan{}, fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidLoan)
	}

	if strings.TrimSpace(p.ClientName) == "" {
		return Loan{}, fmt.Errorf("%w: client name is required", ErrInvalidLoan)
	}

	start, due := Day(p.StartDate), Day(p.DueDate)
	if due.Before(start) {
		return Loan{}, fmt.Errorf("%w: due date before start date", ErrInvalidLoan)
	}

	total := p.TotalToReceive
	if total == 0 {
		total = p.Amount + interestFor(p.Amount, p.InterestRate)
	}

	if total <= 0 {
		return Loan{}, ErrDegenerateContract
	}

	if total < p.Amount {
		return Loan{}, fmt.Errorf("%w: total to receive below principal", ErrInvalidLoan)
	}

	return Loan{
		ID:             uuid.New(),
		ClientID:       p.ClientID,
		ClientName:     p.ClientName,
		Amount:         p.Amount,
		InterestRate:   p.InterestRate,
		TotalToReceive: total,
		StartDate:      start,
		DueDate:        due,
	}, nil
}

// Disbursement is the cash outflow recorded when the loan is handed to the client.
func Disbursement(l Loan) transaction.Transaction {
	return transaction.Transaction{
		ID:          uuid.New(),
		Amount:      l.Amount,
		Direction:   transaction.DirectionOut,
		Status:      transaction.StatusSettled,
		Category:    transaction.CategoryLoans,
		Description: "Empréstimo Liberado: " + l.ClientName,
		Date:        l.StartDate,
		LoanID:      new(l.ID),
	}
}

func interestFor(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Div(hundred).Round(0).IntPart()
}

func (l Loan) sumKind(k Kind) int64 {
	var sum int64

	for _, p := range l.Payments {
		if p.Kind == k {
			sum += p.Value
		}
	}

	return sum
}

// PrincipalPaid is the sum of every amortization payment.
func (l Loan) PrincipalPaid() int64 { return l.sumKind(KindPrincipal) }

// InterestPaid is the sum of every interest-only payment.
func (l Loan) InterestPaid() int64 { return l.sumKind(KindInterest) }

// RemainingBalance is what the client still owes under the contract.
func (l Loan) RemainingBalance() int64 {
	return l.TotalToReceive - l.AmountPaid
}

// ProgressPercent is the share of the contract already paid, between 0 and 100.
// A contract with nothing to receive reports 0.
func (l Loan) ProgressPercent() float64 {
	if l.TotalToReceive <= 0 {
		return 0
	}

	pct := float64(l.AmountPaid) / float64(l.TotalToReceive) * 100

	return max(0, min(100, pct))
}

// PrincipalOutstanding is the part of the principal not yet amortized.
func (l Loan) PrincipalOutstanding() int64 {
	return max(0, l.Amount-l.PrincipalPaid())
}

// InterestOutstanding is the agreed interest not yet collected. Interest paid beyond
// the agreement never makes it negative.
func (l Loan) InterestOutstanding() int64 {
	return max(0, (l.TotalToReceive-l.Amount)-l.InterestPaid())
}

// SuggestedInterestPayment is one period of interest on the original principal.
func (l Loan) SuggestedInterestPayment() int64 {
	return interestFor(l.Amount, l.InterestRate)
}

// SuggestedSettlementPayment is the amount that settles the loan.
func (l Loan) SuggestedSettlementPayment() int64 {
	return max(0, l.RemainingBalance())
}

// Consistent reports whether AmountPaid matches the payment ledger.
func (l Loan) Consistent() bool {
	var sum int64
	for _, p := range l.Payments {
		sum += p.Value
	}

	return sum == l.AmountPaid
}
