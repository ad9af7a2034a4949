// Package ledger holds the loan ledger rules: how a loan's principal, rate, due date
// and append-only payment list turn into balances, lifecycle status, client exposure
// and portfolio figures.
//
// Nothing in this package performs I/O or reads the wall clock. Callers pass the
// current day explicitly and persist whatever ApplyPayment returns.
package ledger

import "errors"

var (
	// ErrInvalidPaymentAmount is returned when a payment value is zero, negative or
	// too large to be added to what the loan has already received.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	// ErrLoanSettled is returned when a payment targets a loan that is already QUITADO.
	ErrLoanSettled = errors.New("loan is already settled")
	// ErrDegenerateContract is returned when a loan would have nothing to receive.
	ErrDegenerateContract = errors.New("loan total to receive must be positive")
	// ErrInvalidLoan is returned for loan parameters that can never form a valid contract.
	ErrInvalidLoan = errors.New("invalid loan")
)
