package ledger

import (
	"time"

	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

// Stats are the portfolio-wide figures shown on the dashboard.
type Stats struct {
	TotalBalance    int64 // Net cash position: every inflow minus every outflow
	PrincipalOut    int64 // Principal still lent out on loans that are not settled
	InterestPending int64 // Agreed interest not yet collected on loans that are not settled
	TotalReceived   int64 // Every receipt recorded in the cash-flow ledger
}

// ComputeStats derives Stats from the full loan book and cash-flow ledger.
func ComputeStats(loans []Loan, txs []*transaction.Transaction, today time.Time) Stats {
	return Stats{
		TotalBalance:    netCash(txs),
		PrincipalOut:    principalOut(loans, today),
		InterestPending: interestPending(loans, today),
		TotalReceived:   totalReceived(txs),
	}
}

func principalOut(loans []Loan, today time.Time) int64 {
	var sum int64

	for _, l := range loans {
		if Classify(l, today) != StatusSettled {
			sum += l.PrincipalOutstanding()
		}
	}

	return sum
}

func interestPending(loans []Loan, today time.Time) int64 {
	var sum int64

	for _, l := range loans {
		if Classify(l, today) != StatusSettled {
			sum += l.InterestOutstanding()
		}
	}

	return sum
}

func totalReceived(txs []*transaction.Transaction) int64 {
	var sum int64

	for _, tx := range txs {
		if tx.Category == transaction.CategoryReceipt {
			sum += tx.Amount
		}
	}

	return sum
}

func netCash(txs []*transaction.Transaction) int64 {
	var sum int64

	for _, tx := range txs {
		switch tx.Direction {
		case transaction.DirectionIn:
			sum += tx.Amount
		case transaction.DirectionOut:
			sum -= tx.Amount
		}
	}

	return sum
}
