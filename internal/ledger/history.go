package ledger

import (
	"cmp"
	"slices"
)

// HistoryEntry is a payment together with the contract balance left after it.
type HistoryEntry struct {
	Payment      Payment
	BalanceAfter int64
}

// History returns the payment audit trail, most recent first.
//
// Balances are accumulated in ascending date order, ties kept in insertion order.
// Only amortization lowers the balance; interest payments leave it where it was.
func (l Loan) History() []HistoryEntry {
	sorted := slices.Clone(l.Payments)
	slices.SortStableFunc(sorted, func(a, b Payment) int {
		return cmp.Compare(Day(a.Date).Unix(), Day(b.Date).Unix())
	})

	entries := make([]HistoryEntry, len(sorted))

	var principal int64

	for i, p := range sorted {
		if p.Kind == KindPrincipal {
			principal += p.Value
		}

		entries[len(sorted)-1-i] = HistoryEntry{
			Payment:      p,
			BalanceAfter: l.TotalToReceive - principal,
		}
	}

	return entries
}
