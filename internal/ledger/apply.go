package ledger

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

// Applied is everything a single payment produces. The caller must persist all of it
// or none of it.
type Applied struct {
	Loan        Loan
	Payment     Payment
	Transaction transaction.Transaction
}

// ApplyPayment records a payment of value cents against l on the day today.
//
// Interest-only payments roll the due date one month forward; amortization leaves it
// alone. The input loan is not modified: the updated copy is returned in Applied.
func ApplyPayment(l Loan, value int64, interestOnly bool, today time.Time) (Applied, error) {
	if value <= 0 || value > math.MaxInt64-l.AmountPaid {
		return Applied{}, ErrInvalidPaymentAmount
	}

	if Classify(l, today) == StatusSettled {
		return Applied{}, ErrLoanSettled
	}

	kind := KindPrincipal
	if interestOnly {
		kind = KindInterest
	}

	day := Day(today)

	payment := Payment{
		ID:    uuid.New(),
		Date:  day,
		Value: value,
		Kind:  kind,
	}

	updated := l
	updated.Payments = append(slices.Clone(l.Payments), payment)
	updated.AmountPaid += value

	if interestOnly {
		updated.DueDate = AddMonth(l.DueDate)
	}

	return Applied{
		Loan:        updated,
		Payment:     payment,
		Transaction: receipt(l, payment),
	}, nil
}

func receipt(l Loan, p Payment) transaction.Transaction {
	label := "Amortização"
	if p.Kind == KindInterest {
		label = "Juros"
	}

	return transaction.Transaction{
		ID:          uuid.New(),
		Amount:      p.Value,
		Direction:   transaction.DirectionIn,
		Status:      transaction.StatusSettled,
		Category:    transaction.CategoryReceipt,
		Description: label + ": " + l.ClientName,
		Date:        p.Date,
		LoanID:      new(l.ID),
	}
}
