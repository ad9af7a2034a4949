package ledger

import "time"

// Status is the lifecycle state of a loan. It is always derived, never stored.
type Status string

const (
	StatusActive  Status = "ATIVO"
	StatusLate    Status = "ATRASADO"
	StatusSettled Status = "QUITADO"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusLate, StatusSettled:
		return true
	}

	return false
}

// Classify derives the status of l on the calendar day of today. Settlement wins
// over lateness.
func Classify(l Loan, today time.Time) Status {
	if l.AmountPaid >= l.TotalToReceive {
		return StatusSettled
	}

	if Day(l.DueDate).Before(Day(today)) {
		return StatusLate
	}

	return StatusActive
}
