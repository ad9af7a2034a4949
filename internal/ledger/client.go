package ledger

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// ClientStatus flags whether any open loan of a client is past due.
type ClientStatus string

const (
	ClientUpToDate ClientStatus = "EM DIA"
	ClientLate     ClientStatus = "ATRASADO"
)

// ClientSummary is the exposure of one client across the loans that are not settled.
type ClientSummary struct {
	TotalOpen int64
	Status    ClientStatus
	OpenLoans int
}

// AggregateClient rolls up the loans of clientID that are not settled on today.
func AggregateClient(clientID uuid.UUID, loans []Loan, today time.Time) ClientSummary {
	summary := ClientSummary{Status: ClientUpToDate}

	for _, l := range loans {
		if l.ClientID != clientID {
			continue
		}

		status := Classify(l, today)
		if status == StatusSettled {
			continue
		}

		summary.OpenLoans++
		summary.TotalOpen += l.RemainingBalance()

		if status == StatusLate {
			summary.Status = ClientLate
		}
	}

	return summary
}

// Initials builds the display label of a client: the first letter of the first and
// last words of the name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	initials := firstLetter(words[0])
	if len(words) > 1 {
		initials += firstLetter(words[len(words)-1])
	}

	return strings.ToUpper(initials)
}

func firstLetter(word string) string {
	for _, r := range word {
		return string(unicode.ToUpper(r))
	}

	return ""
}
