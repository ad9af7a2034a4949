// Package importer reads spreadsheets of received payments and turns every row
// into payment requests against existing loans.
package importer

import (
	"errors"
	"time"

	"github.com/MrJamesThe3rd/credito/internal/loan"
)

var ErrUnknownLayout = errors.New("no matching payment sheet layout found")

// Layout names a known payment sheet format.
type Layout string

const (
	// LayoutEntries has one payment per row: Contrato;Data;Valor;Tipo.
	LayoutEntries Layout = "lançamentos"
	// LayoutReceipts has one receipt per row, split into interest and
	// amortization: Contrato;Data;Juros;Amortização.
	LayoutReceipts Layout = "recibos"
)

// Row is one data row of a sheet. A receipts row may yield two requests, interest
// first.
type Row struct {
	Line     int // 1-based record number in the file, blank lines not counted
	Date     time.Time
	Requests []loan.PaymentRequest
}

// Sheet is a parsed payment sheet. Rows are in date order, ties kept in file order.
type Sheet struct {
	Layout  Layout
	Charset string
	Rows    []Row
}

// Requests flattens the sheet into the order payments must be applied.
func (s *Sheet) Requests() []loan.PaymentRequest {
	var reqs []loan.PaymentRequest
	for _, row := range s.Rows {
		reqs = append(reqs, row.Requests...)
	}

	return reqs
}
