package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

// Statement is the cash flow of a period, ready to be written out.
type Statement struct {
	Transactions []*transaction.Transaction
	Totals       transaction.Totals
}

// Service exports the cash-flow ledger.
type Service struct {
	transactions *transaction.Service
}

func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

// Statement collects the transactions matching filter and their totals.
func (s *Service) Statement(ctx context.Context, filter transaction.ListFilter) (*Statement, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &Statement{Transactions: txs, Totals: transaction.Summarize(txs)}, nil
}

var csvHeader = []string{"Data", "Descrição", "Categoria", "Tipo", "Status", "Valor"}

// WriteCSV writes st as a semicolon separated sheet with pt-BR amounts, the
// format spreadsheet programs in Brazil open without an import wizard.
// Outflows are negative.
func WriteCSV(w io.Writer, st *Statement) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range st.Transactions {
		record := []string{
			tx.Date.Format("02/01/2006"),
			tx.Description,
			tx.Category,
			directionLabel(tx.Direction),
			statusLabel(tx.Status),
			FormatAmount(signed(tx)),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Body renders st as plain text, one line per transaction followed by the totals.
func Body(st *Statement) string {
	var sb strings.Builder

	for _, tx := range st.Transactions {
		sign := "-"
		if tx.Direction == transaction.DirectionIn {
			sign = "+"
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %sR$ %s | %s\n",
			tx.Date.Format("02/01/2006"), tx.Description, sign, FormatAmount(tx.Amount), tx.Category))
	}

	sb.WriteString(fmt.Sprintf("\nEntradas: R$ %s\n", FormatAmount(st.Totals.In)))
	sb.WriteString(fmt.Sprintf("Saídas: R$ %s\n", FormatAmount(st.Totals.Out)))
	sb.WriteString(fmt.Sprintf("Saldo: R$ %s\n", FormatAmount(st.Totals.Net)))

	return sb.String()
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatAmount renders cents the pt-BR way: 123456 -> "1.234,56".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return sign + brl.Sprintf("%d,%02d", cents/100, cents%100)
}

func signed(tx *transaction.Transaction) int64 {
	if tx.Direction == transaction.DirectionOut {
		return -tx.Amount
	}

	return tx.Amount
}

func directionLabel(d transaction.Direction) string {
	if d == transaction.DirectionIn {
		return "Entrada"
	}

	return "Saída"
}

func statusLabel(s transaction.Status) string {
	if s == transaction.StatusPending {
		return "Pendente"
	}

	return "Efetivado"
}
