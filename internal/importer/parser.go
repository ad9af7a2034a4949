package importer

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	enc "github.com/MrJamesThe3rd/credito/internal/encoding"
	"github.com/MrJamesThe3rd/credito/internal/loan"
)

const dateLayout = "02/01/2006"

// Parser reads payment sheets. It auto-detects the layout by matching column
// headers against the known profiles; rows above the header are ignored.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the whole sheet. Any malformed data row rejects the sheet, so a
// sheet is either applied in full or not at all at the parsing stage.
func (p *Parser) Parse(r io.Reader) (*Sheet, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	prof, cols, headerIdx := detectProfile(rows)
	if prof == nil {
		return nil, fmt.Errorf("%w: expected columns for %s or %s", ErrUnknownLayout, LayoutEntries, LayoutReceipts)
	}

	parsed, err := parseRows(prof, cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(parsed, func(a, b Row) int {
		return cmp.Compare(a.Date.Unix(), b.Date.Unix())
	})

	return &Sheet{Layout: prof.Layout, Charset: charset, Rows: parsed}, nil
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := fold(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts payment requests from the data rows.
// firstLine is the 0-based index of the first data row in the file.
func parseRows(p *profile, cols colIndex, rows [][]string, firstLine int) ([]Row, error) {
	var out []Row

	for i, row := range rows {
		line := firstLine + i + 1

		if blank(row) {
			continue
		}

		contract := cellValue(row, cols[p.ContractCol])

		loanID, err := uuid.Parse(contract)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid contract %q", line, contract)
		}

		date, err := time.Parse(dateLayout, cellValue(row, cols[p.DateCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q, expected dd/mm/aaaa", line, cellValue(row, cols[p.DateCol]))
		}

		var reqs []loan.PaymentRequest

		switch p.Mode {
		case valueTyped:
			reqs, err = typedRequests(loanID, row, cols[p.ValueCol], cols[p.KindCol])
		case valueSplit:
			reqs, err = splitRequests(loanID, row, cols[p.InterestCol], cols[p.PrincipalCol])
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		out = append(out, Row{Line: line, Date: date, Requests: reqs})
	}

	return out, nil
}

func typedRequests(loanID uuid.UUID, row []string, valueIdx, kindIdx int) ([]loan.PaymentRequest, error) {
	value, err := positiveAmount(cellValue(row, valueIdx))
	if err != nil {
		return nil, err
	}

	kind := cellValue(row, kindIdx)

	interestOnly, ok := kinds[fold(kind)]
	if !ok {
		return nil, fmt.Errorf("unknown payment type %q", kind)
	}

	return []loan.PaymentRequest{{LoanID: loanID, Value: value, InterestOnly: interestOnly}}, nil
}

func splitRequests(loanID uuid.UUID, row []string, interestIdx, principalIdx int) ([]loan.PaymentRequest, error) {
	var reqs []loan.PaymentRequest

	for _, col := range []struct {
		idx          int
		interestOnly bool
	}{
		{interestIdx, true},
		{principalIdx, false},
	} {
		s := cellValue(row, col.idx)
		if s == "" {
			continue
		}

		value, err := ParseAmount(s)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", s)
		}

		if value < 0 {
			return nil, fmt.Errorf("negative amount %q", s)
		}

		if value == 0 {
			continue
		}

		reqs = append(reqs, loan.PaymentRequest{LoanID: loanID, Value: value, InterestOnly: col.interestOnly})
	}

	if len(reqs) == 0 {
		return nil, fmt.Errorf("receipt without interest or amortization")
	}

	return reqs, nil
}

func positiveAmount(s string) (int64, error) {
	value, err := ParseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if value <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %q", s)
	}

	return value, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// fold lower-cases s and strips accents, so "Amortização" and "AMORTIZACAO" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}

	return strings.ToLower(out)
}
