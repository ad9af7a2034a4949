package importer

// valueMode determines how payment values are read from a row.
type valueMode int

const (
	// valueTyped means one value column plus a column naming the payment kind.
	valueTyped valueMode = iota
	// valueSplit means separate interest and amortization columns on the same row.
	valueSplit
)

// profile describes the column layout of a payment sheet.
// Header names are compared after folding case and accents.
type profile struct {
	Layout       Layout
	ContractCol  string
	DateCol      string
	Mode         valueMode
	ValueCol     string // valueTyped
	KindCol      string // valueTyped
	InterestCol  string // valueSplit
	PrincipalCol string // valueSplit
}

func (p profile) requiredCols() []string {
	cols := []string{p.ContractCol, p.DateCol}

	switch p.Mode {
	case valueTyped:
		cols = append(cols, p.ValueCol, p.KindCol)
	case valueSplit:
		cols = append(cols, p.InterestCol, p.PrincipalCol)
	}

	return cols
}

var profiles = []profile{
	{
		Layout:       LayoutReceipts,
		ContractCol:  "contrato",
		DateCol:      "data",
		Mode:         valueSplit,
		InterestCol:  "juros",
		PrincipalCol: "amortizacao",
	},
	{
		Layout:      LayoutEntries,
		ContractCol: "contrato",
		DateCol:     "data",
		Mode:        valueTyped,
		ValueCol:    "valor",
		KindCol:     "tipo",
	},
}

// kinds maps folded values of the kind column to whether the payment is interest only.
var kinds = map[string]bool{
	"juros":       true,
	"interest":    true,
	"amortizacao": false,
	"quitacao":    false,
	"principal":   false,
}
