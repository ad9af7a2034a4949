package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount parses a pt-BR formatted amount into cents.
// Format examples: "1.234,56" -> 123456, "R$ 50,00" -> 5000, "10" -> 1000.
// Exponent notation is not a money format and is rejected, as is anything whose
// cents do not fit in an int64.
func ParseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.ContainsAny(clean, "eE") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("amount %q out of range", s)
	}

	return cents.IntPart(), nil
}
