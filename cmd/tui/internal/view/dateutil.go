package view

import (
	"fmt"
	"strings"
	"time"
)

// parseDate reads a DD/MM/YYYY date typed in a form.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (DD/MM/YYYY)", s)
	}

	return t, nil
}

func validateDate(s string) error {
	_, err := parseDate(s)
	return err
}

// validateOptionalDate is a huh validator accepting an empty field.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := parseDate(s)

	return err
}
