package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/credito/internal/export"
)

const dbTimeout = 5 * time.Second

const dateLayout = "02/01/2006"

// FormatAmount formats an amount stored as cents the way the rest of the app
// shows money: "R$ 1.234,56".
func FormatAmount(cents int64) string {
	return "R$ " + export.FormatAmount(cents)
}

// FormatDate formats a time.Time into DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
