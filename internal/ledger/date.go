package ledger

import "time"

// Day truncates t to its calendar day in UTC. Every date the ledger stores or
// compares goes through Day, so time-of-day never affects classification.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonth moves d forward one calendar month keeping the day of month, clamped to
// the last day of the target month (2024-01-31 becomes 2024-02-29).
func AddMonth(d time.Time) time.Time {
	y, m, day := d.Date()

	first := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	return time.Date(first.Year(), first.Month(), min(day, last), 0, 0, 0, 0, time.UTC)
}
