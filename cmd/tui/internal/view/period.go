package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
)

// Period is a named window of calendar days relative to today. A nil Bounds
// leaves the window open on both ends.
type Period struct {
	Label  string
	Bounds func(today time.Time) (from, to time.Time)
}

// PeriodSelectedMsg carries the window picked in a PeriodPicker. From and To
// are inclusive UTC days and are zero when Open is set.
type PeriodSelectedMsg struct {
	Label string
	From  time.Time
	To    time.Time
	Open  bool
}

func (p Period) resolve(today time.Time) PeriodSelectedMsg {
	if p.Bounds == nil {
		return PeriodSelectedMsg{Label: p.Label, Open: true}
	}

	from, to := p.Bounds(ledger.Day(today))

	return PeriodSelectedMsg{Label: p.Label, From: from, To: to}
}

// monthOf returns the first and last day of the month offset months away from today.
func monthOf(offset int) func(time.Time) (time.Time, time.Time) {
	return func(today time.Time) (time.Time, time.Time) {
		first := time.Date(today.Year(), today.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1)
	}
}

func lastDays(n int) func(time.Time) (time.Time, time.Time) {
	return func(today time.Time) (time.Time, time.Time) {
		return today.AddDate(0, 0, -(n - 1)), today
	}
}

func nextDays(n int) func(time.Time) (time.Time, time.Time) {
	return func(today time.Time) (time.Time, time.Time) {
		return today, today.AddDate(0, 0, n-1)
	}
}

// cashPeriods look back over recorded money movements.
func cashPeriods() []Period {
	return []Period{
		{Label: "This month", Bounds: monthOf(0)},
		{Label: "Last month", Bounds: monthOf(-1)},
		{Label: "Last 30 days", Bounds: lastDays(30)},
		{Label: "Everything"},
	}
}

// duePeriods look ahead at loan due dates.
func duePeriods() []Period {
	return []Period{
		{Label: "Due this month", Bounds: monthOf(0)},
		{Label: "Due next month", Bounds: monthOf(1)},
		{Label: "Due in the next 7 days", Bounds: nextDays(7)},
		{Label: "Any due date"},
	}
}

// PeriodPicker lists a fixed set of periods followed by a custom range entry.
type PeriodPicker struct {
	title   string
	periods []Period
	cursor  int
	custom  *huh.Form
	err     error
	now     func() time.Time
}

func NewPeriodPicker(title string, periods []Period) PeriodPicker {
	return PeriodPicker{title: title, periods: periods, now: time.Now}
}

// Editing reports whether the custom range form is open. Esc belongs to the
// picker while it is.
func (p PeriodPicker) Editing() bool {
	return p.custom != nil
}

func (p PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if p.custom != nil {
		return p.updateCustom(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.periods) {
			p.cursor++
		}
	case "enter":
		if p.cursor == len(p.periods) {
			p.err = nil
			p.custom = customRangeForm()
			return p, p.custom.Init()
		}

		selected := p.periods[p.cursor].resolve(p.now())
		return p, func() tea.Msg { return selected }
	}

	return p, nil
}

func (p PeriodPicker) updateCustom(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		p.custom = nil
		return p, nil
	}

	form, cmd := p.custom.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.custom = f
	}

	if p.custom.State != huh.StateCompleted {
		return p, cmd
	}

	selected, err := customRange(p.custom.GetString("from"), p.custom.GetString("to"))
	if err != nil {
		p.err = err
		p.custom = customRangeForm()
		return p, p.custom.Init()
	}

	p.custom = nil
	p.err = nil

	return p, func() tea.Msg { return selected }
}

func customRangeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("from").Title("From").Placeholder("DD/MM/YYYY").Validate(validateDate),
			huh.NewInput().Key("to").Title("To").Placeholder("DD/MM/YYYY").Validate(validateDate),
		),
	).WithWidth(30).WithShowHelp(false)
}

func customRange(fromStr, toStr string) (PeriodSelectedMsg, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return PeriodSelectedMsg{}, err
	}

	to, err := parseDate(toStr)
	if err != nil {
		return PeriodSelectedMsg{}, err
	}

	if to.Before(from) {
		return PeriodSelectedMsg{}, errors.New("the range ends before it starts")
	}

	return PeriodSelectedMsg{
		Label: FormatDate(from) + " - " + FormatDate(to),
		From:  from,
		To:    to,
	}, nil
}

func (p PeriodPicker) View() string {
	var sb strings.Builder

	sb.WriteString(p.title + "\n\n")

	if p.custom != nil {
		sb.WriteString(p.custom.View())
	} else {
		for i, period := range p.periods {
			sb.WriteString(p.line(i, period.Label))
		}

		sb.WriteString(p.line(len(p.periods), "Custom range"))
	}

	if p.err != nil {
		sb.WriteString("\n" + errorStyle(fmt.Sprintf("Error: %v", p.err)))
	}

	return sb.String()
}

func (p PeriodPicker) line(i int, label string) string {
	if i == p.cursor {
		return activeStyle("> "+label) + "\n"
	}

	return "  " + label + "\n"
}
