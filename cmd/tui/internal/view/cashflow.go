package view

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/credito/internal/importer"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

type cashState int

const (
	cashStatePeriod cashState = iota
	cashStateList
	cashStateNew
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) Title() string {
	sign := "-"
	if i.tx.Direction == transaction.DirectionIn {
		sign = "+"
	}

	status := ""
	if i.tx.Status == transaction.StatusPending {
		status = lipgloss.NewStyle().Faint(true).Render(" [pending]")
	}

	return fmt.Sprintf("%s  %s%s  %s%s", FormatDate(i.tx.Date), sign, FormatAmount(i.tx.Amount), i.tx.Description, status)
}

func (i txItem) Description() string { return i.tx.Category }
func (i txItem) FilterValue() string { return i.tx.Description + " " + i.tx.Category }

type CashFlowModel struct {
	CommonModel
	txService *transaction.Service

	state  cashState
	picker PeriodPicker
	list   list.Model
	form   *huh.Form
	totals transaction.Totals

	period  PeriodSelectedMsg
	loading bool
	status  string

	// Form field bindings
	formDirection   transaction.Direction
	formAmount      string
	formCategory    string
	formDescription string
	formDate        string
	formPending     bool
}

func NewCashFlowModel(txSvc *transaction.Service) CashFlowModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Cash Flow"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return CashFlowModel{
		txService: txSvc,
		picker:    NewPeriodPicker("Show cash flow for", cashPeriods()),
		list:      l,
	}
}

func (m CashFlowModel) Title() string { return "Cash Flow" }

func (m CashFlowModel) ShortHelp() string {
	switch m.state {
	case cashStatePeriod:
		return "Esc: back | Enter: select"
	case cashStateList:
		return "Esc: back | n: new entry | p: period | /: filter"
	case cashStateNew:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m CashFlowModel) Init() tea.Cmd {
	return nil
}

func (m CashFlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.period = msg
		m.list.Title = "Cash Flow: " + msg.Label
		m.loading = true
		m.state = cashStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.totals = transaction.Summarize(msg.txs)
		m.refreshListItems(msg.txs)

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case createTxResultMsg:
		m.state = cashStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	}

	switch m.state {
	case cashStatePeriod:
		return m.updatePeriod(msg)
	case cashStateList:
		return m.updateList(msg)
	case cashStateNew:
		return m.updateNew(msg)
	}

	return m, nil
}

func (m CashFlowModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && !m.picker.Editing() {
		if m.period.Label != "" {
			m.state = cashStateList
			return m, nil
		}

		return m, Back
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m CashFlowModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startNew()
		case "p":
			m.state = cashStatePeriod
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m CashFlowModel) startNew() (tea.Model, tea.Cmd) {
	m.formDirection = transaction.DirectionIn
	m.formAmount = ""
	m.formCategory = ""
	m.formDescription = ""
	m.formDate = FormatDate(time.Now())
	m.formPending = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Direction]().
				Key("direction").
				Title("Type").
				Options(
					huh.NewOption("Inflow", transaction.DirectionIn),
					huh.NewOption("Outflow", transaction.DirectionOut),
				).
				Value(&m.formDirection),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validatePositiveAmount),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Aporte, Despesas...").
				Value(&m.formCategory).
				Validate(required("category")),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDescription).
				Validate(required("description")),

			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(validateOptionalDate),

			huh.NewConfirm().
				Key("pending").
				Title("Still pending?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formPending),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = cashStateNew

	return m, m.form.Init()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func (m CashFlowModel) updateNew(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = cashStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createTxCmd()
}

func (m CashFlowModel) View() string {
	switch m.state {
	case cashStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())

	case cashStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		totals := fmt.Sprintf("In %s | Out %s | Net %s\n",
			okStyle(FormatAmount(m.totals.In)),
			errorStyle(FormatAmount(m.totals.Out)),
			activeStyle(FormatAmount(m.totals.Net)),
		)

		return lipgloss.NewStyle().Padding(1).Render(statusLine + totals + m.list.View())

	case cashStateNew:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render("New Cash Entry\n\n" + m.form.View())
	}

	return ""
}

func (m *CashFlowModel) refreshListItems(txs []*transaction.Transaction) {
	items := make([]list.Item, len(txs))
	for i, tx := range txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m CashFlowModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{}

		if !m.period.Open {
			filter.StartDate = new(m.period.From)
			filter.EndDate = new(m.period.To)
		}

		txs, err := m.txService.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type createTxResultMsg struct {
	err error
}

func (m CashFlowModel) createTxCmd() tea.Cmd {
	direction, _ := m.form.Get("direction").(transaction.Direction)

	params := transaction.CreateParams{
		Direction:   direction,
		Status:      transaction.StatusSettled,
		Category:    strings.TrimSpace(m.form.GetString("category")),
		Description: strings.TrimSpace(m.form.GetString("description")),
	}
	if m.form.GetBool("pending") {
		params.Status = transaction.StatusPending
	}

	amount, date := m.form.GetString("amount"), m.form.GetString("date")
	if strings.TrimSpace(date) == "" {
		date = FormatDate(time.Now())
	}
	txSvc := m.txService

	return func() tea.Msg {
		var err error
		if params.Amount, err = importer.ParseAmount(amount); err != nil {
			return createTxResultMsg{err: errors.New("invalid amount")}
		}

		if params.Date, err = parseDate(date); err != nil {
			return createTxResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = txSvc.Create(ctx, params)

		return createTxResultMsg{err: err}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
