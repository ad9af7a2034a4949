package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/credito/internal/client"
	"github.com/MrJamesThe3rd/credito/internal/export"
	"github.com/MrJamesThe3rd/credito/internal/importer"
	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/loan"
)

type loansState int

const (
	loansStateBrowse loansState = iota
	loansStateDetail
	loansStatePay
	loansStateNew
	loansStateDue
)

var statusFilters = []ledger.Status{"", ledger.StatusActive, ledger.StatusLate, ledger.StatusSettled}

type LoansModel struct {
	CommonModel
	loanService   *loan.Service
	clientService *client.Service

	state   loansState
	table   table.Model
	loans   []*loan.View
	clients []*client.View
	form    *huh.Form

	statusFilterIdx int
	duePicker       PeriodPicker
	dueWindow       PeriodSelectedMsg

	loading bool
	err     error
	status  string

	// Payment form bindings
	formValue        string
	formInterestOnly bool

	// New loan form bindings
	formClientID string
	formAmount   string
	formRate     string
	formTotal    string
	formStart    string
	formDue      string
}

func NewLoansModel(loanSvc *loan.Service, clientSvc *client.Service) LoansModel {
	columns := []table.Column{
		{Title: "Client", Width: 24},
		{Title: "Amount", Width: 14},
		{Title: "Total", Width: 14},
		{Title: "Balance", Width: 14},
		{Title: "Paid", Width: 5},
		{Title: "Due", Width: 10},
		{Title: "Status", Width: 9},
	}

	return LoansModel{
		loanService:   loanSvc,
		clientService: clientSvc,
		table:         newTable(columns),
		duePicker:     NewPeriodPicker("Show loans", duePeriods()),
		dueWindow:     PeriodSelectedMsg{Label: "Any due date", Open: true},
		loading:       true,
	}
}

func (m LoansModel) Title() string { return "Loans" }
func (m LoansModel) ShortHelp() string {
	switch m.state {
	case loansStatePay, loansStateNew:
		return "Navigate form | Esc: cancel"
	case loansStateDetail:
		return "Esc: close | p: register payment"
	case loansStateDue:
		return "Esc: cancel | Enter: select"
	}
	return "Esc: back | Enter: details | p: pay | n: new loan | s: status | d: due window | r: refresh"
}

func (m LoansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LoansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLoansMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loans = msg.loans
		m.clients = msg.clients
		m.refreshTable()
		return m, nil

	case loanActionMsg:
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}
		m.status = msg.done
		return m, m.loadCmd()

	case PeriodSelectedMsg:
		m.dueWindow = msg
		m.state = loansStateBrowse
		m.table.Focus()
		m.loading = true
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case loansStateBrowse:
		return m.updateBrowse(msg)
	case loansStateDetail:
		return m.updateDetail(msg)
	case loansStatePay, loansStateNew:
		return m.updateForm(msg)
	case loansStateDue:
		return m.updateDue(msg)
	}

	return m, nil
}

func (m LoansModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if m.selected() != nil {
				m.state = loansStateDetail
			}
			return m, nil
		case "p":
			return m.enterPayMode()
		case "n":
			return m.enterNewMode()
		case "d":
			m.state = loansStateDue
			m.table.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LoansModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = loansStateBrowse
			return m, nil
		case "p":
			return m.enterPayMode()
		}
	}

	return m, nil
}

func (m LoansModel) updateDue(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && !m.duePicker.Editing() {
		m.state = loansStateBrowse
		m.table.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.duePicker, cmd = m.duePicker.Update(msg)
	return m, cmd
}

func (m LoansModel) selected() *loan.View {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.loans) {
		return nil
	}

	return m.loans[idx]
}

func (m LoansModel) enterPayMode() (tea.Model, tea.Cmd) {
	v := m.selected()
	if v == nil {
		return m, nil
	}

	if v.Status == ledger.StatusSettled {
		m.status = "Loan is already settled."
		return m, nil
	}

	m.formInterestOnly = true
	m.formValue = export.FormatAmount(v.SuggestedInterest)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Key("kind").
				Title("Payment").
				Options(
					huh.NewOption("Interest only (due date moves one month)", true),
					huh.NewOption("Principal", false),
				).
				Value(&m.formInterestOnly),

			huh.NewInput().
				Key("value").
				Title("Value").
				Description(fmt.Sprintf("Interest %s | Settlement %s",
					FormatAmount(v.SuggestedInterest), FormatAmount(v.SuggestedSettlement))).
				Value(&m.formValue).
				Validate(validatePositiveAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = loansStatePay
	m.table.Blur()
	return m, m.form.Init()
}

func (m LoansModel) enterNewMode() (tea.Model, tea.Cmd) {
	if len(m.clients) == 0 {
		m.status = "Register a client first."
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(m.clients))
	for _, c := range m.clients {
		options = append(options, huh.NewOption(c.Client.Name, c.Client.ID.String()))
	}

	m.formClientID = m.clients[0].Client.ID.String()
	m.formAmount = ""
	m.formRate = ""
	m.formTotal = ""
	m.formStart = FormatDate(time.Now())
	m.formDue = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("client").
				Title("Client").
				Options(options...).
				Value(&m.formClientID),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validatePositiveAmount),

			huh.NewInput().
				Key("rate").
				Title("Interest rate % (optional)").
				Placeholder("default").
				Value(&m.formRate).
				Validate(validateOptionalRate),

			huh.NewInput().
				Key("total").
				Title("Total to receive (optional)").
				Placeholder("amount + one month of interest").
				Value(&m.formTotal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return validatePositiveAmount(s)
				}),

			huh.NewInput().
				Key("start").
				Title("Start date").
				Value(&m.formStart).
				Validate(validateOptionalDate),

			huh.NewInput().
				Key("due").
				Title("Due date (optional)").
				Placeholder("one month after start").
				Value(&m.formDue).
				Validate(validateOptionalDate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = loansStateNew
	m.table.Blur()
	return m, m.form.Init()
}

func (m LoansModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == loansStatePay {
		return m, m.payCmd()
	}

	return m, m.createCmd()
}

func validatePositiveAmount(s string) error {
	v, err := importer.ParseAmount(s)
	if err != nil {
		return errors.New("enter an amount like 1.234,56")
	}

	if v <= 0 {
		return errors.New("amount must be positive")
	}

	return nil
}

func validateOptionalRate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := parseRate(s)

	return err
}

func parseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, errors.New("enter a rate like 5 or 2,5")
	}

	if d.IsNegative() {
		return decimal.Zero, errors.New("rate cannot be negative")
	}

	return d, nil
}

func (m LoansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading loans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	label := "All"
	if f := statusFilters[m.statusFilterIdx]; f != "" {
		label = string(f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | [d] %s", activeStyle(label), activeStyle(m.dueWindow.Label))
	if !m.dueWindow.Open {
		count, expected := dueSummary(m.loans)
		header += fmt.Sprintf("\n%d open loan(s) due, %s still to receive", count, okStyle(FormatAmount(expected)))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	var panel string

	switch m.state {
	case loansStateDetail:
		panel = m.detailView()
	case loansStatePay:
		panel = "Register Payment\n\n" + m.form.View()
	case loansStateNew:
		panel = "New Loan\n\n" + m.form.View()
	case loansStateDue:
		panel = m.duePicker.View()
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(52).
				Render(panel),
		)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LoansModel) detailView() string {
	v := m.selected()
	if v == nil {
		return ""
	}

	l := v.Loan

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(l.ClientName) + "\n\n")
	sb.WriteString(fmt.Sprintf("Amount:     %s at %s%%\n", FormatAmount(l.Amount), l.InterestRate.String()))
	sb.WriteString(fmt.Sprintf("Total:      %s\n", FormatAmount(l.TotalToReceive)))
	sb.WriteString(fmt.Sprintf("Paid:       %s (%.0f%%)\n", FormatAmount(l.AmountPaid), v.ProgressPercent))
	sb.WriteString(fmt.Sprintf("  interest  %s\n", FormatAmount(v.InterestPaid)))
	sb.WriteString(fmt.Sprintf("  principal %s\n", FormatAmount(v.PrincipalPaid)))
	sb.WriteString(fmt.Sprintf("Balance:    %s\n", FormatAmount(v.RemainingBalance)))
	sb.WriteString(fmt.Sprintf("Period:     %s - %s [%s]\n", FormatDate(l.StartDate), FormatDate(l.DueDate), v.Status))

	if len(v.History) == 0 {
		sb.WriteString("\nNo payments yet.")
		return sb.String()
	}

	sb.WriteString("\nHistory\n")

	for _, h := range v.History {
		kind := "Amortização"
		if h.Payment.Kind == ledger.KindInterest {
			kind = "Juros"
		}

		sb.WriteString(fmt.Sprintf("  %s %-12s %14s  bal. %s\n",
			FormatDate(h.Payment.Date), kind, FormatAmount(h.Payment.Value), FormatAmount(h.BalanceAfter)))
	}

	return sb.String()
}

func (m *LoansModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.loans))
	for _, v := range m.loans {
		rows = append(rows, table.Row{
			v.Loan.ClientName,
			FormatAmount(v.Loan.Amount),
			FormatAmount(v.Loan.TotalToReceive),
			FormatAmount(v.RemainingBalance),
			fmt.Sprintf("%.0f%%", v.ProgressPercent),
			FormatDate(v.Loan.DueDate),
			string(v.Status),
		})
	}
	m.table.SetRows(rows)
}

// dueSummary counts the loans that are not settled and adds up what they still owe.
func dueSummary(loans []*loan.View) (int, int64) {
	var (
		count    int
		expected int64
	)

	for _, v := range loans {
		if v.Status == ledger.StatusSettled {
			continue
		}

		count++
		expected += v.RemainingBalance
	}

	return count, expected
}

// Messages

type loadLoansMsg struct {
	loans   []*loan.View
	clients []*client.View
	err     error
}

func (m LoansModel) loadCmd() tea.Cmd {
	var filter loan.ListFilter
	if f := statusFilters[m.statusFilterIdx]; f != "" {
		filter.Status = &f
	}

	if !m.dueWindow.Open {
		filter.DueFrom = new(m.dueWindow.From)
		filter.DueTo = new(m.dueWindow.To)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		loans, err := m.loanService.List(ctx, filter)
		if err != nil {
			return loadLoansMsg{err: err}
		}

		clients, err := m.clientService.List(ctx)
		return loadLoansMsg{loans: loans, clients: clients, err: err}
	}
}

type loanActionMsg struct {
	done string
	err  error
}

func (m LoansModel) payCmd() tea.Cmd {
	v := m.selected()
	if v == nil {
		return nil
	}

	req := loan.PaymentRequest{LoanID: v.Loan.ID, InterestOnly: m.form.GetBool("kind")}
	value := m.form.GetString("value")

	return func() tea.Msg {
		var err error
		if req.Value, err = importer.ParseAmount(value); err != nil {
			return loanActionMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		receipt, err := m.loanService.RegisterPayment(ctx, req)
		if err != nil {
			return loanActionMsg{err: err}
		}

		return loanActionMsg{done: fmt.Sprintf("%s received. Balance %s, due %s.",
			FormatAmount(receipt.Payment.Value),
			FormatAmount(receipt.View.RemainingBalance),
			FormatDate(receipt.View.Loan.DueDate))}
	}
}

func (m LoansModel) createCmd() tea.Cmd {
	clientID, amount, rate, total := m.form.GetString("client"), m.form.GetString("amount"),
		m.form.GetString("rate"), m.form.GetString("total")
	start, due := m.form.GetString("start"), m.form.GetString("due")

	return func() tea.Msg {
		params, err := newLoanParams(clientID, amount, rate, total, start, due)
		if err != nil {
			return loanActionMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		v, err := m.loanService.Create(ctx, params)
		if err != nil {
			return loanActionMsg{err: err}
		}

		return loanActionMsg{done: fmt.Sprintf("Loan of %s to %s created, %s due %s.",
			FormatAmount(v.Loan.Amount), v.Loan.ClientName,
			FormatAmount(v.Loan.TotalToReceive), FormatDate(v.Loan.DueDate))}
	}
}

// newLoanParams turns the new loan form into service parameters. Empty
// optional fields are left zero so the service applies its defaults.
func newLoanParams(clientID, amount, rate, total, start, due string) (loan.CreateParams, error) {
	var (
		params loan.CreateParams
		err    error
	)

	if params.ClientID, err = uuid.Parse(clientID); err != nil {
		return params, fmt.Errorf("invalid client: %w", err)
	}

	if params.Amount, err = importer.ParseAmount(amount); err != nil {
		return params, fmt.Errorf("invalid amount: %w", err)
	}

	if strings.TrimSpace(rate) != "" {
		r, err := parseRate(rate)
		if err != nil {
			return params, err
		}
		params.InterestRate = &r
	}

	if strings.TrimSpace(total) != "" {
		if params.TotalToReceive, err = importer.ParseAmount(total); err != nil {
			return params, fmt.Errorf("invalid total: %w", err)
		}
	}

	if strings.TrimSpace(start) != "" {
		if params.StartDate, err = parseDate(start); err != nil {
			return params, err
		}
	}

	if strings.TrimSpace(due) != "" {
		if params.DueDate, err = parseDate(due); err != nil {
			return params, err
		}
	}

	return params, nil
}
