package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/credito/internal/client"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateNew
)

type ClientsModel struct {
	CommonModel
	clientService *client.Service

	state   clientsState
	table   table.Model
	clients []*client.View
	form    *huh.Form

	loading bool
	err     error
	status  string

	formName     string
	formDocument string
}

func NewClientsModel(svc *client.Service) ClientsModel {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Name", Width: 30},
		{Title: "Document", Width: 18},
		{Title: "Loans", Width: 6},
		{Title: "Open", Width: 16},
		{Title: "Status", Width: 10},
	}

	return ClientsModel{
		clientService: svc,
		table:         newTable(columns),
		loading:       true,
	}
}

// newTable builds a focused table with the app's header and selection styles.
func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m ClientsModel) Title() string { return "Clients" }
func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateNew {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new client | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.clients = msg.clients
		m.refreshTable()
		return m, nil

	case registerClientMsg:
		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Error registering client: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Registered %s.", msg.client.Name)
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == clientsStateNew {
		return m.updateNew(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterNewMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ClientsModel) enterNewMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formDocument = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("document").
				Title("CPF / CNPJ (optional)").
				Value(&m.formDocument),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateNew
	m.table.Blur()
	return m, m.form.Init()
}

func (m ClientsModel) updateNew(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = clientsStateBrowse
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

	return m, m.registerCmd(m.form.GetString("name"), m.form.GetString("document"))
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == clientsStateNew && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Client\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, v := range m.clients {
		rows = append(rows, table.Row{
			v.Client.Initials,
			v.Client.Name,
			v.Client.Document,
			fmt.Sprintf("%d", v.OpenLoans),
			FormatAmount(v.TotalOpen),
			string(v.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadClientsMsg struct {
	clients []*client.View
	err     error
}

func (m ClientsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx)
		return loadClientsMsg{clients: clients, err: err}
	}
}

type registerClientMsg struct {
	client *client.Client
	err    error
}

func (m ClientsModel) registerCmd(name, document string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.clientService.Register(ctx, client.RegisterParams{Name: name, Document: document})
		return registerClientMsg{client: c, err: err}
	}
}
