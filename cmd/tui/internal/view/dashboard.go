package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/portfolio"
)

// DashboardModel shows the portfolio figures and the clients that are behind.
type DashboardModel struct {
	CommonModel
	portfolio *portfolio.Service

	stats       ledger.Stats
	delinquency portfolio.DelinquencyReport

	loading bool
	err     error
}

func NewDashboardModel(svc *portfolio.Service) DashboardModel {
	return DashboardModel{
		portfolio: svc,
		loading:   true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
		m.delinquency = msg.delinquency

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var cardStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 2).
	Width(26)

func card(label string, cents int64) string {
	return cardStyle.Render(
		lipgloss.NewStyle().Faint(true).Render(label) + "\n" +
			lipgloss.NewStyle().Bold(true).Render(FormatAmount(cents)),
	)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading portfolio...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Cash Balance", m.stats.TotalBalance),
		card("Principal Out", m.stats.PrincipalOut),
		card("Interest Pending", m.stats.InterestPending),
		card("Total Received", m.stats.TotalReceived),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, cards, "", m.delinquencyView()),
	)
}

func (m DashboardModel) delinquencyView() string {
	if len(m.delinquency.Clients) == 0 {
		return okStyle("No late clients.")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Late clients: %s\n\n", errorStyle(FormatAmount(m.delinquency.TotalLate))))

	for _, lc := range m.delinquency.Clients {
		sb.WriteString(fmt.Sprintf("  [%s] %-30s %3d loan(s)  %s\n",
			lc.Client.Initials, lc.Client.Name, lc.OpenLoans, FormatAmount(lc.TotalOpen)))
	}

	return sb.String()
}

type dashboardMsg struct {
	stats       ledger.Stats
	delinquency portfolio.DelinquencyReport
	err         error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.portfolio.Stats(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}

		report, err := m.portfolio.Delinquency(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}

		return dashboardMsg{stats: stats, delinquency: report}
	}
}
