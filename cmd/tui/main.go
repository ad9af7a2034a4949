package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/credito/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/credito/internal/client"
	clientStore "github.com/MrJamesThe3rd/credito/internal/client/store"
	"github.com/MrJamesThe3rd/credito/internal/config"
	"github.com/MrJamesThe3rd/credito/internal/database"
	"github.com/MrJamesThe3rd/credito/internal/export"
	"github.com/MrJamesThe3rd/credito/internal/importer"
	"github.com/MrJamesThe3rd/credito/internal/loan"
	loanStore "github.com/MrJamesThe3rd/credito/internal/loan/store"
	"github.com/MrJamesThe3rd/credito/internal/portfolio"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
	txStore "github.com/MrJamesThe3rd/credito/internal/transaction/store"
)

type model struct {
	appName string

	loanService      *loan.Service
	clientService    *client.Service
	txService        *transaction.Service
	portfolioService *portfolio.Service
	importService    *importer.Service
	exportService    *export.Service

	currentView View
	screen      view.View
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewClients   View = 2
	ViewLoans     View = 3
	ViewCashFlow  View = 4
	ViewImport    View = 5
	ViewExport    View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := view.DbCtx()
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	clients := clientStore.New(db)

	txSvc := transaction.NewService(txStore.New(db))
	loanSvc := loan.NewService(loanStore.New(db), clients, cfg.Lending.DefaultInterestRate, time.Now)
	clientSvc := client.NewService(clients, loanSvc, time.Now)

	return model{
		appName:          cfg.App.Name,
		loanService:      loanSvc,
		clientService:    clientSvc,
		txService:        txSvc,
		portfolioService: portfolio.NewService(loanSvc, txSvc, clientSvc, time.Now),
		importService:    importer.NewService(loanSvc),
		exportService:    export.NewService(txSvc),
		currentView:      ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// open builds a fresh screen for v so every visit reloads from the database.
func (m model) open(v View) view.View {
	switch v {
	case ViewDashboard:
		return view.NewDashboardModel(m.portfolioService)
	case ViewClients:
		return view.NewClientsModel(m.clientService)
	case ViewLoans:
		return view.NewLoansModel(m.loanService, m.clientService)
	case ViewCashFlow:
		return view.NewCashFlowModel(m.txService)
	case ViewImport:
		return view.NewImportModel(m.importService)
	case ViewExport:
		return view.NewExportModel(m.exportService)
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5", "6":
				m.currentView = View(msg.String()[0] - '0')
				m.screen = m.open(m.currentView)

				return m, m.screen.Init()
			}

			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	newModel, cmd := m.screen.Update(msg)
	if screen, ok := newModel.(view.View); ok {
		m.screen = screen
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.screen == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Clients\n" +
				"3. Loans\n" +
				"4. Cash Flow\n" +
				"5. Import Payments\n" +
				"6. Export Cash Flow\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.screen.ShortHelp())
	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.screen.Title())

	return title + "\n" + m.screen.View() + "\n" + help
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
