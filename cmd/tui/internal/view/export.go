package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/credito/internal/export"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

const (
	exportTimeout    = 2 * time.Minute
	defaultExportDir = "./exports"
)

// ExportModel asks for a period and a directory, then writes the cash-flow
// statement as CSV.
type ExportModel struct {
	CommonModel
	exportService *export.Service

	form    *huh.Form
	spinner spinner.Model
	running bool
	result  *exportResultMsg
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		form:          exportForm(),
		spinner:       s,
	}
}

func exportForm() *huh.Form {
	periods := cashPeriods()

	options := make([]huh.Option[int], len(periods))
	for i, p := range periods {
		options[i] = huh.NewOption(p.Label, i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Key("period").Title("Period").Options(options...),
			huh.NewInput().
				Key("dir").
				Title("Output directory").
				Description("Created if missing").
				Placeholder(defaultExportDir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export Cash Flow" }

func (m ExportModel) ShortHelp() string {
	if m.running {
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportResultMsg:
		m.running = false
		m.result = &msg
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.running {
			return m, Back
		}
	}

	if m.running {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.result != nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	period, _ := m.form.Get("period").(int)
	selected := cashPeriods()[period].resolve(time.Now())

	m.running = true
	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(selected, m.form.GetString("dir")))
}

func (m ExportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.running:
		return style.Render(m.spinner.View() + " Exporting cash flow...")
	case m.result == nil:
		return style.Render(m.form.View())
	case m.result.err != nil:
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.result.err)))
	}

	return style.Render(okStyle("Export complete") + "\n\n" + m.result.body)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd(period PeriodSelectedMsg, dir string) tea.Cmd {
	if strings.TrimSpace(dir) == "" {
		dir = defaultExportDir
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		filter := transaction.ListFilter{}
		if !period.Open {
			filter.StartDate = new(period.From)
			filter.EndDate = new(period.To)
		}

		st, err := m.exportService.Statement(ctx, filter)
		if err != nil {
			return exportResultMsg{err: err}
		}

		path, err := writeStatement(dir, st, time.Now())
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: fmt.Sprintf("%s saved to %s\n\n%s", period.Label, path, export.Body(st))}
	}
}

// writeStatement writes st as fluxo_de_caixa_YYYYMMDD.csv inside dir.
func writeStatement(dir string, st *export.Statement, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("fluxo_de_caixa_%s.csv", now.Format("20060102")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, st); err != nil {
		return "", err
	}

	return path, f.Close()
}
