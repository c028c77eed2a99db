package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/ledger"
)

type importState int

const (
	importStateForm importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service
	ledgerService *ledger.Service

	state importState
	err   error

	form     *huh.Form
	format   string
	path     string
	spinner  spinner.Model
	imported int
}

func NewImportModel(importSvc *importer.Service, ledgerSvc *ledger.Service) ImportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ImportModel{
		importService: importSvc,
		ledgerService: ledgerSvc,
		format:        string(importer.FormatCSV),
		spinner:       s,
	}
	m.form = m.buildForm()

	return m
}

func (m ImportModel) Title() string { return "Import" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateResult:
		return "Esc: back to menu"
	case importStateImporting:
		return "Importing..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateForm:
		return m.updateForm(msg)
	case importStateImporting:
		return m.updateImporting(msg)
	case importStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ImportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick,
		m.runImportCmd(m.form.GetString("format"), m.form.GetString("path")))
}

func (m ImportModel) updateImporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(importResultMsg); ok {
		m.state = importStateResult
		m.err = result.err
		m.imported = result.imported

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ImportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m *ImportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV (relevé bancaire)", string(importer.FormatCSV)),
					huh.NewOption("JSON (sauvegarde)", string(importer.FormatJSON)),
				).
				Value(&m.format),

			huh.NewInput().
				Key("path").
				Title("File Path").
				Placeholder("./releve.csv").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Importing transactions...", m.spinner.View()),
		)

	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Import Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%d record(s) imported", m.imported),
		),
	)
}

type importResultMsg struct {
	imported int
	err      error
}

func (m ImportModel) runImportCmd(format, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		cmds, imported, err := m.importService.Import(
			importer.Format(format), f, m.ledgerService.Snapshot())
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := SaveCtx()
		defer cancel()

		m.ledgerService.DispatchAll(ctx, cmds)

		return importResultMsg{imported: imported}
	}
}
