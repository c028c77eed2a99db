package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/nearfin/near/cmd/tui/internal/view"
	"github.com/nearfin/near/internal/config"
	"github.com/nearfin/near/internal/database"
	"github.com/nearfin/near/internal/export"
	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/importer/csvfile"
	"github.com/nearfin/near/internal/importer/jsonfile"
	"github.com/nearfin/near/internal/ledger"
	ledgerStore "github.com/nearfin/near/internal/ledger/store"
)

type model struct {
	ledgerService *ledger.Service
	importService *importer.Service
	exportService *export.Service

	currentView View

	dashboardView view.DashboardModel
	registerView  view.RegisterModel
	budgetsView   view.BudgetsModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewRegister  View = 2
	ViewBudgets   View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.Data.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	slot, err := ledgerStore.New(db)
	if err != nil {
		slog.Error("failed to prepare state store", "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(slot)
	if err := ledgerSvc.Init(context.Background()); err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	impSvc := importer.NewService(csvfile.New(), jsonfile.New())
	expSvc := export.NewService()

	return model{
		ledgerService: ledgerSvc,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(ledgerSvc),
		registerView:  view.NewRegisterModel(ledgerSvc),
		budgetsView:   view.NewBudgetsModel(ledgerSvc),
		importView:    view.NewImportModel(impSvc, ledgerSvc),
		exportView:    view.NewExportModel(expSvc, ledgerSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.ledgerService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewRegister
				m.registerView = view.NewRegisterModel(m.ledgerService)

				return m, m.registerView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.ledgerService)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.ledgerService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.ledgerService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Near TUI\n\n" +
				"1. Dashboard\n" +
				"2. Register\n" +
				"3. Budgets\n" +
				"4. Import Transactions\n" +
				"5. Export Data\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewRegister:
		return m.registerView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	m := initialModel()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.ledgerService.Close(ctx); err != nil {
		slog.Error("failed to save state on exit", "error", err)
	}
}
