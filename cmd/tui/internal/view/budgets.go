package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/report"
)

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateAdd
)

type BudgetsModel struct {
	CommonModel
	svc *ledger.Service

	state  budgetsState
	cursor int
	bar    progress.Model
	status string

	form *huh.Form

	// Form bindings
	formName     string
	formCategory string
	formAmount   string
	formPeriod   string
}

func NewBudgetsModel(svc *ledger.Service) BudgetsModel {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	return BudgetsModel{svc: svc, bar: bar}
}

func (m BudgetsModel) Title() string { return "Budgets" }
func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | d: delete | ↑/↓: select"
}

func (m BudgetsModel) Init() tea.Cmd {
	return nil
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == budgetsStateAdd {
		return m.updateAdd(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	budgets := m.svc.Snapshot().Budgets

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(budgets)-1 {
			m.cursor++
		}
	case "n":
		return m.enterAddMode()
	case "d":
		if m.cursor >= 0 && m.cursor < len(budgets) {
			ctx, cancel := SaveCtx()
			defer cancel()

			m.svc.Dispatch(ctx, ledger.DeleteBudget{ID: budgets[m.cursor].ID})
			m.status = "Budget supprimé"

			if m.cursor > 0 {
				m.cursor--
			}
		}
	}

	return m, nil
}

func (m BudgetsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCategory = ""
	m.formAmount = ""
	m.formPeriod = string(ledger.PeriodMonthly)

	categories := m.svc.Snapshot().Categories

	options := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		if c.Type == ledger.CategoryExpense {
			options = append(options, huh.NewOption(c.Name, c.ID))
		}
	}

	if len(options) == 0 {
		m.status = "Aucune catégorie de dépense"
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nom").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Catégorie").
				Options(options...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Plafond").
				Placeholder("400").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("period").
				Title("Période").
				Options(
					huh.NewOption("Hebdomadaire", string(ledger.PeriodWeekly)),
					huh.NewOption("Mensuelle", string(ledger.PeriodMonthly)),
					huh.NewOption("Annuelle", string(ledger.PeriodYearly)),
				).
				Value(&m.formPeriod),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetsStateAdd

	return m, m.form.Init()
}

func (m BudgetsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateBrowse
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

	// Read the completed form directly; the &m.formAmount bindings go stale
	// as the model is copied on every Update.
	amount, err := parseFormAmount(m.form.GetString("amount"))
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		m.state = budgetsStateBrowse
		m.form = nil

		return m, nil
	}

	b := ledger.Budget{
		ID:         uuid.NewString(),
		CategoryID: m.form.GetString("category"),
		Name:       m.form.GetString("name"),
		Amount:     amount,
		Period:     ledger.Period(m.form.GetString("period")),
	}
	b.StartDate, b.EndDate = periodBounds(b.Period, time.Now())

	ctx, cancel := SaveCtx()
	defer cancel()

	m.svc.Dispatch(ctx, ledger.AddBudget{Budget: b})
	m.status = "Budget ajouté"
	m.state = budgetsStateBrowse
	m.form = nil

	return m, nil
}

// periodBounds anchors a fresh budget window at the current week, month or
// year.
func periodBounds(p ledger.Period, now time.Time) (time.Time, time.Time) {
	switch p {
	case ledger.PeriodWeekly:
		offset := (int(now.Weekday()) + 6) % 7 // Monday-based week
		start := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())

		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case ledger.PeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
}

var budgetStatusStyles = map[report.BudgetState]lipgloss.Style{
	report.BudgetNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	report.BudgetWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	report.BudgetOver:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

func (m BudgetsModel) View() string {
	state := m.svc.Snapshot()

	if m.state == budgetsStateAdd && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	progressAll := report.BudgetProgressAll(state)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Budgets"))
	b.WriteString("\n\n")

	if len(progressAll) == 0 {
		b.WriteString(faintStyle.Render("Aucun budget"))
		b.WriteString("\n")
	}

	names := make(map[string]string, len(state.Categories))
	for _, c := range state.Categories {
		names[c.ID] = c.Name
	}

	for i, p := range progressAll {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		label := p.Budget.Name
		if label == "" {
			label = names[p.Budget.CategoryID]
		}

		statusStyle := budgetStatusStyles[p.Status]

		b.WriteString(fmt.Sprintf("%s%-24s %s\n", marker, label,
			statusStyle.Render(string(p.Status))))
		b.WriteString(fmt.Sprintf("  %s  %s / %s  (reste %s)\n\n",
			m.bar.ViewAs(p.Percentage/100),
			FormatAmount(p.Budget.Spent),
			FormatAmount(p.Budget.Amount),
			FormatAmount(p.Remaining),
		))
	}

	if m.status != "" {
		b.WriteString(faintStyle.Render(m.status))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
