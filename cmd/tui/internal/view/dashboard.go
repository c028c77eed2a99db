package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/report"
)

// trendWindow is the number of months shown in the activity section.
const trendWindow = 6

type DashboardModel struct {
	CommonModel
	svc *ledger.Service
}

func NewDashboardModel(svc *ledger.Service) DashboardModel {
	return DashboardModel{svc: svc}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).PaddingTop(1)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

func (m DashboardModel) View() string {
	state := m.svc.Snapshot()

	var b strings.Builder

	b.WriteString(titleStyle.Render("Vue d'ensemble"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Solde total       %s\n", signedAmount(report.TotalBalance(state))))
	b.WriteString(fmt.Sprintf("Revenus           %s\n", FormatAmount(report.TotalIncome(state))))
	b.WriteString(fmt.Sprintf("Dépenses          %s\n", FormatAmount(report.TotalExpenses(state))))
	b.WriteString(fmt.Sprintf("Résultat net      %s\n", signedAmount(report.NetIncome(state))))

	if over := report.OverBudgetCount(state); over > 0 {
		b.WriteString(negativeStyle.Render(fmt.Sprintf("\n%d budget(s) dépassé(s)", over)))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Comptes"))
	b.WriteString("\n")

	for _, s := range report.AccountTypeSummaries(state) {
		if s.Count == 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("%-16s —", AccountTypeLabel(s.Type))))
			b.WriteString("\n")

			continue
		}

		b.WriteString(fmt.Sprintf("%-16s %d compte(s)  %s\n",
			AccountTypeLabel(s.Type), s.Count, signedAmount(s.Total)))
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Activité (%d derniers mois)", trendWindow)))
	b.WriteString("\n")

	trends := report.MonthlyTrends(state, trendWindow)
	if len(trends) == 0 {
		b.WriteString(faintStyle.Render("Aucune transaction"))
		b.WriteString("\n")
	}

	for _, t := range trends {
		b.WriteString(fmt.Sprintf("%04d-%02d  +%s  -%s\n",
			t.Year, int(t.Month), FormatAmount(t.Income), FormatAmount(t.Expenses)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func signedAmount(d decimal.Decimal) string {
	s := FormatAmount(d.Abs())
	if d.IsNegative() {
		return negativeStyle.Render("-" + s)
	}

	return positiveStyle.Render(s)
}
