package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/report"
)

type registerState int

const (
	registerStateBrowse registerState = iota
	registerStateAdd
	registerStateSearch
)

type RegisterModel struct {
	CommonModel
	svc *ledger.Service

	state      registerState
	table      table.Model
	accountIdx int
	txs        []ledger.Transaction
	search     string
	status     string

	form *huh.Form

	// Form bindings
	formDate     string
	formDesc     string
	formAmount   string
	formCategory string
	formType     string
	formSearch   string
}

func NewRegisterModel(svc *ledger.Service) RegisterModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 34},
		{Title: "Catégorie", Width: 16},
		{Title: "Montant", Width: 12},
		{Title: "Pointé", Width: 8},
	}

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

	m := RegisterModel{
		svc:   svc,
		table: t,
	}
	m.refreshTable()

	return m
}

func (m RegisterModel) Title() string { return "Register" }
func (m RegisterModel) ShortHelp() string {
	switch m.state {
	case registerStateAdd:
		return "Navigate form | Esc: cancel"
	case registerStateSearch:
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | a: account | n: new | x: reconcile | d: delete | /: search"
}

func (m RegisterModel) Init() tea.Cmd {
	return nil
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(sizeMsg.Height - 10)
		return m, nil
	}

	switch m.state {
	case registerStateBrowse:
		return m.updateBrowse(msg)
	case registerStateAdd:
		return m.updateAdd(msg)
	case registerStateSearch:
		return m.updateSearch(msg)
	}

	return m, nil
}

func (m RegisterModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			accounts := m.svc.Snapshot().Accounts
			if len(accounts) > 0 {
				m.accountIdx = (m.accountIdx + 1) % len(accounts)
				m.search = ""
				m.refreshTable()
			}

			return m, nil
		case "/":
			return m.enterSearchMode()
		case "n":
			return m.enterAddMode()
		case "x":
			return m.toggleReconciled()
		case "d":
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RegisterModel) enterSearchMode() (tea.Model, tea.Cmd) {
	m.formSearch = m.search
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("search").
				Title("Recherche").
				Placeholder("description...").
				Value(&m.formSearch),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = registerStateSearch
	m.table.Blur()

	return m, m.form.Init()
}

func (m RegisterModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.exitForm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// The model is copied on every Update, so the &m.formSearch binding goes
	// stale; read the completed form directly.
	m.search = m.form.GetString("search")
	m = m.exitForm()
	m.refreshTable()

	return m, nil
}

func (m RegisterModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formDate = ""
	m.formDesc = ""
	m.formAmount = ""
	m.formCategory = ""
	m.formType = string(ledger.TypeExpense)

	categories := m.svc.Snapshot().Categories

	options := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		options = append(options, huh.NewOption(c.Name, c.Name))
	}

	if len(options) == 0 {
		options = append(options, huh.NewOption("Divers", "Divers"))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("JJ/MM/AAAA").
				Value(&m.formDate).
				Validate(validateDate),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Montant").
				Placeholder("85,50").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("category").
				Title("Catégorie").
				Options(options...).
				Value(&m.formCategory),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Dépense", string(ledger.TypeExpense)),
					huh.NewOption("Revenu", string(ledger.TypeIncome)),
					huh.NewOption("Virement", string(ledger.TypeTransfer)),
				).
				Value(&m.formType),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = registerStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m RegisterModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.exitForm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	tx, err := m.buildTransaction()
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m.exitForm(), nil
	}

	ctx, cancel := SaveCtx()
	defer cancel()

	m.svc.Dispatch(ctx, ledger.AddTransaction{Transaction: tx})
	m.status = "Transaction ajoutée"
	m = m.exitForm()
	m.refreshTable()

	return m, nil
}

func (m RegisterModel) buildTransaction() (ledger.Transaction, error) {
	date, err := parseFormDate(m.form.GetString("date"))
	if err != nil {
		return ledger.Transaction{}, err
	}

	amount, err := parseFormAmount(m.form.GetString("amount"))
	if err != nil {
		return ledger.Transaction{}, err
	}

	kind := ledger.TransactionType(m.form.GetString("type"))

	switch kind {
	case ledger.TypeExpense:
		amount = amount.Abs().Neg()
	case ledger.TypeIncome:
		amount = amount.Abs()
	}

	account, ok := m.currentAccount()
	if !ok {
		return ledger.Transaction{}, fmt.Errorf("no account to register against")
	}

	return ledger.Transaction{
		ID:          uuid.NewString(),
		AccountID:   account.ID,
		Date:        date,
		Description: m.form.GetString("description"),
		Amount:      amount,
		Category:    m.form.GetString("category"),
		Type:        kind,
	}, nil
}

func (m RegisterModel) toggleReconciled() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	tx.Reconciled = !tx.Reconciled

	ctx, cancel := SaveCtx()
	defer cancel()

	m.svc.Dispatch(ctx, ledger.UpdateTransaction{Transaction: tx})
	m.refreshTable()

	return m, nil
}

func (m RegisterModel) deleteSelected() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	ctx, cancel := SaveCtx()
	defer cancel()

	m.svc.Dispatch(ctx, ledger.DeleteTransaction{ID: m.txs[idx].ID})
	m.status = "Transaction supprimée"
	m.refreshTable()

	return m, nil
}

func (m RegisterModel) exitForm() RegisterModel {
	m.state = registerStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m RegisterModel) currentAccount() (ledger.Account, bool) {
	accounts := m.svc.Snapshot().Accounts
	if len(accounts) == 0 {
		return ledger.Account{}, false
	}

	if m.accountIdx >= len(accounts) {
		return accounts[0], true
	}

	return accounts[m.accountIdx], true
}

func (m *RegisterModel) refreshTable() {
	state := m.svc.Snapshot()

	account, ok := m.currentAccount()
	if !ok {
		m.txs = nil
		m.table.SetRows(nil)

		return
	}

	m.txs = report.Register(state, report.RegisterFilter{
		AccountID: account.ID,
		Search:    m.search,
	})

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		reconciled := ""
		if tx.Reconciled {
			reconciled = "✓"
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			tx.Category,
			FormatAmount(tx.Amount),
			reconciled,
		})
	}

	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m RegisterModel) View() string {
	state := m.svc.Snapshot()

	account, ok := m.currentAccount()
	if !ok {
		return lipgloss.NewStyle().Padding(2).Render("Aucun compte. Créez-en un via l'API.")
	}

	header := fmt.Sprintf("[a] Compte: %s (%s)  Solde pointé: %s  Non pointées: %d",
		activeStyle(account.Name),
		AccountTypeLabel(account.Type),
		FormatAmount(report.ReconciledBalance(state, account.ID)),
		report.UnreconciledCount(state, account.ID),
	)

	if m.search != "" {
		header += faintStyle.Render(fmt.Sprintf("  filtre: %q", m.search))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func validateDate(s string) error {
	_, err := parseFormDate(s)
	return err
}

func validateAmount(s string) error {
	_, err := parseFormAmount(s)
	return err
}

func parseFormDate(s string) (t time.Time, err error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}

	return t, fmt.Errorf("expected JJ/MM/AAAA")
}

func parseFormAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return decimal.NewFromString(s)
}
