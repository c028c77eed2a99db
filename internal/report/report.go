// Package report computes derived views over a ledger snapshot. Every
// function here is pure: it reads the state, allocates its own results and
// is safe to recompute on every read.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

// TotalBalance sums every account balance with its stored sign, so credit
// accounts carrying negative balances subtract from the total.
func TotalBalance(state ledger.State) decimal.Decimal {
	total := decimal.Zero
	for _, a := range state.Accounts {
		total = total.Add(a.Balance)
	}

	return total
}

// TypeSummary aggregates the accounts of one type.
type TypeSummary struct {
	Type  ledger.AccountType
	Count int
	Total decimal.Decimal
}

// accountTypes fixes the display order of the per-type breakdown.
var accountTypes = []ledger.AccountType{
	ledger.AccountChecking,
	ledger.AccountSavings,
	ledger.AccountCredit,
	ledger.AccountInvestment,
}

// AccountTypeSummaries groups accounts by type, returning one row per known
// type even when no account of that type exists.
func AccountTypeSummaries(state ledger.State) []TypeSummary {
	summaries := make([]TypeSummary, len(accountTypes))
	for i, at := range accountTypes {
		summaries[i] = TypeSummary{Type: at, Total: decimal.Zero}
	}

	index := make(map[ledger.AccountType]int, len(accountTypes))
	for i, at := range accountTypes {
		index[at] = i
	}

	for _, a := range state.Accounts {
		i, ok := index[a.Type]
		if !ok {
			continue
		}

		summaries[i].Count++
		summaries[i].Total = summaries[i].Total.Add(a.Balance)
	}

	return summaries
}

// RegisterFilter narrows the transactions shown for one account.
type RegisterFilter struct {
	AccountID string
	Search    string // case-insensitive substring on description
	Category  string // exact match, empty matches everything
}

// Register returns the account's transactions matching the filter, newest
// first. The sort is stable: same-day transactions keep insertion order.
func Register(state ledger.State, filter RegisterFilter) []ledger.Transaction {
	search := strings.ToLower(filter.Search)

	var txs []ledger.Transaction

	for _, t := range state.Transactions {
		if t.AccountID != filter.AccountID {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}

		if filter.Category != "" && t.Category != filter.Category {
			continue
		}

		txs = append(txs, t)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	return txs
}

// ReconciledBalance sums the amounts of an account's reconciled transactions.
func ReconciledBalance(state ledger.State, accountID string) decimal.Decimal {
	total := decimal.Zero

	for _, t := range state.Transactions {
		if t.AccountID == accountID && t.Reconciled {
			total = total.Add(t.Amount)
		}
	}

	return total
}

// UnreconciledCount counts the account's transactions still waiting to be
// checked off against a statement.
func UnreconciledCount(state ledger.State, accountID string) int {
	count := 0

	for _, t := range state.Transactions {
		if t.AccountID == accountID && !t.Reconciled {
			count++
		}
	}

	return count
}

// BudgetState classifies how far along a budget is.
type BudgetState string

const (
	BudgetNormal  BudgetState = "normal"
	BudgetWarning BudgetState = "warning"
	BudgetOver    BudgetState = "over"
)

// BudgetProgress is the chart-ready progress of one budget.
type BudgetProgress struct {
	Budget     ledger.Budget
	Percentage float64 // clamped to [0,100] for display
	Status     BudgetState
	Remaining  decimal.Decimal // negative when over budget
}

// Progress computes a budget's spend ratio. The display percentage is clamped
// to [0,100] but the status comes from the raw ratio: >=100% is over, >=80%
// is warning. A zero amount is over when anything was spent and normal
// otherwise, with the percentage reported as 0.
func Progress(b ledger.Budget) BudgetProgress {
	p := BudgetProgress{
		Budget:    b,
		Remaining: b.Amount.Sub(b.Spent),
		Status:    BudgetNormal,
	}

	if b.Amount.IsZero() {
		if b.Spent.IsPositive() {
			p.Status = BudgetOver
		}

		return p
	}

	ratio := b.Spent.Div(b.Amount).Mul(hundred)

	switch {
	case ratio.GreaterThanOrEqual(hundred):
		p.Status = BudgetOver
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(80)):
		p.Status = BudgetWarning
	}

	display := ratio
	if display.GreaterThan(hundred) {
		display = hundred
	}

	if display.IsNegative() {
		display = decimal.Zero
	}

	p.Percentage = display.InexactFloat64()

	return p
}

// BudgetProgressAll computes progress for every budget, preserving order.
func BudgetProgressAll(state ledger.State) []BudgetProgress {
	progress := make([]BudgetProgress, len(state.Budgets))
	for i, b := range state.Budgets {
		progress[i] = Progress(b)
	}

	return progress
}

// OverBudgetCount counts budgets whose spent total exceeds their cap.
func OverBudgetCount(state ledger.State) int {
	count := 0

	for _, b := range state.Budgets {
		if b.Spent.GreaterThan(b.Amount) {
			count++
		}
	}

	return count
}

// CategoryTotal is the aggregated spend or income of one category.
type CategoryTotal struct {
	Name   string
	Color  string
	Amount decimal.Decimal
	Share  float64 // percentage of the type's grand total
}

// CategoryTotals sums, per category of the given type, the absolute amounts
// of transactions whose category label equals the category's name (a string
// match; transactions never reference Category.ID). Categories with no
// matching transactions are dropped.
func CategoryTotals(state ledger.State, kind ledger.CategoryType) []CategoryTotal {
	var totals []CategoryTotal

	for _, c := range state.Categories {
		if c.Type != kind {
			continue
		}

		amount := decimal.Zero

		for _, t := range state.Transactions {
			if t.Category == c.Name && string(t.Type) == string(kind) {
				amount = amount.Add(t.Amount.Abs())
			}
		}

		if amount.IsZero() {
			continue
		}

		totals = append(totals, CategoryTotal{Name: c.Name, Color: c.Color, Amount: amount})
	}

	grand := decimal.Zero
	for _, ct := range totals {
		grand = grand.Add(ct.Amount)
	}

	if grand.IsPositive() {
		for i := range totals {
			totals[i].Share = totals[i].Amount.Div(grand).Mul(hundred).InexactFloat64()
		}
	}

	return totals
}

// MonthBucket accumulates one calendar month of activity.
type MonthBucket struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal // absolute value
}

// MonthlyTrends buckets transactions by calendar month and returns the most
// recent n buckets in chronological order. Buckets are keyed and sorted by
// the (year, month) tuple, never by a formatted month name.
func MonthlyTrends(state ledger.State, n int) []MonthBucket {
	type key struct {
		year  int
		month time.Month
	}

	buckets := make(map[key]*MonthBucket)

	for _, t := range state.Transactions {
		k := key{year: t.Date.Year(), month: t.Date.Month()}

		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{Year: k.year, Month: k.month, Income: decimal.Zero, Expenses: decimal.Zero}
			buckets[k] = b
		}

		switch t.Type {
		case ledger.TypeIncome:
			b.Income = b.Income.Add(t.Amount)
		case ledger.TypeExpense:
			b.Expenses = b.Expenses.Add(t.Amount.Abs())
		}
	}

	trends := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		trends = append(trends, *b)
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year < trends[j].Year
		}

		return trends[i].Month < trends[j].Month
	})

	if n > 0 && len(trends) > n {
		trends = trends[len(trends)-n:]
	}

	return trends
}

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(state ledger.State) decimal.Decimal {
	total := decimal.Zero

	for _, t := range state.Transactions {
		if t.Type == ledger.TypeIncome {
			total = total.Add(t.Amount)
		}
	}

	return total
}

// TotalExpenses sums the absolute amounts of all expense transactions.
func TotalExpenses(state ledger.State) decimal.Decimal {
	total := decimal.Zero

	for _, t := range state.Transactions {
		if t.Type == ledger.TypeExpense {
			total = total.Add(t.Amount.Abs())
		}
	}

	return total
}

// NetIncome is income minus expenses across all accounts.
func NetIncome(state ledger.State) decimal.Decimal {
	return TotalIncome(state).Sub(TotalExpenses(state))
}

// RecomputeSpent derives what a budget's Spent field would be if it were
// computed from transactions: the absolute expense total of the budget's
// category (resolved by id, matched by name) within the budget period.
// Budget.Spent itself is free-standing and is never overwritten by this;
// the two can legitimately diverge.
func RecomputeSpent(state ledger.State, b ledger.Budget) decimal.Decimal {
	var name string

	for _, c := range state.Categories {
		if c.ID == b.CategoryID {
			name = c.Name
			break
		}
	}

	total := decimal.Zero

	if name == "" {
		return total
	}

	for _, t := range state.Transactions {
		if t.Type != ledger.TypeExpense || t.Category != name {
			continue
		}

		if t.Date.Before(b.StartDate) || t.Date.After(b.EndDate) {
			continue
		}

		total = total.Add(t.Amount.Abs())
	}

	return total
}
