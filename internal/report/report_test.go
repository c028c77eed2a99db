package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/report"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalBalance_CreditSubtracts(t *testing.T) {
	state := ledger.State{Accounts: []ledger.Account{
		{ID: "1", Type: ledger.AccountChecking, Balance: dec(2500)},
		{ID: "2", Type: ledger.AccountSavings, Balance: dec(15000)},
		{ID: "3", Type: ledger.AccountCredit, Balance: dec(-850)},
	}}

	assert.True(t, report.TotalBalance(state).Equal(dec(16650)))
}

func TestAccountTypeSummaries(t *testing.T) {
	state := ledger.State{Accounts: []ledger.Account{
		{ID: "1", Type: ledger.AccountChecking, Balance: dec(100)},
		{ID: "2", Type: ledger.AccountChecking, Balance: dec(50)},
		{ID: "3", Type: ledger.AccountCredit, Balance: dec(-20)},
	}}

	summaries := report.AccountTypeSummaries(state)
	require.Len(t, summaries, 4)

	assert.Equal(t, ledger.AccountChecking, summaries[0].Type)
	assert.Equal(t, 2, summaries[0].Count)
	assert.True(t, summaries[0].Total.Equal(dec(150)))

	assert.Equal(t, ledger.AccountCredit, summaries[2].Type)
	assert.Equal(t, 1, summaries[2].Count)
	assert.True(t, summaries[2].Total.Equal(dec(-20)))

	assert.Equal(t, 0, summaries[3].Count, "investment row present but empty")
}

func TestRegister_FilterAndSort(t *testing.T) {
	state := ledger.State{Transactions: []ledger.Transaction{
		{ID: "1", AccountID: "a", Date: day(2024, 1, 10), Description: "Courses Carrefour", Category: "Alimentation"},
		{ID: "2", AccountID: "a", Date: day(2024, 1, 20), Description: "Essence", Category: "Transport"},
		{ID: "3", AccountID: "b", Date: day(2024, 1, 25), Description: "Courses Leclerc", Category: "Alimentation"},
		{ID: "4", AccountID: "a", Date: day(2024, 1, 20), Description: "Boulangerie", Category: "Alimentation"},
	}}

	t.Run("NewestFirstStable", func(t *testing.T) {
		txs := report.Register(state, report.RegisterFilter{AccountID: "a"})
		require.Len(t, txs, 3)
		// Two transactions share the 20th; insertion order breaks the tie.
		assert.Equal(t, []string{"2", "4", "1"}, []string{txs[0].ID, txs[1].ID, txs[2].ID})
	})

	t.Run("SearchIsCaseInsensitive", func(t *testing.T) {
		txs := report.Register(state, report.RegisterFilter{AccountID: "a", Search: "COURSES"})
		require.Len(t, txs, 1)
		assert.Equal(t, "1", txs[0].ID)
	})

	t.Run("CategoryIsExact", func(t *testing.T) {
		txs := report.Register(state, report.RegisterFilter{AccountID: "a", Category: "Alimentation"})
		require.Len(t, txs, 2)
	})
}

func TestReconciliationSplit(t *testing.T) {
	state := ledger.State{Transactions: []ledger.Transaction{
		{ID: "1", AccountID: "a", Amount: dec(100), Reconciled: true},
		{ID: "2", AccountID: "a", Amount: dec(-40), Reconciled: false},
		{ID: "3", AccountID: "b", Amount: dec(999), Reconciled: false},
	}}

	assert.True(t, report.ReconciledBalance(state, "a").Equal(dec(100)))
	assert.Equal(t, 1, report.UnreconciledCount(state, "a"))
}

func TestProgress_StatusBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		spent      float64
		wantStatus report.BudgetState
		wantPct    float64
	}{
		{"JustUnderWarning", 100, 79.99, report.BudgetNormal, 79.99},
		{"WarningThreshold", 100, 80.00, report.BudgetWarning, 80},
		{"OverThreshold", 100, 100.00, report.BudgetOver, 100},
		{"WellOverClampsDisplay", 100, 150, report.BudgetOver, 100},
		{"ZeroAmountNothingSpent", 0, 0, report.BudgetNormal, 0},
		{"ZeroAmountSpent", 0, 10, report.BudgetOver, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := report.Progress(ledger.Budget{Amount: dec(tt.amount), Spent: dec(tt.spent)})
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.InDelta(t, tt.wantPct, p.Percentage, 0.0001)
		})
	}
}

func TestOverBudgetCount(t *testing.T) {
	state := ledger.State{Budgets: []ledger.Budget{
		{ID: "1", Amount: dec(400), Spent: dec(450)},
		{ID: "2", Amount: dec(200), Spent: dec(145)},
		{ID: "3", Amount: dec(100), Spent: dec(100)}, // exactly at cap is not over
	}}

	assert.Equal(t, 1, report.OverBudgetCount(state))
}

func TestCategoryTotals(t *testing.T) {
	state := ledger.State{
		Categories: []ledger.Category{
			{ID: "c1", Name: "Food", Type: ledger.CategoryExpense, Color: "#DC2626"},
			{ID: "c2", Name: "Travel", Type: ledger.CategoryExpense, Color: "#2563EB"},
			{ID: "c3", Name: "Salary", Type: ledger.CategoryIncome, Color: "#059669"},
		},
		Transactions: []ledger.Transaction{
			{ID: "1", Category: "Food", Type: ledger.TypeExpense, Amount: dec(-50)},
			{ID: "2", Category: "Food", Type: ledger.TypeExpense, Amount: dec(-30)},
			{ID: "3", Category: "Salary", Type: ledger.TypeIncome, Amount: dec(3200)},
		},
	}

	totals := report.CategoryTotals(state, ledger.CategoryExpense)
	require.Len(t, totals, 1, "zero-sum Travel is excluded")
	assert.Equal(t, "Food", totals[0].Name)
	assert.True(t, totals[0].Amount.Equal(dec(80)), "absolute value sum")
	assert.InDelta(t, 100, totals[0].Share, 0.0001)
}

func TestMonthlyTrends_ChronologicalAcrossYears(t *testing.T) {
	state := ledger.State{Transactions: []ledger.Transaction{
		{ID: "1", Date: day(2024, time.January, 5), Type: ledger.TypeExpense, Amount: dec(-120)},
		{ID: "2", Date: day(2023, time.December, 20), Type: ledger.TypeIncome, Amount: dec(3200)},
		{ID: "3", Date: day(2023, time.December, 28), Type: ledger.TypeExpense, Amount: dec(-85.50)},
	}}

	trends := report.MonthlyTrends(state, 6)
	require.Len(t, trends, 2)

	// December 2023 sorts before January 2024 whatever the locale would say.
	assert.Equal(t, 2023, trends[0].Year)
	assert.Equal(t, time.December, trends[0].Month)
	assert.True(t, trends[0].Income.Equal(dec(3200)))
	assert.True(t, trends[0].Expenses.Equal(dec(85.50)))

	assert.Equal(t, 2024, trends[1].Year)
	assert.Equal(t, time.January, trends[1].Month)
	assert.True(t, trends[1].Expenses.Equal(dec(120)))
}

func TestMonthlyTrends_KeepsMostRecentN(t *testing.T) {
	var txs []ledger.Transaction
	for m := time.January; m <= time.August; m++ {
		txs = append(txs, ledger.Transaction{
			ID:     string(rune('a' + m)),
			Date:   day(2024, m, 1),
			Type:   ledger.TypeExpense,
			Amount: dec(-10),
		})
	}

	trends := report.MonthlyTrends(ledger.State{Transactions: txs}, 6)
	require.Len(t, trends, 6)
	assert.Equal(t, time.March, trends[0].Month)
	assert.Equal(t, time.August, trends[5].Month)
}

func TestNetIncome(t *testing.T) {
	state := ledger.State{Transactions: []ledger.Transaction{
		{ID: "1", Type: ledger.TypeIncome, Amount: dec(3200)},
		{ID: "2", Type: ledger.TypeExpense, Amount: dec(-85.50)},
		{ID: "3", Type: ledger.TypeExpense, Amount: dec(-120)},
		{ID: "4", Type: ledger.TypeTransfer, Amount: dec(500)}, // transfers stay out
	}}

	assert.True(t, report.TotalIncome(state).Equal(dec(3200)))
	assert.True(t, report.TotalExpenses(state).Equal(dec(205.50)))
	assert.True(t, report.NetIncome(state).Equal(dec(2994.50)))
}

func TestRecomputeSpent(t *testing.T) {
	state := ledger.State{
		Categories: []ledger.Category{{ID: "c1", Name: "Alimentation", Type: ledger.CategoryExpense}},
		Transactions: []ledger.Transaction{
			{ID: "1", Category: "Alimentation", Type: ledger.TypeExpense, Amount: dec(-85.50), Date: day(2024, 1, 10)},
			{ID: "2", Category: "Alimentation", Type: ledger.TypeExpense, Amount: dec(-20), Date: day(2024, 2, 10)}, // outside period
			{ID: "3", Category: "Transport", Type: ledger.TypeExpense, Amount: dec(-40), Date: day(2024, 1, 12)},
		},
	}

	b := ledger.Budget{
		CategoryID: "c1",
		StartDate:  day(2024, 1, 1),
		EndDate:    day(2024, 1, 31),
	}

	assert.True(t, report.RecomputeSpent(state, b).Equal(dec(85.50)))

	// Unknown category id resolves to nothing rather than failing.
	assert.True(t, report.RecomputeSpent(state, ledger.Budget{CategoryID: "ghost"}).IsZero())
}
