package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a money-holding account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// CategoryType tells whether a category classifies income or expenses.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Period is the time span a budget covers.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Account is a named money-holding entity. The id is immutable once created;
// UpdatedAt must be refreshed whenever any other field changes.
type Account struct {
	ID            string
	Name          string
	Type          AccountType
	Balance       decimal.Decimal
	Institution   string
	AccountNumber string // masked, e.g. "****1234"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Transaction is a single dated monetary movement tied to an account.
// The amount sign encodes direction: negative for expenses, positive for
// income. Category is a free-text label matched against Category.Name,
// not Category.ID.
type Transaction struct {
	ID          string
	AccountID   string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        TransactionType
	Reconciled  bool
	Notes       string
}

// Category is a classification label for transactions. ParentID is declared
// for a future hierarchy but no computation uses it.
type Category struct {
	ID       string
	Name     string
	Type     CategoryType
	Color    string
	ParentID string
}

// Budget is a spending cap tied to a category over a period. Spent is a
// free-standing running total, never reconciled against transactions; see
// report.RecomputeSpent for the derived alternative.
type Budget struct {
	ID         string
	CategoryID string
	Name       string
	Amount     decimal.Decimal
	Spent      decimal.Decimal
	Period     Period
	StartDate  time.Time
	EndDate    time.Time
}

// State is an immutable snapshot of the four collections. Slices are
// insertion-ordered; order matters for display only. Callers must treat a
// State as a value and never mutate it in place; Apply returns fresh slices
// on every change.
type State struct {
	Accounts     []Account
	Transactions []Transaction
	Categories   []Category
	Budgets      []Budget
}
