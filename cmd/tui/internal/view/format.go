package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
)

const saveTimeout = 5 * time.Second

// FormatAmount renders a decimal amount with two digits and a euro sign.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// FormatDate formats a time.Time into the day-first register format.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var accountTypeLabels = map[ledger.AccountType]string{
	ledger.AccountChecking:   "Compte courant",
	ledger.AccountSavings:    "Épargne",
	ledger.AccountCredit:     "Crédit",
	ledger.AccountInvestment: "Investissement",
}

// AccountTypeLabel returns the display label for an account type.
func AccountTypeLabel(t ledger.AccountType) string {
	if label, ok := accountTypeLabels[t]; ok {
		return label
	}

	return string(t)
}

// SaveCtx returns a context with a standard timeout for slot writes.
func SaveCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), saveTimeout)
}
