package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seed returns the built-in starter state used when the persisted slot is
// empty or unreadable.
func Seed() State {
	now := time.Now()

	return State{
		Accounts: []Account{
			{
				ID:            "1",
				Name:          "Compte Courant",
				Type:          AccountChecking,
				Balance:       decimal.NewFromFloat(2500.00),
				Institution:   "Banque Populaire",
				AccountNumber: "****1234",
				CreatedAt:     now,
				UpdatedAt:     now,
			},
			{
				ID:            "2",
				Name:          "Livret A",
				Type:          AccountSavings,
				Balance:       decimal.NewFromFloat(15000.00),
				Institution:   "Banque Populaire",
				AccountNumber: "****5678",
				CreatedAt:     now,
				UpdatedAt:     now,
			},
			{
				ID:            "3",
				Name:          "Carte Crédit",
				Type:          AccountCredit,
				Balance:       decimal.NewFromFloat(-850.00),
				Institution:   "Crédit Agricole",
				AccountNumber: "****9012",
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		},
		Transactions: []Transaction{
			{
				ID:          "1",
				AccountID:   "1",
				Date:        now,
				Description: "Salaire",
				Amount:      decimal.NewFromFloat(3200.00),
				Category:    "Revenus",
				Type:        TypeIncome,
			},
			{
				ID:          "2",
				AccountID:   "1",
				Date:        now,
				Description: "Courses Carrefour",
				Amount:      decimal.NewFromFloat(-85.50),
				Category:    "Alimentation",
				Type:        TypeExpense,
				Reconciled:  true,
			},
			{
				ID:          "3",
				AccountID:   "1",
				Date:        now,
				Description: "Facture EDF",
				Amount:      decimal.NewFromFloat(-120.00),
				Category:    "Énergie",
				Type:        TypeExpense,
			},
		},
		Categories: []Category{
			{ID: "1", Name: "Revenus", Type: CategoryIncome, Color: "#059669"},
			{ID: "2", Name: "Alimentation", Type: CategoryExpense, Color: "#DC2626"},
			{ID: "3", Name: "Transport", Type: CategoryExpense, Color: "#7C3AED"},
			{ID: "4", Name: "Énergie", Type: CategoryExpense, Color: "#EA580C"},
			{ID: "5", Name: "Loisirs", Type: CategoryExpense, Color: "#2563EB"},
		},
		Budgets: []Budget{
			{
				ID:         "1",
				CategoryID: "2",
				Name:       "Budget Alimentation",
				Amount:     decimal.NewFromFloat(400.00),
				Spent:      decimal.NewFromFloat(285.50),
				Period:     PeriodMonthly,
				StartDate:  now,
				EndDate:    now,
			},
			{
				ID:         "2",
				CategoryID: "3",
				Name:       "Budget Transport",
				Amount:     decimal.NewFromFloat(200.00),
				Spent:      decimal.NewFromFloat(145.00),
				Period:     PeriodMonthly,
				StartDate:  now,
				EndDate:    now,
			},
		},
	}
}
