package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/export"
	"github.com/nearfin/near/internal/ledger"
)

func testState() ledger.State {
	return ledger.State{
		Accounts: []ledger.Account{
			{ID: "a1", Name: "Compte Courant", Type: ledger.AccountChecking, Balance: decimal.NewFromInt(2500)},
		},
		Transactions: []ledger.Transaction{
			{
				ID:          "t1",
				AccountID:   "a1",
				Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Courses Carrefour",
				Amount:      decimal.NewFromFloat(-85.50),
				Category:    "Alimentation",
				Type:        ledger.TypeExpense,
			},
			{
				ID:          "t2",
				AccountID:   "gone",
				Date:        time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				Description: "Orphan",
				Amount:      decimal.NewFromInt(10),
				Category:    "Divers",
				Type:        ledger.TypeIncome,
			},
		},
		Categories: []ledger.Category{{ID: "c1", Name: "Alimentation", Type: ledger.CategoryExpense}},
		Budgets:    []ledger.Budget{{ID: "b1", CategoryID: "c1", Amount: decimal.NewFromInt(400), Spent: decimal.NewFromInt(100)}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.NewService().WriteCSV(testState(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Description", "Catégorie", "Montant", "Type", "Compte"}, rows[0])
	assert.Equal(t, []string{"15/01/2024", "Courses Carrefour", "Alimentation", "-85.5", "expense", "Compte Courant"}, rows[1])
	assert.Equal(t, "Inconnu", rows[2][5], "deleted accounts export as unknown")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.NewService().WriteJSON(testState(), &buf))

	var doc struct {
		Accounts     []json.RawMessage `json:"accounts"`
		Transactions []json.RawMessage `json:"transactions"`
		Categories   []json.RawMessage `json:"categories"`
		Budgets      []json.RawMessage `json:"budgets"`
		ExportDate   string            `json:"exportDate"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Accounts, 1)
	assert.Len(t, doc.Transactions, 2)
	assert.Len(t, doc.Categories, 1)
	assert.Len(t, doc.Budgets, 1)

	_, err := time.Parse(time.RFC3339, doc.ExportDate)
	assert.NoError(t, err, "exportDate must be RFC3339")
}

func TestFilenames(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "near-transactions-2024-03-09.csv", export.CSVFilename(now))
	assert.Equal(t, "near-backup-2024-03-09.json", export.JSONFilename(now))
}
