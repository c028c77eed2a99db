package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/ledger"
)

func TestCodec_RoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	txDate := time.Date(2024, 2, 1, 0, 0, 0, 123000000, time.UTC)

	state := ledger.State{
		Accounts: []ledger.Account{{
			ID:            "a1",
			Name:          "Compte Courant",
			Type:          ledger.AccountChecking,
			Balance:       decimal.NewFromFloat(2500.50),
			Institution:   "Banque Populaire",
			AccountNumber: "****1234",
			CreatedAt:     created,
			UpdatedAt:     created,
		}},
		Transactions: []ledger.Transaction{{
			ID:          "t1",
			AccountID:   "a1",
			Date:        txDate,
			Description: "Courses Carrefour",
			Amount:      decimal.NewFromFloat(-85.50),
			Category:    "Alimentation",
			Type:        ledger.TypeExpense,
			Reconciled:  true,
			Notes:       "weekly shop",
		}},
		Categories: []ledger.Category{{
			ID:    "c1",
			Name:  "Alimentation",
			Type:  ledger.CategoryExpense,
			Color: "#DC2626",
		}},
		Budgets: []ledger.Budget{{
			ID:         "b1",
			CategoryID: "c1",
			Name:       "Budget Alimentation",
			Amount:     decimal.NewFromFloat(400),
			Spent:      decimal.NewFromFloat(285.50),
			Period:     ledger.PeriodMonthly,
			StartDate:  created,
			EndDate:    created.AddDate(0, 1, 0),
		}},
	}

	data, err := ledger.EncodeState(state)
	require.NoError(t, err)

	got, err := ledger.DecodeState(data)
	require.NoError(t, err)

	require.Len(t, got.Accounts, 1)
	assert.Equal(t, "a1", got.Accounts[0].ID)
	assert.True(t, got.Accounts[0].Balance.Equal(decimal.NewFromFloat(2500.50)))
	assert.True(t, got.Accounts[0].CreatedAt.Equal(created))

	require.Len(t, got.Transactions, 1)
	tx := got.Transactions[0]
	assert.True(t, tx.Date.Equal(txDate), "millisecond precision must survive")
	assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(-85.50)))
	assert.True(t, tx.Reconciled)
	assert.Equal(t, "weekly shop", tx.Notes)

	assert.Equal(t, state.Categories, got.Categories)

	require.Len(t, got.Budgets, 1)
	assert.True(t, got.Budgets[0].Spent.Equal(decimal.NewFromFloat(285.50)))
	assert.Equal(t, ledger.PeriodMonthly, got.Budgets[0].Period)
}

func TestDecodeState_NumberAmounts(t *testing.T) {
	// Documents written by other tools carry amounts as bare JSON numbers.
	doc := `{
		"accounts": [{"id":"1","name":"Main","type":"checking","balance":-850.25,
			"institution":"","accountNumber":"","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}],
		"transactions": [],
		"categories": [],
		"budgets": []
	}`

	state, err := ledger.DecodeState([]byte(doc))
	require.NoError(t, err)
	require.Len(t, state.Accounts, 1)
	assert.True(t, state.Accounts[0].Balance.Equal(decimal.NewFromFloat(-850.25)))
}

func TestDecodeState_Malformed(t *testing.T) {
	_, err := ledger.DecodeState([]byte(`{"accounts": "nope"`))
	assert.Error(t, err)
}

func TestDecodeState_UnknownEnumTolerated(t *testing.T) {
	doc := `{"accounts":[],"transactions":[{"id":"t1","accountId":"gone","date":"2024-01-01T00:00:00Z",
		"description":"x","amount":1,"category":"Divers","type":"mystery","reconciled":false}],
		"categories":[],"budgets":[]}`

	state, err := ledger.DecodeState([]byte(doc))
	require.NoError(t, err)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, ledger.TransactionType("mystery"), state.Transactions[0].Type)
}
