package jsonfile_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/importer/jsonfile"
	"github.com/nearfin/near/internal/ledger"
)

func TestParse_Document(t *testing.T) {
	doc := `{
		"transactions": [
			{"id": "old-1", "accountId": "acc-7", "date": "2024-01-15T00:00:00.000Z",
			 "description": "Courses", "amount": -85.5, "category": "Alimentation",
			 "type": "expense", "reconciled": true}
		],
		"accounts": [
			{"id": "old-2", "name": "Livret A", "type": "savings", "balance": 15000,
			 "institution": "Banque Populaire", "accountNumber": "****5678",
			 "createdAt": "2023-06-01T00:00:00Z", "updatedAt": "2023-06-01T00:00:00Z"}
		]
	}`

	result, err := jsonfile.New().Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, result.Transactions, 1)
	tx := result.Transactions[0]
	assert.Empty(t, tx.ID, "file ids are discarded")
	assert.Equal(t, "acc-7", tx.AccountID)
	assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(-85.5)))
	assert.Equal(t, ledger.TypeExpense, tx.Type)
	assert.True(t, tx.Reconciled)
	assert.Equal(t, 2024, tx.Date.Year())

	require.Len(t, result.Accounts, 1)
	acc := result.Accounts[0]
	assert.Empty(t, acc.ID)
	assert.Equal(t, ledger.AccountSavings, acc.Type)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(15000)))
}

func TestParse_PartialDocument(t *testing.T) {
	result, err := jsonfile.New().Parse(strings.NewReader(`{"transactions": []}`))
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Accounts)
}

func TestParse_Malformed(t *testing.T) {
	_, err := jsonfile.New().Parse(strings.NewReader(`{"transactions": [`))
	assert.Error(t, err)
}
