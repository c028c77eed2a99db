package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/importer/csvfile"
	"github.com/nearfin/near/internal/importer/jsonfile"
	"github.com/nearfin/near/internal/ledger"
)

func newService() *importer.Service {
	return importer.NewService(csvfile.New(), jsonfile.New())
}

func TestImport_UnsupportedFormat(t *testing.T) {
	_, _, err := newService().Import("ofx", strings.NewReader(""), ledger.State{})
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
}

func TestImport_CSVLandsOnFirstAccount(t *testing.T) {
	state := ledger.State{Accounts: []ledger.Account{
		{ID: "main"},
		{ID: "other"},
	}}

	csv := "date,description,amount\n2024-01-15,Courses,-85.50\n"

	cmds, n, err := newService().Import(importer.FormatCSV, strings.NewReader(csv), state)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, cmds, 1)

	add, ok := cmds[0].(ledger.AddTransaction)
	require.True(t, ok)
	assert.Equal(t, "main", add.Transaction.AccountID)
	assert.NotEmpty(t, add.Transaction.ID, "import assigns a fresh id")
}

func TestImport_CSVFallbackAccount(t *testing.T) {
	csv := "date,description,amount\n2024-01-15,Courses,-85.50\n"

	cmds, _, err := newService().Import(importer.FormatCSV, strings.NewReader(csv), ledger.State{})
	require.NoError(t, err)

	add := cmds[0].(ledger.AddTransaction)
	assert.Equal(t, "1", add.Transaction.AccountID)
}

func TestImport_JSONKeepsDeclaredAccount(t *testing.T) {
	doc := `{
		"transactions": [{"accountId": "acc-7", "date": "2024-01-15T00:00:00Z",
			"description": "x", "amount": 1, "type": "income", "reconciled": false}],
		"accounts": [{"name": "Imported", "type": "checking", "balance": 0,
			"createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}]
	}`

	cmds, n, err := newService().Import(importer.FormatJSON, strings.NewReader(doc), ledger.State{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, cmds, 2)

	addAcc, ok := cmds[0].(ledger.AddAccount)
	require.True(t, ok)
	assert.NotEmpty(t, addAcc.Account.ID)

	addTx, ok := cmds[1].(ledger.AddTransaction)
	require.True(t, ok)
	assert.Equal(t, "acc-7", addTx.Transaction.AccountID, "declared account survives, even dangling")
}

func TestImport_ParseFailureYieldsNoCommands(t *testing.T) {
	csv := "date,description,amount\nbroken,Courses,-85.50\n"

	cmds, n, err := newService().Import(importer.FormatCSV, strings.NewReader(csv), ledger.State{})
	assert.Error(t, err)
	assert.Nil(t, cmds)
	assert.Zero(t, n)
}
