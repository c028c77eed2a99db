package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/ledger"
)

func account(id, name string) ledger.Account {
	return ledger.Account{
		ID:        id,
		Name:      name,
		Type:      ledger.AccountChecking,
		Balance:   decimal.NewFromInt(100),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApply_AccountLifecycle(t *testing.T) {
	var state ledger.State

	state = ledger.Apply(state, ledger.AddAccount{Account: account("a1", "Checking")})
	state = ledger.Apply(state, ledger.AddAccount{Account: account("a2", "Savings")})
	require.Len(t, state.Accounts, 2)

	updated := account("a1", "Main Checking")
	state = ledger.Apply(state, ledger.UpdateAccount{Account: updated})
	require.Len(t, state.Accounts, 2)
	assert.Equal(t, "Main Checking", state.Accounts[0].Name)
	assert.Equal(t, "Savings", state.Accounts[1].Name)

	state = ledger.Apply(state, ledger.DeleteAccount{ID: "a1"})
	require.Len(t, state.Accounts, 1)
	assert.Equal(t, "a2", state.Accounts[0].ID)
}

func TestApply_PreservesInsertionOrder(t *testing.T) {
	var state ledger.State

	for _, id := range []string{"c", "a", "b"} {
		state = ledger.Apply(state, ledger.AddCategory{Category: ledger.Category{ID: id, Name: id}})
	}

	require.Len(t, state.Categories, 3)
	assert.Equal(t, "c", state.Categories[0].ID)
	assert.Equal(t, "a", state.Categories[1].ID)
	assert.Equal(t, "b", state.Categories[2].ID)
}

func TestApply_UpdateMissingIsNoOp(t *testing.T) {
	state := ledger.Apply(ledger.State{}, ledger.AddBudget{Budget: ledger.Budget{ID: "b1", Name: "Groceries"}})

	next := ledger.Apply(state, ledger.UpdateBudget{Budget: ledger.Budget{ID: "nope", Name: "Ghost"}})

	require.Len(t, next.Budgets, 1)
	assert.Equal(t, "Groceries", next.Budgets[0].Name)
}

func TestApply_DeleteMissingIsNoOp(t *testing.T) {
	state := ledger.Apply(ledger.State{}, ledger.AddTransaction{Transaction: ledger.Transaction{ID: "t1"}})

	next := ledger.Apply(state, ledger.DeleteTransaction{ID: "absent"})

	assert.Equal(t, state.Transactions, next.Transactions)
}

func TestApply_NilCommandReturnsStateUnchanged(t *testing.T) {
	state := ledger.Apply(ledger.State{}, ledger.AddAccount{Account: account("a1", "Checking")})

	next := ledger.Apply(state, nil)

	assert.Equal(t, state, next)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	state := ledger.State{}
	state = ledger.Apply(state, ledger.AddAccount{Account: account("a1", "Checking")})
	state = ledger.Apply(state, ledger.AddAccount{Account: account("a2", "Savings")})

	before := make([]ledger.Account, len(state.Accounts))
	copy(before, state.Accounts)

	_ = ledger.Apply(state, ledger.UpdateAccount{Account: account("a1", "Renamed")})
	_ = ledger.Apply(state, ledger.DeleteAccount{ID: "a2"})
	_ = ledger.Apply(state, ledger.AddAccount{Account: account("a3", "Third")})

	assert.Equal(t, before, state.Accounts)
}

func TestApply_SameInputsSameOutput(t *testing.T) {
	state := ledger.Apply(ledger.State{}, ledger.AddCategory{Category: ledger.Category{ID: "c1", Name: "Food"}})
	cmd := ledger.UpdateCategory{Category: ledger.Category{ID: "c1", Name: "Groceries"}}

	first := ledger.Apply(state, cmd)
	second := ledger.Apply(state, cmd)

	assert.Equal(t, first, second)
}

func TestApply_OneSurvivorPerID(t *testing.T) {
	var state ledger.State

	// Two adds under the same id coexist (the store does not dedup), but a
	// delete removes every record carrying that id.
	state = ledger.Apply(state, ledger.AddTransaction{Transaction: ledger.Transaction{ID: "dup"}})
	state = ledger.Apply(state, ledger.AddTransaction{Transaction: ledger.Transaction{ID: "dup"}})
	require.Len(t, state.Transactions, 2)

	state = ledger.Apply(state, ledger.DeleteTransaction{ID: "dup"})
	assert.Empty(t, state.Transactions)
}
