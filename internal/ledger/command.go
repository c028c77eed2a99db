package ledger

// Command is a typed mutation applied to a State. The twelve variants cover
// add/update/delete for each record kind. Apply treats anything else
// (including nil) as a no-op.
type Command interface {
	isCommand()
}

type AddAccount struct{ Account Account }
type UpdateAccount struct{ Account Account }
type DeleteAccount struct{ ID string }

type AddTransaction struct{ Transaction Transaction }
type UpdateTransaction struct{ Transaction Transaction }
type DeleteTransaction struct{ ID string }

type AddCategory struct{ Category Category }
type UpdateCategory struct{ Category Category }
type DeleteCategory struct{ ID string }

type AddBudget struct{ Budget Budget }
type UpdateBudget struct{ Budget Budget }
type DeleteBudget struct{ ID string }

func (AddAccount) isCommand()        {}
func (UpdateAccount) isCommand()     {}
func (DeleteAccount) isCommand()     {}
func (AddTransaction) isCommand()    {}
func (UpdateTransaction) isCommand() {}
func (DeleteTransaction) isCommand() {}
func (AddCategory) isCommand()       {}
func (UpdateCategory) isCommand()    {}
func (DeleteCategory) isCommand()    {}
func (AddBudget) isCommand()         {}
func (UpdateBudget) isCommand()      {}
func (DeleteBudget) isCommand()      {}

// Apply produces the next state for a command. It is pure and total: the
// input state is never mutated, every command maps to a defined next state,
// and an unrecognized command returns the state unchanged.
//
// Add appends without checking id uniqueness; callers are expected to supply
// fresh ids (uuid.NewString). Update replaces the first record whose id
// matches and is a silent no-op when none does. Delete removes every record
// with the given id and is a silent no-op when absent.
func Apply(state State, cmd Command) State {
	switch c := cmd.(type) {
	case AddAccount:
		state.Accounts = appendRecord(state.Accounts, c.Account)
	case UpdateAccount:
		state.Accounts = replaceRecord(state.Accounts, c.Account, accountID)
	case DeleteAccount:
		state.Accounts = deleteRecord(state.Accounts, c.ID, accountID)
	case AddTransaction:
		state.Transactions = appendRecord(state.Transactions, c.Transaction)
	case UpdateTransaction:
		state.Transactions = replaceRecord(state.Transactions, c.Transaction, transactionID)
	case DeleteTransaction:
		state.Transactions = deleteRecord(state.Transactions, c.ID, transactionID)
	case AddCategory:
		state.Categories = appendRecord(state.Categories, c.Category)
	case UpdateCategory:
		state.Categories = replaceRecord(state.Categories, c.Category, categoryID)
	case DeleteCategory:
		state.Categories = deleteRecord(state.Categories, c.ID, categoryID)
	case AddBudget:
		state.Budgets = appendRecord(state.Budgets, c.Budget)
	case UpdateBudget:
		state.Budgets = replaceRecord(state.Budgets, c.Budget, budgetID)
	case DeleteBudget:
		state.Budgets = deleteRecord(state.Budgets, c.ID, budgetID)
	}

	return state
}

func accountID(a Account) string         { return a.ID }
func transactionID(t Transaction) string { return t.ID }
func categoryID(c Category) string       { return c.ID }
func budgetID(b Budget) string           { return b.ID }

func appendRecord[T any](records []T, record T) []T {
	next := make([]T, 0, len(records)+1)
	next = append(next, records...)

	return append(next, record)
}

func replaceRecord[T any](records []T, record T, id func(T) string) []T {
	next := make([]T, len(records))
	copy(next, records)

	for i := range next {
		if id(next[i]) == id(record) {
			next[i] = record
			break
		}
	}

	return next
}

func deleteRecord[T any](records []T, target string, id func(T) string) []T {
	next := make([]T, 0, len(records))

	for _, r := range records {
		if id(r) == target {
			continue
		}

		next = append(next, r)
	}

	return next
}
