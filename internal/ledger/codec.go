package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The persisted document mirrors the state layout one field at a time rather
// than marshalling State directly. Every field is mapped explicitly so a
// corrupt or foreign document fails at decode time instead of surfacing as a
// half-hydrated record later. Date fields travel as RFC3339 strings and are
// revived into time.Time on load; amounts decode from both JSON numbers and
// quoted strings (decimal accepts either).

type stateDoc struct {
	Accounts     []accountDoc     `json:"accounts"`
	Transactions []transactionDoc `json:"transactions"`
	Categories   []categoryDoc    `json:"categories"`
	Budgets      []budgetDoc      `json:"budgets"`
}

type accountDoc struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Institution   string          `json:"institution"`
	AccountNumber string          `json:"accountNumber"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type transactionDoc struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Reconciled  bool            `json:"reconciled"`
	Notes       string          `json:"notes,omitempty"`
}

type categoryDoc struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     CategoryType `json:"type"`
	Color    string       `json:"color"`
	ParentID string       `json:"parentId,omitempty"`
}

type budgetDoc struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Period     Period          `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
}

// EncodeState serializes the full state into the persisted JSON document.
func EncodeState(state State) ([]byte, error) {
	data, err := json.Marshal(toStateDoc(state))
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}

	return data, nil
}

// DecodeState parses a persisted document back into a State, reviving date
// fields. Unknown enum values pass through untouched: dangling references and
// stray labels are tolerated, only structurally malformed documents fail.
func DecodeState(data []byte) (State, error) {
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("decoding state: %w", err)
	}

	return fromStateDoc(doc), nil
}

func toStateDoc(state State) stateDoc {
	doc := stateDoc{
		Accounts:     make([]accountDoc, len(state.Accounts)),
		Transactions: make([]transactionDoc, len(state.Transactions)),
		Categories:   make([]categoryDoc, len(state.Categories)),
		Budgets:      make([]budgetDoc, len(state.Budgets)),
	}

	for i, a := range state.Accounts {
		doc.Accounts[i] = accountDoc{
			ID:            a.ID,
			Name:          a.Name,
			Type:          a.Type,
			Balance:       a.Balance,
			Institution:   a.Institution,
			AccountNumber: a.AccountNumber,
			CreatedAt:     a.CreatedAt,
			UpdatedAt:     a.UpdatedAt,
		}
	}

	for i, t := range state.Transactions {
		doc.Transactions[i] = transactionDoc{
			ID:          t.ID,
			AccountID:   t.AccountID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Type:        t.Type,
			Reconciled:  t.Reconciled,
			Notes:       t.Notes,
		}
	}

	for i, c := range state.Categories {
		doc.Categories[i] = categoryDoc{
			ID:       c.ID,
			Name:     c.Name,
			Type:     c.Type,
			Color:    c.Color,
			ParentID: c.ParentID,
		}
	}

	for i, b := range state.Budgets {
		doc.Budgets[i] = budgetDoc{
			ID:         b.ID,
			CategoryID: b.CategoryID,
			Name:       b.Name,
			Amount:     b.Amount,
			Spent:      b.Spent,
			Period:     b.Period,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
		}
	}

	return doc
}

func fromStateDoc(doc stateDoc) State {
	state := State{
		Accounts:     make([]Account, len(doc.Accounts)),
		Transactions: make([]Transaction, len(doc.Transactions)),
		Categories:   make([]Category, len(doc.Categories)),
		Budgets:      make([]Budget, len(doc.Budgets)),
	}

	for i, a := range doc.Accounts {
		state.Accounts[i] = Account{
			ID:            a.ID,
			Name:          a.Name,
			Type:          a.Type,
			Balance:       a.Balance,
			Institution:   a.Institution,
			AccountNumber: a.AccountNumber,
			CreatedAt:     a.CreatedAt,
			UpdatedAt:     a.UpdatedAt,
		}
	}

	for i, t := range doc.Transactions {
		state.Transactions[i] = Transaction{
			ID:          t.ID,
			AccountID:   t.AccountID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Type:        t.Type,
			Reconciled:  t.Reconciled,
			Notes:       t.Notes,
		}
	}

	for i, c := range doc.Categories {
		state.Categories[i] = Category{
			ID:       c.ID,
			Name:     c.Name,
			Type:     c.Type,
			Color:    c.Color,
			ParentID: c.ParentID,
		}
	}

	for i, b := range doc.Budgets {
		state.Budgets[i] = Budget{
			ID:         b.ID,
			CategoryID: b.CategoryID,
			Name:       b.Name,
			Amount:     b.Amount,
			Spent:      b.Spent,
			Period:     b.Period,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
		}
	}

	return state
}
