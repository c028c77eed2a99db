package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
)

type accountResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Type          ledger.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
	Institution   string             `json:"institution,omitempty"`
	AccountNumber string             `json:"accountNumber,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func toResponse(a ledger.Account) accountResponse {
	return accountResponse{
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

func toResponseList(accounts []ledger.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}

type transactionResponse struct {
	ID          string                 `json:"id"`
	AccountID   string                 `json:"accountId"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Type        ledger.TransactionType `json:"type"`
	Reconciled  bool                   `json:"reconciled"`
	Notes       string                 `json:"notes,omitempty"`
}

func toTransactionList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = transactionResponse{
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

	return resp
}
