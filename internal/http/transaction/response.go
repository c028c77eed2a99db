package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
)

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

func toResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
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

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = toResponse(t)
	}

	return resp
}
