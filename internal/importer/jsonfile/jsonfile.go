// Package jsonfile imports backup documents: a JSON object optionally
// carrying transactions and accounts arrays. Record ids in the file are
// discarded downstream; dates are revived from their serialized form.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/ledger"
)

type document struct {
	Transactions []transactionRecord `json:"transactions"`
	Accounts     []accountRecord     `json:"accounts"`
}

type transactionRecord struct {
	AccountID   string                 `json:"accountId"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Type        ledger.TransactionType `json:"type"`
	Reconciled  bool                   `json:"reconciled"`
	Notes       string                 `json:"notes"`
}

type accountRecord struct {
	Name          string             `json:"name"`
	Type          ledger.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
	Institution   string             `json:"institution"`
	AccountNumber string             `json:"accountNumber"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) (importer.Result, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return importer.Result{}, fmt.Errorf("parsing json: %w", err)
	}

	var result importer.Result

	for _, t := range doc.Transactions {
		result.Transactions = append(result.Transactions, ledger.Transaction{
			AccountID:   t.AccountID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Type:        t.Type,
			Reconciled:  t.Reconciled,
			Notes:       t.Notes,
		})
	}

	for _, a := range doc.Accounts {
		result.Accounts = append(result.Accounts, ledger.Account{
			Name:          a.Name,
			Type:          a.Type,
			Balance:       a.Balance,
			Institution:   a.Institution,
			AccountNumber: a.AccountNumber,
			CreatedAt:     a.CreatedAt,
			UpdatedAt:     a.UpdatedAt,
		})
	}

	return result, nil
}
