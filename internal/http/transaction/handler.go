package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/reconcile", h.reconcile)
	r.Patch("/{id}", h.update)
}

type createTransactionRequest struct {
	AccountID   string                 `json:"accountId"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Type        ledger.TransactionType `json:"type"`
	Notes       string                 `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Type {
	case ledger.TypeIncome, ledger.TypeExpense, ledger.TypeTransfer:
	default:
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	tx := ledger.Transaction{
		ID:          uuid.NewString(),
		AccountID:   req.AccountID,
		Date:        req.Date,
		Description: req.Description,
		Amount:      normalizeAmount(req.Amount, req.Type),
		Category:    req.Category,
		Type:        req.Type,
		Notes:       req.Notes,
	}

	h.svc.Dispatch(r.Context(), ledger.AddTransaction{Transaction: tx})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := h.svc.Snapshot()

	txs := state.Transactions

	if accountID := r.URL.Query().Get("accountId"); accountID != "" {
		txs = nil

		for _, t := range state.Transactions {
			if t.AccountID == accountID {
				txs = append(txs, t)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, ok := findTransaction(h.svc.Snapshot(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Dispatch(r.Context(), ledger.DeleteTransaction{ID: chi.URLParam(r, "id")})

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	AccountID   *string                 `json:"accountId,omitempty"`
	Date        *time.Time              `json:"date,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Amount      *decimal.Decimal        `json:"amount,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Type        *ledger.TransactionType `json:"type,omitempty"`
	Notes       *string                 `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, ok := findTransaction(h.svc.Snapshot(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	if req.AccountID != nil {
		tx.AccountID = *req.AccountID
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.Notes != nil {
		tx.Notes = *req.Notes
	}

	if req.Amount != nil || req.Type != nil {
		tx.Amount = normalizeAmount(tx.Amount, tx.Type)
	}

	h.svc.Dispatch(r.Context(), ledger.UpdateTransaction{Transaction: tx})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	tx, ok := findTransaction(h.svc.Snapshot(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	tx.Reconciled = !tx.Reconciled

	h.svc.Dispatch(r.Context(), ledger.UpdateTransaction{Transaction: tx})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func findTransaction(state ledger.State, id string) (ledger.Transaction, bool) {
	for _, t := range state.Transactions {
		if t.ID == id {
			return t, true
		}
	}

	return ledger.Transaction{}, false
}

// normalizeAmount makes the stored sign agree with the declared direction:
// expenses are negative, income positive, transfers keep the given sign.
func normalizeAmount(amount decimal.Decimal, kind ledger.TransactionType) decimal.Decimal {
	switch kind {
	case ledger.TypeExpense:
		return amount.Abs().Neg()
	case ledger.TypeIncome:
		return amount.Abs()
	default:
		return amount
	}
}
