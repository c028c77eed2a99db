package account

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/report"
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
	r.Get("/{id}/register", h.register)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type createAccountRequest struct {
	Name          string             `json:"name"`
	Type          ledger.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
	Institution   string             `json:"institution"`
	AccountNumber string             `json:"accountNumber"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Type {
	case ledger.AccountChecking, ledger.AccountSavings, ledger.AccountCredit, ledger.AccountInvestment:
	default:
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()

	acc := ledger.Account{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Type:          req.Type,
		Balance:       req.Balance,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	h.svc.Dispatch(r.Context(), ledger.AddAccount{Account: acc})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(h.svc.Snapshot().Accounts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	acc, ok := findAccount(h.svc.Snapshot(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type registerResponse struct {
	Account           accountResponse       `json:"account"`
	Transactions      []transactionResponse `json:"transactions"`
	ReconciledBalance decimal.Decimal       `json:"reconciledBalance"`
	UnreconciledCount int                   `json:"unreconciledCount"`
}

// register returns the account's transaction register, newest first, along
// with its reconciliation totals. Supports ?search= and ?category= filters.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	state := h.svc.Snapshot()

	acc, ok := findAccount(state, chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	txs := report.Register(state, report.RegisterFilter{
		AccountID: acc.ID,
		Search:    r.URL.Query().Get("search"),
		Category:  r.URL.Query().Get("category"),
	})

	resp := registerResponse{
		Account:           toResponse(acc),
		Transactions:      toTransactionList(txs),
		ReconciledBalance: report.ReconciledBalance(state, acc.ID),
		UnreconciledCount: report.UnreconciledCount(state, acc.ID),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Dispatch(r.Context(), ledger.DeleteAccount{ID: chi.URLParam(r, "id")})

	w.WriteHeader(http.StatusNoContent)
}

type updateAccountRequest struct {
	Name          *string             `json:"name,omitempty"`
	Type          *ledger.AccountType `json:"type,omitempty"`
	Balance       *decimal.Decimal    `json:"balance,omitempty"`
	Institution   *string             `json:"institution,omitempty"`
	AccountNumber *string             `json:"accountNumber,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc, ok := findAccount(h.svc.Snapshot(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		acc.Name = *req.Name
	}

	if req.Type != nil {
		acc.Type = *req.Type
	}

	if req.Balance != nil {
		acc.Balance = *req.Balance
	}

	if req.Institution != nil {
		acc.Institution = *req.Institution
	}

	if req.AccountNumber != nil {
		acc.AccountNumber = *req.AccountNumber
	}

	acc.UpdatedAt = time.Now().UTC()

	h.svc.Dispatch(r.Context(), ledger.UpdateAccount{Account: acc})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func findAccount(state ledger.State, id string) (ledger.Account, bool) {
	for _, a := range state.Accounts {
		if a.ID == id {
			return a, true
		}
	}

	return ledger.Account{}, false
}
