package budget

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
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type budgetResponse struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Period     ledger.Period   `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
}

func toResponse(b ledger.Budget) budgetResponse {
	return budgetResponse{
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

type createBudgetRequest struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Period     ledger.Period   `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Period {
	case ledger.PeriodWeekly, ledger.PeriodMonthly, ledger.PeriodYearly:
	default:
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	b := ledger.Budget{
		ID:         uuid.NewString(),
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Spent:      req.Spent,
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	h.svc.Dispatch(r.Context(), ledger.AddBudget{Budget: b})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := h.svc.Snapshot()

	resp := make([]budgetResponse, len(state.Budgets))
	for i, b := range state.Budgets {
		resp[i] = toResponse(b)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Dispatch(r.Context(), ledger.DeleteBudget{ID: chi.URLParam(r, "id")})

	w.WriteHeader(http.StatusNoContent)
}

type updateBudgetRequest struct {
	CategoryID *string          `json:"categoryId,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Spent      *decimal.Decimal `json:"spent,omitempty"`
	Period     *ledger.Period   `json:"period,omitempty"`
	StartDate  *time.Time       `json:"startDate,omitempty"`
	EndDate    *time.Time       `json:"endDate,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var b ledger.Budget

	found := false

	for _, candidate := range h.svc.Snapshot().Budgets {
		if candidate.ID == chi.URLParam(r, "id") {
			b = candidate
			found = true

			break
		}
	}

	if !found {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	if req.CategoryID != nil {
		b.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		b.Name = *req.Name
	}

	if req.Amount != nil {
		b.Amount = *req.Amount
	}

	if req.Spent != nil {
		b.Spent = *req.Spent
	}

	if req.Period != nil {
		b.Period = *req.Period
	}

	if req.StartDate != nil {
		b.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		b.EndDate = *req.EndDate
	}

	h.svc.Dispatch(r.Context(), ledger.UpdateBudget{Budget: b})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
