package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/report"
)

// defaultTrendMonths mirrors the dashboard chart window.
const defaultTrendMonths = 6

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/budgets", h.budgets)
	r.Get("/categories", h.categories)
	r.Get("/trends", h.trends)
}

type typeSummaryResponse struct {
	Type  ledger.AccountType `json:"type"`
	Count int                `json:"count"`
	Total decimal.Decimal    `json:"total"`
}

type summaryResponse struct {
	TotalBalance   decimal.Decimal       `json:"totalBalance"`
	TotalIncome    decimal.Decimal       `json:"totalIncome"`
	TotalExpenses  decimal.Decimal       `json:"totalExpenses"`
	NetIncome      decimal.Decimal       `json:"netIncome"`
	OverBudget     int                   `json:"overBudgetCount"`
	AccountsByType []typeSummaryResponse `json:"accountsByType"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	state := h.svc.Snapshot()

	summaries := report.AccountTypeSummaries(state)

	byType := make([]typeSummaryResponse, len(summaries))
	for i, s := range summaries {
		byType[i] = typeSummaryResponse{Type: s.Type, Count: s.Count, Total: s.Total}
	}

	resp := summaryResponse{
		TotalBalance:   report.TotalBalance(state),
		TotalIncome:    report.TotalIncome(state),
		TotalExpenses:  report.TotalExpenses(state),
		NetIncome:      report.NetIncome(state),
		OverBudget:     report.OverBudgetCount(state),
		AccountsByType: byType,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type budgetProgressResponse struct {
	ID         string             `json:"id"`
	CategoryID string             `json:"categoryId"`
	Name       string             `json:"name"`
	Amount     decimal.Decimal    `json:"amount"`
	Spent      decimal.Decimal    `json:"spent"`
	Remaining  decimal.Decimal    `json:"remaining"`
	Percentage float64            `json:"percentage"`
	Status     report.BudgetState `json:"status"`
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	progress := report.BudgetProgressAll(h.svc.Snapshot())

	resp := make([]budgetProgressResponse, len(progress))
	for i, p := range progress {
		resp[i] = budgetProgressResponse{
			ID:         p.Budget.ID,
			CategoryID: p.Budget.CategoryID,
			Name:       p.Budget.Name,
			Amount:     p.Budget.Amount,
			Spent:      p.Budget.Spent,
			Remaining:  p.Remaining,
			Percentage: p.Percentage,
			Status:     p.Status,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type categoryTotalResponse struct {
	Name   string          `json:"name"`
	Color  string          `json:"color,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Share  float64         `json:"share"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	kind := ledger.CategoryExpense

	switch r.URL.Query().Get("type") {
	case "", string(ledger.CategoryExpense):
	case string(ledger.CategoryIncome):
		kind = ledger.CategoryIncome
	default:
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	totals := report.CategoryTotals(h.svc.Snapshot(), kind)

	resp := make([]categoryTotalResponse, len(totals))
	for i, ct := range totals {
		resp[i] = categoryTotalResponse{Name: ct.Name, Color: ct.Color, Amount: ct.Amount, Share: ct.Share}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type monthBucketResponse struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	months := defaultTrendMonths

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}

		months = n
	}

	trends := report.MonthlyTrends(h.svc.Snapshot(), months)

	resp := make([]monthBucketResponse, len(trends))
	for i, b := range trends {
		resp[i] = monthBucketResponse{Year: b.Year, Month: b.Month, Income: b.Income, Expenses: b.Expenses}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
