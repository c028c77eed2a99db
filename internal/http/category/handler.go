package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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

type categoryResponse struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Type     ledger.CategoryType `json:"type"`
	Color    string              `json:"color,omitempty"`
	ParentID string              `json:"parentId,omitempty"`
}

func toResponse(c ledger.Category) categoryResponse {
	return categoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		Color:    c.Color,
		ParentID: c.ParentID,
	}
}

type createCategoryRequest struct {
	Name     string              `json:"name"`
	Type     ledger.CategoryType `json:"type"`
	Color    string              `json:"color"`
	ParentID string              `json:"parentId"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Type {
	case ledger.CategoryIncome, ledger.CategoryExpense:
	default:
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	cat := ledger.Category{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Type:     req.Type,
		Color:    req.Color,
		ParentID: req.ParentID,
	}

	h.svc.Dispatch(r.Context(), ledger.AddCategory{Category: cat})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(cat)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := h.svc.Snapshot()

	resp := make([]categoryResponse, len(state.Categories))
	for i, c := range state.Categories {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Dispatch(r.Context(), ledger.DeleteCategory{ID: chi.URLParam(r, "id")})

	w.WriteHeader(http.StatusNoContent)
}

type updateCategoryRequest struct {
	Name     *string              `json:"name,omitempty"`
	Type     *ledger.CategoryType `json:"type,omitempty"`
	Color    *string              `json:"color,omitempty"`
	ParentID *string              `json:"parentId,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var cat ledger.Category

	found := false

	for _, c := range h.svc.Snapshot().Categories {
		if c.ID == chi.URLParam(r, "id") {
			cat = c
			found = true

			break
		}
	}

	if !found {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}

	if req.Type != nil {
		cat.Type = *req.Type
	}

	if req.Color != nil {
		cat.Color = *req.Color
	}

	if req.ParentID != nil {
		cat.ParentID = *req.ParentID
	}

	h.svc.Dispatch(r.Context(), ledger.UpdateCategory{Category: cat})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(cat)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
