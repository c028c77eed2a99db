package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nearfin/near/internal/export"
	"github.com/nearfin/near/internal/ledger"
)

type Handler struct {
	exportSvc *export.Service
	ledgerSvc *ledger.Service
}

func NewHandler(exportSvc *export.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		exportSvc: exportSvc,
		ledgerSvc: ledgerSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.downloadCSV)
	r.Get("/json", h.downloadJSON)
}

func (h *Handler) downloadCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	if err := h.exportSvc.WriteCSV(h.ledgerSvc.Snapshot(), &buf); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.CSVFilename(time.Now())))

	w.Write(buf.Bytes())
}

func (h *Handler) downloadJSON(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	if err := h.exportSvc.WriteJSON(h.ledgerSvc.Snapshot(), &buf); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.JSONFilename(time.Now())))

	w.Write(buf.Bytes())
}
