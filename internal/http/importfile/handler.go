package importfile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/ledger"
)

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{format}", h.importFile)
}

type importSuccessResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format := importer.Format(chi.URLParam(r, "format"))

	cmds, imported, err := h.importSvc.Import(format, file, h.ledgerSvc.Snapshot())
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}

		http.Error(w, err.Error(), status)

		return
	}

	h.ledgerSvc.DispatchAll(r.Context(), cmds)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importSuccessResponse{Imported: imported}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
