package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nearfin/near/internal/ledger"
)

// csvDateLayout matches the register display format (day-first).
const csvDateLayout = "02/01/2006"

// unknownAccount labels transactions whose account was deleted.
const unknownAccount = "Inconnu"

// Service renders the current state into downloadable documents.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// WriteCSV writes one row per transaction: date, description, category,
// amount, type and the resolved account name.
func (s *Service) WriteCSV(state ledger.State, w io.Writer) error {
	names := make(map[string]string, len(state.Accounts))
	for _, a := range state.Accounts {
		names[a.ID] = a.Name
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Description", "Catégorie", "Montant", "Type", "Compte"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range state.Transactions {
		name, ok := names[t.AccountID]
		if !ok {
			name = unknownAccount
		}

		row := []string{
			t.Date.Format(csvDateLayout),
			t.Description,
			t.Category,
			t.Amount.String(),
			string(t.Type),
			name,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// WriteJSON writes the full persisted-state document plus an exportDate
// timestamp, the complete backup format accepted back by the JSON importer.
func (s *Service) WriteJSON(state ledger.State, w io.Writer) error {
	data, err := ledger.EncodeState(state)
	if err != nil {
		return err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("reshaping state document: %w", err)
	}

	stamp, err := json.Marshal(time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("encoding export date: %w", err)
	}

	doc["exportDate"] = stamp

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	return nil
}

// CSVFilename is the suggested download name for a CSV export.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("near-transactions-%s.csv", now.Format(time.DateOnly))
}

// JSONFilename is the suggested download name for a JSON backup.
func JSONFilename(now time.Time) string {
	return fmt.Sprintf("near-backup-%s.json", now.Format(time.DateOnly))
}
