package importer

import (
	"io"

	"github.com/google/uuid"

	"github.com/nearfin/near/internal/ledger"
)

// fallbackAccountID is assigned when a file is imported before any account
// exists.
const fallbackAccountID = "1"

type Service struct {
	csvImporter  Importer
	jsonImporter Importer
}

func NewService(csv, json Importer) *Service {
	return &Service{
		csvImporter:  csv,
		jsonImporter: json,
	}
}

// Import parses the file and returns the add commands ready to dispatch,
// along with the number of records they carry. Nothing is mutated here: a
// parse failure aborts the whole import before any command exists.
//
// Imported records always receive freshly generated ids; ids present in the
// file are discarded. CSV transactions land on the first account in the
// current state (or the fallback id when there is none).
func (s *Service) Import(format Format, r io.Reader, state ledger.State) ([]ledger.Command, int, error) {
	var imp Importer

	switch format {
	case FormatCSV:
		imp = s.csvImporter
	case FormatJSON:
		imp = s.jsonImporter
	default:
		return nil, 0, ErrUnsupportedFormat
	}

	result, err := imp.Parse(r)
	if err != nil {
		return nil, 0, err
	}

	defaultAccount := fallbackAccountID
	if len(state.Accounts) > 0 {
		defaultAccount = state.Accounts[0].ID
	}

	cmds := make([]ledger.Command, 0, len(result.Accounts)+len(result.Transactions))

	for _, a := range result.Accounts {
		a.ID = uuid.NewString()
		cmds = append(cmds, ledger.AddAccount{Account: a})
	}

	for _, t := range result.Transactions {
		t.ID = uuid.NewString()
		if t.AccountID == "" {
			t.AccountID = defaultAccount
		}

		cmds = append(cmds, ledger.AddTransaction{Transaction: t})
	}

	return cmds, len(cmds), nil
}
