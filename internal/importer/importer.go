package importer

import (
	"errors"
	"io"

	"github.com/nearfin/near/internal/ledger"
)

// Format identifies a supported bulk import file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is the user-visible failure for unknown file types.
var ErrUnsupportedFormat = errors.New("file format not supported")

// Result holds parsed records before they are stamped with fresh ids and a
// default account. Transactions with an empty AccountID get the current
// default account assigned during Prepare.
type Result struct {
	Transactions []ledger.Transaction
	Accounts     []ledger.Account
}

// Importer parses one file format into records.
type Importer interface {
	Parse(r io.Reader) (Result, error)
}
