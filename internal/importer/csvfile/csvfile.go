// Package csvfile imports generic bank CSV exports. The header row must
// contain at least date, description and amount columns (any order, any
// case); category is optional and defaults to a placeholder label.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/nearfin/near/internal/encoding"
	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/ledger"
)

const (
	colDate        = "date"
	colDescription = "description"
	colAmount      = "amount"
	colCategory    = "category"

	// defaultCategory labels rows with no category column or an empty cell.
	defaultCategory = "Divers"
)

// dateLayouts are tried in order; banks disagree on day-first vs ISO.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) (importer.Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return importer.Result{}, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return importer.Result{}, fmt.Errorf("reading csv: %w", err)
	}

	if len(rows) == 0 {
		return importer.Result{}, fmt.Errorf("empty file")
	}

	cols := headerIndex(rows[0])

	for _, required := range []string{colDate, colDescription, colAmount} {
		if _, ok := cols[required]; !ok {
			return importer.Result{}, fmt.Errorf("required columns missing: the header must contain date, description and amount")
		}
	}

	var result importer.Result

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, header included

		if isBlank(row) {
			continue
		}

		tx, err := parseRow(cols, row)
		if err != nil {
			return importer.Result{}, fmt.Errorf("row %d: %w", rowNum, err)
		}

		result.Transactions = append(result.Transactions, tx)
	}

	return result, nil
}

// headerIndex maps lowercased, trimmed column names to their position.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	return cols
}

func parseRow(cols map[string]int, row []string) (ledger.Transaction, error) {
	date, err := parseDate(cellValue(row, cols[colDate]))
	if err != nil {
		return ledger.Transaction{}, err
	}

	amount, err := parseAmount(cellValue(row, cols[colAmount]))
	if err != nil {
		return ledger.Transaction{}, err
	}

	category := defaultCategory
	if idx, ok := cols[colCategory]; ok {
		if v := cellValue(row, idx); v != "" {
			category = v
		}
	}

	// The sign decides the type; a type column in the file is ignored.
	txType := ledger.TypeIncome
	if amount.IsNegative() {
		txType = ledger.TypeExpense
	}

	return ledger.Transaction{
		Date:        date,
		Description: cellValue(row, cols[colDescription]),
		Amount:      amount,
		Category:    category,
		Type:        txType,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	// Accept both "-85.50" and the French "-85,50".
	clean := s
	if strings.Contains(clean, ",") && !strings.Contains(clean, ".") {
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
