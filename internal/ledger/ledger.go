// Package ledger loads the uploaded data entry workbook.
package ledger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sonamtobgay/bankrecon/internal/amount"
	"github.com/sonamtobgay/bankrecon/internal/models"
)

// Required columns in the data entry sheet.
const (
	RefColumn    = "ChequeDDNo"
	AmountColumn = "Amount"
)

// Load reads the first sheet of an xlsx workbook. The first row names the
// columns; every later row becomes a LedgerEntry carrying all of its cells
// untouched plus the derived trimmed reference key and parsed amount.
func Load(r io.Reader) (*models.Ledger, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open data entry workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("data entry sheet %q is empty", sheet)
	}

	header := rows[0]
	if !hasColumn(header, RefColumn) {
		return nil, fmt.Errorf("data entry sheet is missing the %s column", RefColumn)
	}
	if !hasColumn(header, AmountColumn) {
		return nil, fmt.Errorf("data entry sheet is missing the %s column", AmountColumn)
	}

	l := &models.Ledger{Columns: header}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = row[i]
			} else {
				// excelize trims trailing empty cells from each row
				fields[col] = ""
			}
		}
		l.Entries = append(l.Entries, models.LedgerEntry{
			Fields: fields,
			RefKey: strings.TrimSpace(fields[RefColumn]),
			Amount: amount.Parse(fields[AmountColumn]),
		})
	}

	return l, nil
}

// LoadFile reads a ledger workbook from disk.
func LoadFile(path string) (*models.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func hasColumn(header []string, name string) bool {
	for _, col := range header {
		if col == name {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
