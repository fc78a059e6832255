// Package statement turns extracted PDF table grids into transaction
// records. Column positions are driven by a per-bank Layout descriptor so a
// new statement format only needs a new descriptor, not new parsing code.
package statement

import (
	"fmt"
	"strings"

	"github.com/sonamtobgay/bankrecon/internal/amount"
	"github.com/sonamtobgay/bankrecon/internal/models"
)

// Layout describes where one bank's statement tables keep their fields.
type Layout struct {
	Name        string
	BankName    string
	HeaderToken string   // case-insensitive token that marks the header row
	SkipTokens  []string // rows containing any of these are not transactions
	MinCells    int
	DateCol     int
	DescCol     int
	JournalCol  int
	AmountCol   int
}

// BankOfBhutan is the supported statement layout:
// Post Date | Value Date | Particulars | Journal No | Debit | Credit | Amount.
var BankOfBhutan = Layout{
	Name:        "bob",
	BankName:    "Bank of Bhutan",
	HeaderToken: "JOURNAL",
	SkipTokens:  []string{"TOTAL", "OPENING", "CLOSING", "STATEMENT", "BALANCE AS"},
	MinCells:    5,
	DateCol:     0,
	DescCol:     2,
	JournalCol:  3,
	AmountCol:   6,
}

// layouts holds the known statement formats by name.
var layouts = map[string]Layout{
	BankOfBhutan.Name: BankOfBhutan,
}

// LayoutByName returns the layout registered under the given name.
func LayoutByName(name string) (Layout, error) {
	l, ok := layouts[strings.ToLower(name)]
	if !ok {
		return Layout{}, fmt.Errorf("unsupported statement layout: %q", name)
	}
	return l, nil
}

// Parse walks every page grid and collects the transaction rows. A page
// whose grid has no header row is not a transaction table (cover page,
// notices) and is skipped entirely. Extraction is best effort: a row that
// fails any check is dropped, never fatal.
func Parse(pages []models.Page, layout Layout) []models.Transaction {
	var txns []models.Transaction
	for _, page := range pages {
		txns = append(txns, parseGrid(page.Rows, layout)...)
	}
	return txns
}

func parseGrid(rows [][]string, layout Layout) []models.Transaction {
	headerIdx := -1
	for i, row := range rows {
		if isHeaderRow(row, layout) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil
	}

	var txns []models.Transaction
	for _, row := range rows[headerIdx+1:] {
		if txn, ok := tryParseRow(row, layout); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

func isHeaderRow(row []string, layout Layout) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToUpper(cell), layout.HeaderToken) {
			return true
		}
	}
	return false
}

// isExcludedRow drops running totals and footer rows by keyword.
func isExcludedRow(row []string, layout Layout) bool {
	joined := strings.ToUpper(strings.Join(row, " "))
	for _, kw := range layout.SkipTokens {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// tryParseRow converts one table row into a transaction. Every condition
// under which the row is skipped is enumerated here:
// too few cells, exclusion keyword, missing or short journal number, the
// literal "None" placeholder, or a non-positive amount.
func tryParseRow(row []string, layout Layout) (models.Transaction, bool) {
	if len(row) < layout.MinCells {
		return models.Transaction{}, false
	}
	if isExcludedRow(row, layout) {
		return models.Transaction{}, false
	}

	journal := strings.TrimSpace(cellAt(row, layout.JournalCol))
	if journal == "" || journal == "None" || len(journal) < 3 {
		return models.Transaction{}, false
	}

	amt := amount.Parse(cellAt(row, layout.AmountCol))
	if amt <= 0 {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        strings.TrimSpace(cellAt(row, layout.DateCol)),
		Journal:     journal,
		Description: strings.TrimSpace(cellAt(row, layout.DescCol)),
		Amount:      amt,
	}, true
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
