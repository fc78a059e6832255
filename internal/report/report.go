// Package report renders categorized reconciliation output into the
// multi-sheet Excel workbook handed back to the operator.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sonamtobgay/bankrecon/internal/ledger"
	"github.com/sonamtobgay/bankrecon/internal/models"
)

// Sheet names, in workbook order.
const (
	SheetAllEntries    = "All Entries"
	SheetMatched       = "Matched"
	SheetAdjusted      = "Adjusted"
	SheetUnmatched     = "Unmatched"
	SheetUnregistered  = "Unregistered"
	SheetSummary       = "Summary"
	SheetBankStatement = "Bank Statement"
)

// placeholders shown on transactional sheets that would otherwise be empty.
// A sheet must never have zero content rows.
var placeholders = map[string]string{
	SheetAllEntries:    "No entries found",
	SheetMatched:       "No matched transactions",
	SheetAdjusted:      "No adjustments needed",
	SheetUnmatched:     "All entries found in bank",
	SheetUnregistered:  "All bank transactions registered",
	SheetBankStatement: "No bank data to display",
}

// unregisteredColumns is the fixed shape of the synthetic unregistered rows.
var unregisteredColumns = []string{
	"PaymentDate", "CustomerName", "ChequeDDNo", "Amount",
	"PaymentMode", "Bank", "Remarks", "Status", "Bank_Amount",
}

// bankStatementColumns renames the raw transaction dump for readability.
var bankStatementColumns = []string{"Date", "Journal #", "Description", "Amount"}

// Data bundles everything one report needs.
type Data struct {
	Categories    *models.Categories
	Stats         models.Stats
	LedgerColumns []string
	Transactions  []models.Transaction
}

// Writer assembles reconciliation workbooks. The printer localizes the
// Summary sheet's currency strings with thousands separators.
type Writer struct {
	printer *message.Printer
}

func NewWriter() *Writer {
	return &Writer{printer: message.NewPrinter(language.English)}
}

// WriteToFile writes the workbook to the given path.
func (w *Writer) WriteToFile(path string, data *Data) error {
	f, err := w.build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write streams the workbook to the given writer.
func (w *Writer) Write(out io.Writer, data *Data) error {
	f, err := w.build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *Writer) build(data *Data) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetAllEntries); err != nil {
		return nil, err
	}

	cats := data.Categories
	entryCols := entryColumns(data.LedgerColumns, cats.AllEntries)

	entrySheets := []struct {
		name string
		cols []string
		rows []models.Row
	}{
		{SheetAllEntries, entryCols, cats.AllEntries},
		{SheetMatched, entryCols, cats.Matched},
		{SheetAdjusted, entryCols, cats.Adjusted},
		{SheetUnmatched, entryCols, cats.Unmatched},
		{SheetUnregistered, unregisteredColumns, cats.Unregistered},
	}

	for _, s := range entrySheets {
		if err := writeRowSheet(f, s.name, s.cols, s.rows); err != nil {
			return nil, err
		}
	}

	if err := w.writeSummary(f, data.Stats); err != nil {
		return nil, err
	}
	if err := writeBankStatement(f, data.Transactions); err != nil {
		return nil, err
	}

	// Second pass: live SUM formulas over the Amount column so the report
	// stays recalculable in the consumer's spreadsheet tool.
	for _, s := range entrySheets {
		if err := appendTotalRow(f, s.name, s.cols, len(s.rows)); err != nil {
			return nil, err
		}
	}
	if err := appendTotalRow(f, SheetBankStatement, bankStatementColumns, len(data.Transactions)); err != nil {
		return nil, err
	}

	return f, nil
}

// entryColumns derives the entry-sheet column order: the original ledger
// columns followed by the reconciliation columns, plus Remarks when the
// categorizer synthesized one the ledger did not already carry.
func entryColumns(ledgerCols []string, allEntries []models.Row) []string {
	cols := make([]string, 0, len(ledgerCols)+4)
	cols = append(cols, ledgerCols...)
	for _, extra := range []string{"Status", "Bank_Amount", "Difference"} {
		if !contains(cols, extra) {
			cols = append(cols, extra)
		}
	}
	if !contains(cols, "Remarks") {
		for _, row := range allEntries {
			if _, ok := row["Remarks"]; ok {
				cols = append(cols, "Remarks")
				break
			}
		}
	}
	return cols
}

func writeRowSheet(f *excelize.File, name string, cols []string, rows []models.Row) error {
	if err := ensureSheet(f, name); err != nil {
		return err
	}

	if len(rows) == 0 {
		if err := setRow(f, name, 1, []any{"Message"}); err != nil {
			return err
		}
		return setRow(f, name, 2, []any{placeholders[name]})
	}

	if err := setRow(f, name, 1, toAnySlice(cols)); err != nil {
		return err
	}
	for i, row := range rows {
		vals := make([]any, len(cols))
		for j, col := range cols {
			if v, ok := row[col]; ok {
				vals[j] = v
			} else {
				vals[j] = ""
			}
		}
		if err := setRow(f, name, i+2, vals); err != nil {
			return err
		}
	}
	return nil
}

func writeBankStatement(f *excelize.File, txns []models.Transaction) error {
	if err := ensureSheet(f, SheetBankStatement); err != nil {
		return err
	}

	if len(txns) == 0 {
		if err := setRow(f, SheetBankStatement, 1, []any{"Message"}); err != nil {
			return err
		}
		return setRow(f, SheetBankStatement, 2, []any{placeholders[SheetBankStatement]})
	}

	if err := setRow(f, SheetBankStatement, 1, toAnySlice(bankStatementColumns)); err != nil {
		return err
	}
	for i, txn := range txns {
		vals := []any{txn.Date, txn.Journal, txn.Description, txn.Amount}
		if err := setRow(f, SheetBankStatement, i+2, vals); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSummary(f *excelize.File, stats models.Stats) error {
	if err := ensureSheet(f, SheetSummary); err != nil {
		return err
	}

	accuracy := "0%"
	if stats.TotalEntries > 0 {
		accuracy = fmt.Sprintf("%.1f%%", stats.Accuracy)
	}

	lines := []struct {
		label string
		value any
	}{
		{"TOTAL DATA ENTRIES", stats.TotalEntries},
		{"", ""},
		{"Matched Transactions", stats.Matched},
		{"Amount Mismatches", stats.Mismatches},
		{"Unmatched (not in bank)", stats.Unmatched},
		{"Unregistered (not in sheet)", stats.Unregistered},
		{"", ""},
		{"TOTAL BANK TRANSACTIONS", stats.TotalBankTransactions},
		{"", ""},
		{"AMOUNT RECONCILIATION", ""},
		{"  Total Entered Amount", w.currency(stats.TotalEnteredAmount)},
		{"  Total Adjustment Amount", w.currency(stats.TotalAdjustmentAmount)},
		{"  Total After Adjustment", w.currency(stats.TotalAfterAdjustment)},
		{"", ""},
		{"  Total Bank Amount", w.currency(stats.TotalBankAmount)},
		{"", ""},
		{"  DIFFERENCE", w.currency(stats.AmountDifference)},
		{"", ""},
		{"RECONCILIATION ACCURACY", accuracy},
	}

	if err := setRow(f, SheetSummary, 1, []any{"Description", "Value"}); err != nil {
		return err
	}
	for i, line := range lines {
		if err := setRow(f, SheetSummary, i+2, []any{line.label, line.value}); err != nil {
			return err
		}
	}
	return nil
}

// appendTotalRow adds "TOTAL" plus a SUM formula under the Amount column of
// a sheet with dataRows data rows. Placeholder sheets have no Amount column
// and get no total.
func appendTotalRow(f *excelize.File, name string, cols []string, dataRows int) error {
	if dataRows == 0 {
		return nil
	}
	amountIdx := -1
	for i, col := range cols {
		if col == ledger.AmountColumn {
			amountIdx = i + 1
			break
		}
	}
	if amountIdx == -1 {
		return nil
	}

	colName, err := excelize.ColumnNumberToName(amountIdx)
	if err != nil {
		return err
	}
	totalRow := dataRows + 2 // 1 header + dataRows, formula on the next row

	if err := f.SetCellValue(name, "A"+strconv.Itoa(totalRow), "TOTAL"); err != nil {
		return err
	}
	formula := fmt.Sprintf("SUM(%s2:%s%d)", colName, colName, dataRows+1)
	return f.SetCellFormula(name, colName+strconv.Itoa(totalRow), formula)
}

func (w *Writer) currency(v float64) string {
	return w.printer.Sprintf("Nu. %.2f", v)
}

func ensureSheet(f *excelize.File, name string) error {
	if idx, err := f.GetSheetIndex(name); err != nil || idx >= 0 {
		return err
	}
	_, err := f.NewSheet(name)
	return err
}

func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
