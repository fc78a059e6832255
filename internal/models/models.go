package models

import "strings"

// Transaction represents a single posted transaction extracted from the
// bank statement PDF.
type Transaction struct {
	Date        string  `json:"date"`
	Journal     string  `json:"journal_number"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Page holds the reconstructed table grid of one PDF page: rows of cells,
// in reading order top to bottom.
type Page struct {
	Number int
	Rows   [][]string
}

// LedgerEntry is one row of the uploaded data entry workbook. Fields carries
// every original column untouched; RefKey is the trimmed ChequeDDNo used as
// the join key ("" when the cell is blank), and Amount is the parsed value
// of the Amount column.
type LedgerEntry struct {
	Fields map[string]string
	RefKey string
	Amount float64
}

// Ledger is the full uploaded dataset with its column order preserved.
type Ledger struct {
	Columns []string
	Entries []LedgerEntry
}

// Filtered returns the entries that participate in reconciliation: those
// with a non-empty reference key. Order is the original row order.
func (l *Ledger) Filtered() []LedgerEntry {
	var out []LedgerEntry
	for _, e := range l.Entries {
		if strings.TrimSpace(e.RefKey) != "" {
			out = append(out, e)
		}
	}
	return out
}

// Row is one report row: original ledger columns plus the reconciliation
// columns (Status, Bank_Amount, Difference, Remarks). Amount and Bank_Amount
// stay numeric so workbook SUM formulas pick them up.
type Row map[string]any

// Categories holds the five report buckets produced by reconciliation.
// Every filtered ledger entry lands in AllEntries and in exactly one of
// Matched, Adjusted or Unmatched; bank transactions with no ledger
// counterpart land in Unregistered.
type Categories struct {
	AllEntries   []Row
	Matched      []Row
	Adjusted     []Row
	Unmatched    []Row
	Unregistered []Row
}

// Statuses written into the Status column of report rows.
const (
	StatusMatched      = "Matched"
	StatusMismatch     = "Amount Mismatch"
	StatusAdjustment   = "Adjustment Entry"
	StatusNotFound     = "Not Found in Bank"
	StatusUnregistered = "Not in Data Entry"
)

// Stats is the summary record of one reconciliation run. The JSON keys are
// the wire contract shared by the HTTP API and the report metadata log.
type Stats struct {
	TotalEntries          int     `json:"total_entries"`
	Matched               int     `json:"matched"`
	Mismatches            int     `json:"mismatches"`
	Unmatched             int     `json:"unmatched"`
	Unregistered          int     `json:"unregistered"`
	TotalBankTransactions int     `json:"total_bank_transactions"`
	TotalEnteredAmount    float64 `json:"total_entered_amount"`
	TotalAdjustmentAmount float64 `json:"total_adjustment_amount"`
	TotalAfterAdjustment  float64 `json:"total_after_adjustment"`
	TotalBankAmount       float64 `json:"total_bank_amount"`
	AmountDifference      float64 `json:"amount_difference"`
	Accuracy              float64 `json:"accuracy"`
}
