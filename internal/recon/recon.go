// Package recon implements the reconciliation core: joining ledger entries
// to bank transactions by reference key, categorizing the outcomes and
// computing the summary statistics.
package recon

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sonamtobgay/bankrecon/internal/ledger"
	"github.com/sonamtobgay/bankrecon/internal/models"
)

// matchTolerance is the absolute amount difference below which a ledger
// entry and a bank transaction count as the same payment. One unit absorbs
// the rounding conventions between the two systems; the boundary is strict.
const matchTolerance = 1.0

// Reconcile classifies every filtered ledger entry against the statement
// transactions. Entries are processed in original row order, which fixes the
// output order. When several transactions share a journal number the first
// one in statement order wins; the rest stay unconsumed and will surface as
// unregistered. bankName labels the synthetic unregistered rows.
func Reconcile(entries []models.LedgerEntry, txns []models.Transaction, bankName string) *models.Categories {
	cats := &models.Categories{}

	// First occurrence per journal number.
	byJournal := make(map[string]int, len(txns))
	for i, txn := range txns {
		if _, seen := byJournal[txn.Journal]; !seen {
			byJournal[txn.Journal] = i
		}
	}
	consumed := make(map[int]bool, len(entries))

	for _, e := range entries {
		i, found := byJournal[e.RefKey]
		if !found {
			row := entryRow(e)
			row["Status"] = models.StatusNotFound
			row["Bank_Amount"] = ""
			row["Difference"] = ""
			cats.AllEntries = append(cats.AllEntries, row)
			cats.Unmatched = append(cats.Unmatched, row)
			continue
		}

		bankAmount := txns[i].Amount
		consumed[i] = true

		if math.Abs(bankAmount-e.Amount) < matchTolerance {
			row := entryRow(e)
			row["Status"] = models.StatusMatched
			row["Bank_Amount"] = bankAmount
			row["Difference"] = 0.0
			cats.AllEntries = append(cats.AllEntries, row)
			cats.Matched = append(cats.Matched, row)
			continue
		}

		diff := bankAmount - e.Amount

		row := entryRow(e)
		row["Status"] = models.StatusMismatch
		row["Bank_Amount"] = bankAmount
		row["Difference"] = diff
		cats.AllEntries = append(cats.AllEntries, row)
		cats.Adjusted = append(cats.Adjusted, row)

		// Synthetic entry directly below the original, carrying the signed
		// difference so entry + adjustment reconciles to the bank amount.
		adj := entryRow(e)
		adj["Status"] = models.StatusAdjustment
		adj["Bank_Amount"] = bankAmount
		adj["Difference"] = diff
		adj[ledger.AmountColumn] = diff
		adj["Remarks"] = fmt.Sprintf("Adjustment for Journal %s: Bank=%s, Entry=%s, Diff=%s",
			e.RefKey, fmtAmount(bankAmount), fmtAmount(e.Amount), fmtAmount(diff))
		cats.AllEntries = append(cats.AllEntries, adj)
		cats.Adjusted = append(cats.Adjusted, adj)
	}

	for i, txn := range txns {
		if consumed[i] {
			continue
		}
		cats.Unregistered = append(cats.Unregistered, models.Row{
			"PaymentDate":  txn.Date,
			"CustomerName": "UNREGISTERED",
			"ChequeDDNo":   txn.Journal,
			"Amount":       txn.Amount,
			"PaymentMode":  "BANK TRANSFER",
			"Bank":         bankName,
			"Remarks":      txn.Description,
			"Status":       models.StatusUnregistered,
			"Bank_Amount":  txn.Amount,
		})
	}

	return cats
}

// ComputeStats derives the summary record from the categorized output.
// entries must be the same filtered slice given to Reconcile.
func ComputeStats(entries []models.LedgerEntry, txns []models.Transaction, cats *models.Categories) models.Stats {
	stats := models.Stats{
		TotalEntries:          len(entries),
		Matched:               len(cats.Matched),
		Unmatched:             len(cats.Unmatched),
		Unregistered:          len(cats.Unregistered),
		TotalBankTransactions: len(txns),
	}

	for _, e := range entries {
		stats.TotalEnteredAmount += e.Amount
	}
	for _, txn := range txns {
		stats.TotalBankAmount += txn.Amount
	}

	// Only the synthetic adjustment rows count toward the adjustment total;
	// their mismatch originals keep the amount as entered.
	for _, row := range cats.Adjusted {
		switch row["Status"] {
		case models.StatusMismatch:
			stats.Mismatches++
		case models.StatusAdjustment:
			if amt, ok := row[ledger.AmountColumn].(float64); ok {
				stats.TotalAdjustmentAmount += amt
			}
		}
	}

	stats.TotalAfterAdjustment = stats.TotalEnteredAmount + stats.TotalAdjustmentAmount
	stats.AmountDifference = stats.TotalBankAmount - stats.TotalAfterAdjustment

	if stats.TotalEntries > 0 {
		stats.Accuracy = float64(stats.Matched) / float64(stats.TotalEntries) * 100
	}

	return stats
}

// entryRow copies a ledger entry into a report row. The Amount column is
// replaced with the parsed numeric value so workbook formulas can sum it.
func entryRow(e models.LedgerEntry) models.Row {
	row := make(models.Row, len(e.Fields)+3)
	for k, v := range e.Fields {
		row[k] = v
	}
	row[ledger.AmountColumn] = e.Amount
	return row
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
