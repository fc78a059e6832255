package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sonamtobgay/bankrecon/internal/api"
	"github.com/sonamtobgay/bankrecon/internal/extractor"
	"github.com/sonamtobgay/bankrecon/internal/history"
	"github.com/sonamtobgay/bankrecon/internal/ledger"
	"github.com/sonamtobgay/bankrecon/internal/recon"
	"github.com/sonamtobgay/bankrecon/internal/report"
	"github.com/sonamtobgay/bankrecon/internal/statement"
)

func main() {
	layoutFlag := flag.String("layout", "bob", "Statement layout (currently only: bob)")
	outputFlag := flag.String("output", "", "Output workbook path (defaults to Reconciliation_<ledger>.xlsx)")
	serveFlag := flag.String("serve", "", "Run the HTTP API on this address (e.g. :8000) instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Reconciliation

Matches a data entry workbook against a Bank of Bhutan PDF statement and
writes a categorized multi-sheet report.

Usage:
  bankrecon [flags] <ledger.xlsx> <statement.pdf>
  bankrecon -serve :8000

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Reconcile and write Reconciliation_ledger.xlsx
  bankrecon ledger.xlsx statement.pdf

  # Custom output path
  bankrecon -output=feb-report.xlsx ledger.xlsx statement.pdf

  # Run the upload API
  bankrecon -serve :8000

The ledger workbook needs ChequeDDNo and Amount columns; all other columns
are carried into the report unchanged.
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("bankrecon v%s\n", api.Version)
		os.Exit(0)
	}

	if *serveFlag != "" {
		serve(*serveFlag)
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	layout, err := statement.LayoutByName(*layoutFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	if err := reconcileFiles(flag.Arg(0), flag.Arg(1), *outputFlag, layout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func reconcileFiles(ledgerPath, statementPath, outputPath string, layout statement.Layout) error {
	fmt.Printf("Processing: %s against %s\n", ledgerPath, statementPath)

	l, err := ledger.LoadFile(ledgerPath)
	if err != nil {
		return err
	}
	entries := l.Filtered()
	fmt.Printf("  Data entry: %d rows, %d with reference keys\n", len(l.Entries), len(entries))

	pages, err := extractor.ExtractTables(statementPath)
	if err != nil {
		return err
	}
	txns := statement.Parse(pages, layout)
	fmt.Printf("  Bank statement: %d transaction(s) across %d page(s)\n", len(txns), len(pages))

	cats := recon.Reconcile(entries, txns, layout.BankName)
	stats := recon.ComputeStats(entries, txns, cats)

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(ledgerPath), filepath.Ext(ledgerPath))
		outPath = "Reconciliation_" + base + ".xlsx"
	}

	data := &report.Data{
		Categories:    cats,
		Stats:         stats,
		LedgerColumns: l.Columns,
		Transactions:  txns,
	}
	if err := report.NewWriter().WriteToFile(outPath, data); err != nil {
		return err
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Printf("  Matched: %d  Mismatches: %d  Unmatched: %d  Unregistered: %d\n",
		stats.Matched, stats.Mismatches, stats.Unmatched, stats.Unregistered)
	fmt.Printf("  Entered: %.2f  After adjustment: %.2f  Bank: %.2f  Difference: %.2f\n",
		stats.TotalEnteredAmount, stats.TotalAfterAdjustment, stats.TotalBankAmount, stats.AmountDifference)
	fmt.Println("  Done.")
	return nil
}

func serve(addr string) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	dataDir := os.Getenv("BANKRECON_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(os.TempDir(), "bankrecon")
	}
	reportsDir := filepath.Join(dataDir, "reports")
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		log.Fatalf("failed to create reports dir: %v", err)
	}

	store := history.NewFileStore(filepath.Join(dataDir, "reports_metadata.json"))
	srv := api.New(reportsDir, store)

	log.Printf("bankrecon v%s listening on %s (reports in %s)", api.Version, addr, reportsDir)
	if err := srv.App().Listen(addr); err != nil {
		log.Fatal(err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
