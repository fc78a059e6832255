package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sonamtobgay/bankrecon/internal/models"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "reports_metadata.json"))
}

func record(n int) Record {
	return Record{
		Filename:          fmt.Sprintf("Reconciliation_%03d.xlsx", n),
		Timestamp:         "2024-02-01T10:00:00",
		DataEntryFile:     "ledger.xlsx",
		BankStatementFile: "statement.pdf",
		Stats:             models.Stats{TotalEntries: n},
	}
}

func TestAppendAndAll(t *testing.T) {
	s := tempStore(t)

	for i := 1; i <= 3; i++ {
		if err := s.Append(record(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records: got %d, want 3", len(records))
	}
	// Newest appended last.
	if records[2].Filename != "Reconciliation_003.xlsx" {
		t.Errorf("last record: got %q", records[2].Filename)
	}
	if records[0].Stats.TotalEntries != 1 {
		t.Errorf("stats roundtrip: got %d, want 1", records[0].Stats.TotalEntries)
	}
}

func TestAppendCapsAtFifty(t *testing.T) {
	s := tempStore(t)

	for i := 1; i <= 55; i++ {
		if err := s.Append(record(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 50 {
		t.Fatalf("records: got %d, want 50", len(records))
	}
	// Oldest five dropped.
	if records[0].Filename != "Reconciliation_006.xlsx" {
		t.Errorf("first record: got %q, want Reconciliation_006.xlsx", records[0].Filename)
	}
	if records[49].Filename != "Reconciliation_055.xlsx" {
		t.Errorf("last record: got %q, want Reconciliation_055.xlsx", records[49].Filename)
	}
}

func TestMissingFileIsEmptyLog(t *testing.T) {
	s := tempStore(t)

	records, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports_metadata.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	records, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}

	// Appending over the corrupt file starts a fresh log.
	if err := s.Append(record(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, _ = s.All()
	if len(records) != 1 {
		t.Errorf("records after append: got %d, want 1", len(records))
	}
}

func TestReversed(t *testing.T) {
	records := []Record{record(1), record(2), record(3)}
	rev := Reversed(records)

	if rev[0].Filename != "Reconciliation_003.xlsx" || rev[2].Filename != "Reconciliation_001.xlsx" {
		t.Errorf("reversed order: got %q .. %q", rev[0].Filename, rev[2].Filename)
	}
	// Input untouched.
	if records[0].Filename != "Reconciliation_001.xlsx" {
		t.Errorf("input mutated: got %q", records[0].Filename)
	}
}
