package ledger

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into the default sheet and returns the xlsx bytes.
func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestLoad(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"PaymentDate", "CustomerName", "ChequeDDNo", "Amount", "Remarks"},
		{"01/02/2024", "Tashi Traders", "CR240001234", 1500.00, "advance"},
		{"02/02/2024", "Norbu Enterprise", " CHQ8801 ", "Nu. 900.00", ""},
		{"03/02/2024", "Walk-in", "", 50.00, "cash"},
	})

	l, err := Load(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(l.Columns) != 5 {
		t.Fatalf("columns: got %d, want 5", len(l.Columns))
	}
	if len(l.Entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(l.Entries))
	}

	// Original cell formatting preserved, derived key trimmed.
	if l.Entries[1].Fields["ChequeDDNo"] != " CHQ8801 " {
		t.Errorf("Fields[ChequeDDNo]: got %q, want %q", l.Entries[1].Fields["ChequeDDNo"], " CHQ8801 ")
	}
	if l.Entries[1].RefKey != "CHQ8801" {
		t.Errorf("RefKey: got %q, want %q", l.Entries[1].RefKey, "CHQ8801")
	}
	if l.Entries[1].Amount != 900.00 {
		t.Errorf("Amount: got %f, want %f", l.Entries[1].Amount, 900.00)
	}

	if l.Entries[2].RefKey != "" {
		t.Errorf("blank RefKey: got %q, want empty", l.Entries[2].RefKey)
	}
}

func TestFiltered(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"CustomerName", "ChequeDDNo", "Amount"},
		{"A", "CR240001234", 100.00},
		{"B", "", 50.00},
		{"C", "   ", 25.00},
		{"D", "CHQ8801", 200.00},
	})

	l, err := Load(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filtered := l.Filtered()
	if len(filtered) != 2 {
		t.Fatalf("filtered: got %d, want 2", len(filtered))
	}
	if filtered[0].RefKey != "CR240001234" || filtered[1].RefKey != "CHQ8801" {
		t.Errorf("filtered order: got %q, %q", filtered[0].RefKey, filtered[1].RefKey)
	}

	// Rows without a reference key stay in the full dataset.
	if len(l.Entries) != 4 {
		t.Errorf("entries: got %d, want 4", len(l.Entries))
	}
}

func TestLoadMissingColumns(t *testing.T) {
	noRef := buildWorkbook(t, [][]any{
		{"CustomerName", "Amount"},
		{"A", 100.00},
	})
	if _, err := Load(noRef); err == nil {
		t.Error("expected error for missing ChequeDDNo column")
	}

	noAmount := buildWorkbook(t, [][]any{
		{"CustomerName", "ChequeDDNo"},
		{"A", "CR240001234"},
	})
	if _, err := Load(noAmount); err == nil {
		t.Error("expected error for missing Amount column")
	}
}

func TestLoadNotAWorkbook(t *testing.T) {
	if _, err := Load(bytes.NewBufferString("not an xlsx file")); err == nil {
		t.Error("expected error for invalid workbook bytes")
	}
}
