package extractor

import (
	"reflect"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestSplitCells(t *testing.T) {
	// One statement row: date | description | journal | amount, with
	// column gaps well above cellGap and word gaps well below it.
	runs := []pdf.Text{
		{S: "01/02/2024", X: 20, W: 50},
		{S: "FUND", X: 110, W: 28},
		{S: "TRANSFER", X: 140, W: 50},
		{S: "CR240001234", X: 260, W: 60},
		{S: "1,500.00", X: 420, W: 45},
	}

	got := SplitCells(runs)
	want := []string{"01/02/2024", "FUND TRANSFER", "CR240001234", "1,500.00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCells: got %v, want %v", got, want)
	}
}

func TestSplitCellsUnsortedInput(t *testing.T) {
	// Text objects can arrive out of X order; cells must still come out
	// left to right.
	runs := []pdf.Text{
		{S: "900.00", X: 300, W: 35},
		{S: "15/03/2024", X: 10, W: 50},
		{S: "CR240009999", X: 150, W: 60},
	}

	got := SplitCells(runs)
	want := []string{"15/03/2024", "CR240009999", "900.00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCells: got %v, want %v", got, want)
	}
}

func TestSplitCellsEmpty(t *testing.T) {
	if got := SplitCells(nil); got != nil {
		t.Errorf("SplitCells(nil): got %v, want nil", got)
	}
	if got := SplitCells([]pdf.Text{{S: "   ", X: 0, W: 5}}); got != nil {
		t.Errorf("SplitCells(blank): got %v, want nil", got)
	}
}

func TestExtractTablesMissingFile(t *testing.T) {
	_, err := ExtractTables("does-not-exist.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
