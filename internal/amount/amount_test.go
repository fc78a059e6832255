package amount

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1234.50", 1234.50},
		{"1,234.50", 1234.50},
		{"Nu. 1,234.50", 1234.50},
		{"BTN 500.00", 500.00},
		{"  42,000 ", 42000},
		{"-150.25", -150.25},
		{"", 0.0},
		{"   ", 0.0},
		{"garbage", 0.0},
		{"Nu.", 0.0},
		{"12.34.56", 0.0},
	}

	for _, tt := range tests {
		got := Parse(tt.input)
		if got != tt.expected {
			t.Errorf("Parse(%q): got %f, want %f", tt.input, got, tt.expected)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	// Parsing the text form of an already-parsed value yields the same number.
	v := Parse("Nu. 9,876.54")
	if v != 9876.54 {
		t.Fatalf("Parse: got %f, want 9876.54", v)
	}
	if again := Parse("9876.54"); again != v {
		t.Errorf("reparse: got %f, want %f", again, v)
	}
}
