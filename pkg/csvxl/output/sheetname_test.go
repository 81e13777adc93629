package output

import (
	"strings"
	"testing"
)

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "Sales", "Sales"},
		{"forbidden characters", `a/b\c?d*e[f]g:h`, "a_b_c_d_e_f_g_h"},
		{"only forbidden characters", `\\//`, "____"},
		{"too long", strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{"empty", "", "Sheet"},
		{"multibyte runes", strings.Repeat("é", 35), strings.Repeat("é", 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeSheetName(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeSheetName(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}

	if got := UniqueSheetName("Sales", used); got != "Sales" {
		t.Errorf("Expected unused name unchanged, got %q", got)
	}
	used["Sales"] = true

	if got := UniqueSheetName("Sales", used); got != "Sales_2" {
		t.Errorf("Expected Sales_2, got %q", got)
	}
	used["Sales_2"] = true

	if got := UniqueSheetName("Sales", used); got != "Sales_3" {
		t.Errorf("Expected Sales_3, got %q", got)
	}
}

func TestUniqueSheetName_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 31)
	used := map[string]bool{long: true}

	got := UniqueSheetName(long, used)
	if len([]rune(got)) > 31 {
		t.Errorf("Expected name within 31 runes, got %d: %q", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, "_2") {
		t.Errorf("Expected _2 suffix, got %q", got)
	}
}
