package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestDeckProgress_Fraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		got := NewDeckProgress("", tt.done, tt.total, 20).Fraction()
		if got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestDeckProgress_View(t *testing.T) {
	view := NewDeckProgress("Cleared", 3, 12, 40).View()
	if !strings.Contains(view, "Cleared") || !strings.Contains(view, "3/12") {
		t.Errorf("view = %q", view)
	}
	if w := lipgloss.Width(view); w != 40 {
		t.Errorf("width = %d, want 40", w)
	}
}
