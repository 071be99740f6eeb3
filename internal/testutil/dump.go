package testutil

import (
	"strings"
	"testing"

	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/slot"
)

// Cell builds a cell whose icon is the given marker.
func Cell(icon string) grid.Cell {
	return grid.Cell{Icon: icon, Name: icon}
}

// Cells builds one marker cell per argument; "." yields an empty cell.
func Cells(icons ...string) []grid.Cell {
	out := make([]grid.Cell, len(icons))
	for i, icon := range icons {
		if icon == "." {
			continue
		}
		out[i] = Cell(icon)
	}
	return out
}

// Filled returns size cells that all carry the same marker.
func Filled(icon string, size int) []grid.Cell {
	out := make([]grid.Cell, size)
	for i := range out {
		out[i] = Cell(icon)
	}
	return out
}

// Dump renders cells as rows of space separated icons, "." for empty cells.
func Dump(cells []grid.Cell) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			if i%slot.Columns == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		if c.IsEmpty() {
			b.WriteByte('.')
			continue
		}
		b.WriteString(c.Icon)
	}
	return b.String()
}

// AssertDump compares the rendered cells against the expected rows.
func AssertDump(t *testing.T, name string, cells []grid.Cell, rows ...string) {
	t.Helper()
	want := strings.Join(rows, "\n")
	got := Dump(cells)
	if got != want {
		t.Fatalf("grid mismatch for %s\nexpected:\n%s\nactual:\n%s", name, want, got)
	}
}
