package grid_test

import (
	"errors"
	"testing"

	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/testutil"
)

func TestWindowMirrorsCellsToSink(t *testing.T) {
	w := grid.NewWindow(7, 2, "Chest")
	w.SetCell(0, testutil.Cell("a"))

	sink := testutil.NewSink("alice")
	if err := w.Open(sink); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if len(sink.Shown) != 1 || sink.Shown[0] != 7 {
		t.Fatalf("expected window 7 to be shown, got %v", sink.Shown)
	}
	if sink.Titles[7] != "Chest" {
		t.Fatalf("expected title Chest, got %q", sink.Titles[7])
	}
	if got := sink.Screens[7][0].Icon; got != "a" {
		t.Fatalf("expected initial contents to be sent, got %q", got)
	}

	w.SetCell(17, testutil.Cell("z"))
	if len(sink.Updates) != 1 || sink.Updates[0].Slot != 17 {
		t.Fatalf("expected one update for slot 17, got %#v", sink.Updates)
	}

	w.SetCell(18, testutil.Cell("out"))
	if len(sink.Updates) != 1 {
		t.Fatalf("expected out of range write to be ignored")
	}

	w.Close()
	if len(sink.Hidden) != 1 {
		t.Fatalf("expected hide on close")
	}
	if w.Viewers() != 0 {
		t.Fatalf("expected no viewers after close")
	}
	w.SetCell(0, testutil.Cell("b"))
	if w.Cell(0).Icon != "a" {
		t.Fatalf("expected closed window to drop writes")
	}
}

func TestWindowSingleViewer(t *testing.T) {
	w := grid.NewWindow(1, 1, "")
	alice := testutil.NewViewer("alice")
	bob := testutil.NewViewer("bob")
	if err := w.Open(alice); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := w.Open(alice); err != nil {
		t.Fatalf("reopen by same viewer should be a no-op, got %v", err)
	}
	if err := w.Open(bob); !errors.Is(err, grid.ErrSurfaceInUse) {
		t.Fatalf("expected ErrSurfaceInUse, got %v", err)
	}
	w.Close()
	if err := w.Open(bob); !errors.Is(err, grid.ErrSurfaceClosed) {
		t.Fatalf("expected ErrSurfaceClosed, got %v", err)
	}
}

func TestWindowOpenFailsForGoneSink(t *testing.T) {
	w := grid.NewWindow(1, 1, "")
	sink := testutil.NewSink("alice")
	sink.Gone = true
	if err := w.Open(sink); !errors.Is(err, grid.ErrViewerGone) {
		t.Fatalf("expected ErrViewerGone, got %v", err)
	}
	if w.Viewers() != 0 {
		t.Fatalf("expected failed open to leave no viewer")
	}
}

func TestWindowProviderValidatesRows(t *testing.T) {
	p := grid.NewWindowProvider()
	if _, err := p.CreateSurface(0, "x"); err == nil {
		t.Fatalf("expected error for zero rows")
	}
	if _, err := p.CreateSurface(7, "x"); err == nil {
		t.Fatalf("expected error for seven rows")
	}
	first, err := p.CreateSurface(3, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := p.CreateSurface(3, "y")
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct surface ids")
	}
	if first.Size() != 27 {
		t.Fatalf("expected 27 cells, got %d", first.Size())
	}
}

func TestCellEqualityAndClone(t *testing.T) {
	a := grid.Cell{Icon: "stone", Name: "Stone", Lore: []string{"one"}}
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("expected clone to be equal")
	}
	b.Lore[0] = "two"
	if a.Lore[0] != "one" {
		t.Fatalf("expected clone to own its lore")
	}
	if a.Equal(b) {
		t.Fatalf("expected cells with different lore to differ")
	}
	if !grid.Empty.IsEmpty() {
		t.Fatalf("expected Empty to be empty")
	}
}

func TestParseClickKind(t *testing.T) {
	if grid.ParseClickKind("Shift-Right") != grid.ClickShiftRight {
		t.Fatalf("expected shift-right")
	}
	if grid.ParseClickKind("bogus") != grid.ClickLeft {
		t.Fatalf("expected unknown kinds to map to left")
	}
	if !grid.ClickShiftLeft.IsShift() || grid.ClickRight.IsShift() {
		t.Fatalf("unexpected IsShift results")
	}
}
