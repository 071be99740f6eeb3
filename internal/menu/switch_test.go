package menu

import (
	"errors"
	"slices"
	"testing"

	"github.com/atomicstack/gridmenu/internal/anim"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/testutil"
)

func filledTemplate(e *Engine, name, icon string, rows int) *Template {
	return NewBuilder(e, name, rows).Fixed("*", Static(testutil.Cell(icon))).MustBuild()
}

func TestAnimatedSwitchSlidesAndBuffersWrites(t *testing.T) {
	e, sched := newTestEngine()
	a := filledTemplate(e, "a", "a", 1)
	b := filledTemplate(e, "b", "b", 1)
	sink := testutil.NewSink("alice")

	first, err := a.Show(sink, nil)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	next, err := first.SwitchTo(b, nil, WithAnimation(anim.Left))
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if !slices.Contains(sink.Hidden, first.Surface().ID()) {
		t.Fatalf("expected previous surface to be closed once the next one was ready")
	}
	testutil.AssertDump(t, "frame 0", screen(t, sink, next), "a a a a a a a a b")
	if !next.Animating() {
		t.Fatalf("expected transition in flight")
	}

	sched.Step()
	testutil.AssertDump(t, "frame 1", screen(t, sink, next), "a a a a a a a b b")

	if err := next.SetItem("0", Static(testutil.Cell("z"))); err != nil {
		t.Fatalf("set item failed: %v", err)
	}
	testutil.AssertDump(t, "buffered", screen(t, sink, next), "a a a a a a a b b")

	sched.Advance(20)
	if next.Animating() {
		t.Fatalf("expected transition to finish")
	}
	testutil.AssertDump(t, "final", screen(t, sink, next), "z b b b b b b b b")
}

func TestClickFastForwardsTransition(t *testing.T) {
	e, _ := newTestEngine()
	a := filledTemplate(e, "a", "a", 2)
	clicked := false
	b := NewBuilder(e, "b", 2).
		Fixed("*", Static(testutil.Cell("b"))).
		Fixed("0", Button(testutil.Cell("go"), func(*Instance, *grid.ClickEvent) { clicked = true })).
		MustBuild()
	sink := testutil.NewSink("alice")
	first, _ := a.Show(sink, nil)
	next, err := first.SwitchTo(b, nil, WithAnimation(anim.Down))
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	e.OnClick(&grid.ClickEvent{Viewer: sink, Surface: next.Surface(), Slot: 0})
	if next.Animating() {
		t.Fatalf("expected click to fast-forward the transition")
	}
	if !clicked {
		t.Fatalf("expected click to reach the handler after fast-forward")
	}
	testutil.AssertDump(t, "fast-forward", screen(t, sink, next),
		"go b b b b b b b b",
		"b b b b b b b b b")
}

func TestAnimatedSwitchBetweenSizesCuts(t *testing.T) {
	e, sched := newTestEngine()
	small := filledTemplate(e, "small", "s", 1)
	large := filledTemplate(e, "large", "l", 2)
	sink := testutil.NewSink("alice")
	first, _ := small.Show(sink, nil)
	next, err := first.SwitchTo(large, nil, WithAnimation(anim.Up))
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if next.Animating() {
		t.Fatalf("expected mismatched sizes to cut instantly")
	}
	sched.Advance(5)
	testutil.AssertDump(t, "cut", screen(t, sink, next),
		"l l l l l l l l l",
		"l l l l l l l l l")
}

func TestRejectedSwitchClosesPreviousSurface(t *testing.T) {
	e, _ := newTestEngine()
	closes := 0
	a := NewBuilder(e, "a", 1).Closed(func(*Instance) bool { closes++; return true }).MustBuild()
	b := NewBuilder(e, "b", 1).Opening(func(*Instance) bool { return false }).MustBuild()
	sink := testutil.NewSink("alice")
	first, _ := a.Show(sink, nil)
	if _, err := first.SwitchTo(b, nil, WithAnimation(anim.Right)); !errors.Is(err, ErrTemplateRejectedOpen) {
		t.Fatalf("expected rejected open, got %v", err)
	}
	if closes != 1 || !first.Closed() {
		t.Fatalf("expected the switching instance to be closed once")
	}
	if !slices.Contains(sink.Hidden, first.Surface().ID()) {
		t.Fatalf("expected previous surface to be closed")
	}
	if len(e.Instances()) != 0 {
		t.Fatalf("expected no live instances")
	}
}

func TestTurnPageSlides(t *testing.T) {
	e, sched := newTestEngine()
	tmpl := NewBuilder(e, "pages", 1).
		PageSlots("1-7").
		Opening(func(in *Instance) bool {
			in.SetPagedContent(func() []Item { return numbered(14) })
			return true
		}).
		MustBuild()
	sink := testutil.NewSink("alice")
	in, err := tmpl.Show(sink, nil)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !in.TurnPage(1, anim.Left) {
		t.Fatalf("expected page turn to succeed")
	}
	testutil.AssertDump(t, "frame 0", screen(t, sink, in), "i0 i1 i2 i3 i4 i5 i6 . .")
	sched.Advance(20)
	testutil.AssertDump(t, "page 1", screen(t, sink, in), ". i7 i8 i9 i10 i11 i12 i13 .")
	if in.TurnPage(1, anim.Left) {
		t.Fatalf("expected turn past the last page to fail")
	}
	if in.Page() != 1 {
		t.Fatalf("expected page 1, got %d", in.Page())
	}
}

func TestCloseDuringTransitionStopsWrites(t *testing.T) {
	e, sched := newTestEngine()
	a := filledTemplate(e, "a", "a", 1)
	b := filledTemplate(e, "b", "b", 1)
	sink := testutil.NewSink("alice")
	first, _ := a.Show(sink, nil)
	next, _ := first.SwitchTo(b, nil, WithAnimation(anim.Left))
	next.Close()
	sink.Reset()
	sched.Advance(20)
	if len(sink.Updates) != 0 {
		t.Fatalf("expected no writes after close, got %d", len(sink.Updates))
	}
}

func TestRunEndingWithoutViewerSkipsCopy(t *testing.T) {
	e, sched := newTestEngine()
	a := filledTemplate(e, "a", "a", 1)
	b := filledTemplate(e, "b", "b", 1)
	sink := testutil.NewSink("alice")
	first, _ := a.Show(sink, nil)
	next, err := first.SwitchTo(b, nil, WithAnimation(anim.Left))
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if err := next.SetItem("0", Static(testutil.Cell("z"))); err != nil {
		t.Fatalf("set item failed: %v", err)
	}
	window := next.Surface().(*grid.Window)
	window.Detach()
	sched.Advance(20)
	if next.Animating() {
		t.Fatalf("expected the run to end once the viewer left")
	}
	if got := window.Cell(0).Icon; got != "a" {
		t.Fatalf("expected frame 0 to stay on the surface, got %q", got)
	}
}
