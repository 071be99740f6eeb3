package menu

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/atomicstack/gridmenu/internal/anim"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/slot"
	"github.com/atomicstack/gridmenu/internal/state"
)

type lifecycle int

const (
	stateBuilding lifecycle = iota
	stateOpen
	stateClosed
)

// Instance is one viewer's live copy of a template.
//
// The instance keeps a back buffer with the content every cell should show.
// Writes go to the buffer and, unless a transition is drawing on the
// surface, straight through to the surface as well.
type Instance struct {
	id       string
	seq      uint64
	engine   *Engine
	template *Template
	viewer   grid.Viewer
	arg      any

	surface grid.Surface
	fixed   map[int]Item
	pager   *state.Pager[Item]
	content func() []Item
	buf     []grid.Cell
	run     *anim.Run
	holding bool
	state   lifecycle

	onCancel func(*Instance)
}

func newInstance(e *Engine, t *Template, viewer grid.Viewer, arg any) *Instance {
	e.seq++
	fixed := make(map[int]Item, len(t.fixed))
	for s, it := range t.fixed {
		fixed[s] = it
	}
	return &Instance{
		id:       uuid.NewString(),
		seq:      e.seq,
		engine:   e,
		template: t,
		viewer:   viewer,
		arg:      arg,
		fixed:    fixed,
		pager:    state.NewPager[Item](len(t.pageSlots)),
		buf:      make([]grid.Cell, t.Size()),
	}
}

func (in *Instance) ID() string            { return in.id }
func (in *Instance) Template() *Template   { return in.template }
func (in *Instance) Viewer() grid.Viewer   { return in.viewer }
func (in *Instance) Arg() any              { return in.arg }
func (in *Instance) Surface() grid.Surface { return in.surface }
func (in *Instance) Engine() *Engine       { return in.engine }
func (in *Instance) Closed() bool          { return in.state == stateClosed }
func (in *Instance) Animating() bool       { return in.run != nil }
func (in *Instance) Page() int             { return in.pager.Index() }
func (in *Instance) PageCount() int        { return in.pager.Pages() }
func (in *Instance) ItemCount() int        { return in.pager.Count() }

// OnCancel sets the fallback that runs when the closed hook does not report
// the close as handled.
func (in *Instance) OnCancel(fn func(*Instance)) { in.onCancel = fn }

// Cells returns what the instance last decided each cell should show.
func (in *Instance) Cells() []grid.Cell {
	return grid.BufferOf(in.buf).Cells()
}

// SetItem places item on every slot of expr, on top of the template's fixed
// items. Page slots cannot be taken.
func (in *Instance) SetItem(expr string, item Item) error {
	if in.state == stateClosed {
		return fmt.Errorf("set item %q: %w", expr, ErrInstanceClosed)
	}
	set, err := slot.Parse(expr, in.template.rows)
	if err != nil {
		return err
	}
	slots := set.Sorted()
	for _, s := range slots {
		if s < 0 || s >= len(in.buf) {
			return fmt.Errorf("set item slot %d: %w", s, ErrSlotOutOfRange)
		}
		if in.pageIndex(s) >= 0 {
			return fmt.Errorf("set item slot %d: %w", s, ErrSlotConflict)
		}
	}
	for _, s := range slots {
		in.fixed[s] = item
		in.supply(s, item)
	}
	return nil
}

// SetPagedContent stores the content supplier and paginates its output.
func (in *Instance) SetPagedContent(supplier func() []Item) {
	in.content = supplier
	in.Repaginate()
}

// Repaginate re-runs the content supplier, clamps the current page and
// redraws every page slot.
func (in *Instance) Repaginate() {
	if in.state == stateClosed {
		in.stale("repaginate")
		return
	}
	if in.content != nil {
		var items []Item
		if !in.guard("content", func() { items = in.content() }) {
			return
		}
		in.pager.Set(items)
	}
	in.drawPage()
	events.Instance.Page(in.id, in.pager.Index(), in.pager.Pages())
}

// NextPage moves forward one page. It returns false on the last page.
func (in *Instance) NextPage() bool {
	return in.turn(1)
}

// PreviousPage moves back one page. It returns false on the first page.
func (in *Instance) PreviousPage() bool {
	return in.turn(-1)
}

func (in *Instance) turn(delta int) bool {
	if in.state == stateClosed {
		in.stale("page")
		return false
	}
	if !in.pager.Move(delta) {
		return false
	}
	in.drawPage()
	events.Instance.Page(in.id, in.pager.Index(), in.pager.Pages())
	return true
}

// TurnPage moves by delta pages and slides the new page in.
func (in *Instance) TurnPage(delta int, dir anim.Direction) bool {
	if in.state != stateOpen {
		return in.turn(delta)
	}
	in.fastForward()
	src := in.Cells()
	in.holding = true
	moved := in.turn(delta)
	in.holding = false
	if !moved {
		return false
	}
	in.animate(src, dir, nil)
	return true
}

// Redraw re-supplies every fixed or current-page item on the slots of expr.
func (in *Instance) Redraw(expr string) error {
	if in.state == stateClosed {
		return fmt.Errorf("redraw %q: %w", expr, ErrInstanceClosed)
	}
	set, err := slot.Parse(expr, in.template.rows)
	if err != nil {
		return err
	}
	page := in.pager.Current()
	for _, s := range set.Sorted() {
		if it, ok := in.fixed[s]; ok {
			in.supply(s, it)
			continue
		}
		if j := in.pageIndex(s); j >= 0 && j < len(page) {
			in.supply(s, page[j])
		}
	}
	return nil
}

// Close closes the surface and tears the instance down.
func (in *Instance) Close() {
	in.teardown(true)
}

// SwitchOption tunes SwitchTo.
type SwitchOption func(*switchOptions)

type switchOptions struct {
	animate bool
	dir     anim.Direction
	src     []grid.Cell
	prev    grid.Surface
}

// WithAnimation slides the next menu in from the given direction.
func WithAnimation(dir anim.Direction) SwitchOption {
	return func(o *switchOptions) {
		o.animate = true
		o.dir = dir
	}
}

// SwitchTo hands the viewer over to another template. This instance's closed
// hook runs first; the current surface stays visible until the next one is
// ready to be opened.
func (in *Instance) SwitchTo(other *Template, arg any, opts ...SwitchOption) (*Instance, error) {
	if in.state == stateClosed {
		return nil, fmt.Errorf("switch to %q: %w", other.name, ErrInstanceClosed)
	}
	o := &switchOptions{}
	for _, opt := range opts {
		opt(o)
	}
	in.fastForward()
	o.src = in.Cells()
	o.prev = in.surface
	events.Instance.Switch(in.id, in.template.name, other.name, o.animate)
	in.teardown(false)
	return in.engine.show(other, in.viewer, arg, o)
}

func (in *Instance) click(ev *grid.ClickEvent) {
	in.fastForward()
	it, ok := in.fixed[ev.Slot]
	if !ok {
		page := in.pager.Current()
		if j := in.pageIndex(ev.Slot); j >= 0 && j < len(page) {
			it, ok = page[j], true
		}
	}
	if !ok || it.OnClick == nil {
		return
	}
	events.Instance.Click(in.id, ev.Slot, ev.Kind.String())
	in.guard("click", func() { it.OnClick(in, ev) })
}

func (in *Instance) refresh(time int) {
	in.guard("refresh", func() {
		for _, s := range sortedKeys(in.fixed) {
			if it := in.fixed[s]; it.refreshesAt(time) {
				in.supply(s, it)
			}
		}
		for j, it := range in.pager.Current() {
			if it.refreshesAt(time) {
				in.supply(in.template.pageSlots[j], it)
			}
		}
	})
}

func (in *Instance) drawAll() {
	for _, s := range sortedKeys(in.fixed) {
		in.supply(s, in.fixed[s])
	}
	in.drawPage()
}

// drawPage writes the current page and blanks the page slots it leaves
// unused.
func (in *Instance) drawPage() {
	page := in.pager.Current()
	for j, s := range in.template.pageSlots {
		if j < len(page) {
			in.supply(s, page[j])
			continue
		}
		in.write(s, grid.Empty)
	}
}

func (in *Instance) supply(s int, it Item) {
	if it.Supplier == nil {
		in.write(s, grid.Empty)
		return
	}
	var c grid.Cell
	if in.guard("supply", func() { c = it.Supplier(in) }) {
		in.write(s, c)
	}
}

func (in *Instance) write(s int, c grid.Cell) {
	if in.state == stateClosed {
		in.stale("write")
		return
	}
	if s < 0 || s >= len(in.buf) || in.buf[s].Equal(c) {
		return
	}
	in.buf[s] = c
	if in.surface == nil || in.holding || in.run != nil {
		return
	}
	in.surface.SetCell(s, c)
}

// sync copies the back buffer to the surface.
func (in *Instance) sync() {
	if in.state == stateClosed || in.surface == nil {
		return
	}
	for s, c := range in.buf {
		if !in.surface.Cell(s).Equal(c) {
			in.surface.SetCell(s, c)
		}
	}
}

// animate slides from src to the back buffer on the instance's surface.
// ready runs once frame 0 is on the surface.
func (in *Instance) animate(src []grid.Cell, dir anim.Direction, ready func()) {
	run := anim.Start(in.engine.clock, in.surface, src, in.buf, in.template.rows, dir, ready, func() {
		in.run = nil
		if in.surface.Viewers() == 0 {
			return
		}
		in.sync()
	})
	if !run.Done() {
		in.run = run
	}
}

func (in *Instance) fastForward() {
	if in.run != nil {
		in.run.FastForward()
	}
}

func (in *Instance) pageIndex(s int) int {
	return slices.Index(in.template.pageSlots, s)
}

// teardown runs the closed hook exactly once and drops every registration.
func (in *Instance) teardown(closeSurface bool) {
	if in.state == stateClosed {
		return
	}
	wasOpen := in.state == stateOpen
	in.state = stateClosed
	if in.run != nil {
		in.run.Stop()
		in.run = nil
	}
	if wasOpen {
		in.engine.unregister(in)
	}
	if closeSurface && in.surface != nil {
		in.surface.Close()
	}
	consumed := false
	if in.template.closed != nil {
		in.guard("closed", func() { consumed = in.template.closed(in) })
	}
	events.Instance.Close(in.id, in.template.name, consumed)
	if !consumed && in.onCancel != nil {
		in.guard("cancel", func() { in.onCancel(in) })
	}
}

// guard runs fn and recovers a panic so one broken menu cannot stall the
// loop. It reports whether fn returned normally.
func (in *Instance) guard(op string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			events.Instance.Panic(in.id, op, r)
			logging.Error(fmt.Errorf("menu %s: %s panicked: %v", in.template.name, op, r))
		}
	}()
	fn()
	return true
}

func (in *Instance) stale(op string) {
	events.Instance.Stale(in.id, op, ErrStaleInstance)
}
