package grid

import (
	"fmt"

	"github.com/atomicstack/gridmenu/internal/slot"
)

// Sink is implemented by viewers that render surfaces somewhere (a socket,
// a terminal). Calls must not block.
type Sink interface {
	Viewer
	Show(s Surface) error
	Update(s Surface, slot int, c Cell)
	Hide(s Surface)
}

// Window is the default Surface. It keeps the cells in memory and mirrors
// every change to its viewer when the viewer is a Sink.
type Window struct {
	id     int
	rows   int
	title  string
	cells  []Cell
	viewer Viewer
	closed bool
}

// NewWindow allocates a surface with blank cells.
func NewWindow(id, rows int, title string) *Window {
	return &Window{
		id:    id,
		rows:  rows,
		title: title,
		cells: make([]Cell, rows*slot.Columns),
	}
}

func (w *Window) ID() int       { return w.id }
func (w *Window) Rows() int     { return w.rows }
func (w *Window) Size() int     { return len(w.cells) }
func (w *Window) Title() string { return w.title }

// Viewer returns the current viewer, if any.
func (w *Window) Viewer() Viewer { return w.viewer }

func (w *Window) Viewers() int {
	if w.viewer == nil {
		return 0
	}
	return 1
}

func (w *Window) Cell(slot int) Cell {
	if slot < 0 || slot >= len(w.cells) {
		return Empty
	}
	return w.cells[slot]
}

func (w *Window) SetCell(slot int, c Cell) {
	if w.closed || slot < 0 || slot >= len(w.cells) {
		return
	}
	w.cells[slot] = c
	if sink, ok := w.viewer.(Sink); ok {
		sink.Update(w, slot, c)
	}
}

func (w *Window) Open(v Viewer) error {
	if w.closed {
		return ErrSurfaceClosed
	}
	if v == nil {
		return fmt.Errorf("open window %d: nil viewer", w.id)
	}
	if w.viewer != nil {
		if w.viewer.ID() == v.ID() {
			return nil
		}
		return ErrSurfaceInUse
	}
	if sink, ok := v.(Sink); ok {
		if err := sink.Show(w); err != nil {
			return err
		}
	}
	w.viewer = v
	return nil
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if sink, ok := w.viewer.(Sink); ok {
		sink.Hide(w)
	}
	w.viewer = nil
}

// Closed reports whether Close has been called.
func (w *Window) Closed() bool { return w.closed }

// Detach drops the viewer without notifying it, used when the viewer itself
// went away.
func (w *Window) Detach() {
	w.viewer = nil
}

// WindowProvider hands out Windows with increasing ids.
type WindowProvider struct {
	next int
}

// NewWindowProvider returns a provider whose first window id is 1.
func NewWindowProvider() *WindowProvider {
	return &WindowProvider{}
}

func (p *WindowProvider) CreateSurface(rows int, title string) (Surface, error) {
	if rows < 1 || rows > 6 {
		return nil, fmt.Errorf("create surface: rows must be within 1..6 (got %d)", rows)
	}
	p.next++
	return NewWindow(p.next, rows, title), nil
}
