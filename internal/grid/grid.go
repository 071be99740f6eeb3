// Package grid defines the addressable rows×9 cell surfaces shown to viewers
// and the narrow interfaces the menu engine uses to talk to them.
package grid

import (
	"errors"
	"slices"

	"github.com/atomicstack/gridmenu/internal/slot"
)

var (
	// ErrSurfaceInUse is returned when a surface that already has a viewer is
	// opened for another one.
	ErrSurfaceInUse = errors.New("surface already has a viewer")
	// ErrSurfaceClosed is returned when a closed surface is opened again.
	ErrSurfaceClosed = errors.New("surface closed")
	// ErrViewerGone is returned by sinks whose connection has already ended.
	ErrViewerGone = errors.New("viewer disconnected")
)

// Cell is the content of one grid slot. The engine only copies and compares
// cells; menu code decides what they contain.
type Cell struct {
	Icon   string   `json:"icon,omitempty"`
	Name   string   `json:"name,omitempty"`
	Lore   []string `json:"lore,omitempty"`
	Amount int      `json:"amount,omitempty"`
	Glow   bool     `json:"glow,omitempty"`
}

// Empty is the blank cell.
var Empty Cell

// IsEmpty reports whether the cell renders as nothing.
func (c Cell) IsEmpty() bool {
	return c.Icon == "" && c.Name == "" && len(c.Lore) == 0
}

// Equal compares two cells field by field.
func (c Cell) Equal(o Cell) bool {
	return c.Icon == o.Icon &&
		c.Name == o.Name &&
		c.Amount == o.Amount &&
		c.Glow == o.Glow &&
		slices.Equal(c.Lore, o.Lore)
}

// Clone returns a deep copy of the cell.
func (c Cell) Clone() Cell {
	c.Lore = slices.Clone(c.Lore)
	return c
}

// Viewer is the opaque identity of whoever looks at a surface.
type Viewer interface {
	ID() string
	Name() string
}

// Canvas is anything cells can be written to.
type Canvas interface {
	Size() int
	Cell(slot int) Cell
	SetCell(slot int, c Cell)
}

// Surface is a titled grid owned by at most one viewer at a time.
type Surface interface {
	Canvas
	ID() int
	Rows() int
	Title() string
	Open(v Viewer) error
	Close()
	Viewers() int
}

// Provider creates surfaces.
type Provider interface {
	CreateSurface(rows int, title string) (Surface, error)
}

// Listener receives click and close notifications from surfaces.
type Listener interface {
	OnClick(e *ClickEvent)
	OnClose(v Viewer, s Surface)
}

// Snapshot copies every cell of the canvas.
func Snapshot(c Canvas) []Cell {
	out := make([]Cell, c.Size())
	for i := range out {
		out[i] = c.Cell(i).Clone()
	}
	return out
}

// Buffer is an off-screen canvas.
type Buffer struct {
	cells []Cell
}

// NewBuffer allocates a blank canvas for the given number of rows.
func NewBuffer(rows int) *Buffer {
	return &Buffer{cells: make([]Cell, rows*slot.Columns)}
}

// BufferOf wraps a copy of the provided cells.
func BufferOf(cells []Cell) *Buffer {
	b := &Buffer{cells: make([]Cell, len(cells))}
	for i, c := range cells {
		b.cells[i] = c.Clone()
	}
	return b
}

func (b *Buffer) Size() int { return len(b.cells) }

func (b *Buffer) Cell(slot int) Cell {
	if slot < 0 || slot >= len(b.cells) {
		return Empty
	}
	return b.cells[slot]
}

func (b *Buffer) SetCell(slot int, c Cell) {
	if slot < 0 || slot >= len(b.cells) {
		return
	}
	b.cells[slot] = c
}

// Cells returns a copy of the buffer contents.
func (b *Buffer) Cells() []Cell {
	return Snapshot(b)
}
