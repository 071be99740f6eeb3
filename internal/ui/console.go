package ui

import (
	"sync"

	"github.com/atomicstack/gridmenu/internal/grid"
)

// Frame is a copy of what the console currently shows.
type Frame struct {
	Open   bool
	Window int
	Title  string
	Rows   int
	Cells  []grid.Cell
}

// Console is the terminal viewer. Sink methods run on the engine loop; the
// Bubble Tea program reads frames from its own goroutine.
type Console struct {
	id   string
	name string

	mu      sync.Mutex
	surface grid.Surface
	frame   Frame
	closed  bool

	changed chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewConsole creates a console viewer called name.
func NewConsole(name string) *Console {
	return &Console{
		id:      "console:" + name,
		name:    name,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (c *Console) ID() string   { return c.id }
func (c *Console) Name() string { return c.name }

func (c *Console) Show(s grid.Surface) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return grid.ErrViewerGone
	}
	c.surface = s
	c.frame = Frame{Open: true, Window: s.ID(), Title: s.Title(), Rows: s.Rows(), Cells: grid.Snapshot(s)}
	c.mu.Unlock()
	c.signal()
	return nil
}

func (c *Console) Update(s grid.Surface, slot int, cell grid.Cell) {
	c.mu.Lock()
	if !c.frame.Open || c.frame.Window != s.ID() || slot < 0 || slot >= len(c.frame.Cells) {
		c.mu.Unlock()
		return
	}
	c.frame.Cells[slot] = cell.Clone()
	c.mu.Unlock()
	c.signal()
}

func (c *Console) Hide(s grid.Surface) {
	c.mu.Lock()
	if c.frame.Window != s.ID() {
		c.mu.Unlock()
		return
	}
	c.surface = nil
	c.frame = Frame{}
	c.mu.Unlock()
	c.signal()
}

// Snapshot copies the current frame.
func (c *Console) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.frame
	f.Cells = grid.BufferOf(c.frame.Cells).Cells()
	return f
}

// Surface returns the open surface if its window id matches.
func (c *Console) Surface(window int) (grid.Surface, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || c.surface.ID() != window {
		return nil, false
	}
	return c.surface, true
}

// Changed fires after the frame changed. Bursts collapse into one signal.
func (c *Console) Changed() <-chan struct{} { return c.changed }

// Done is closed once the console stops accepting surfaces.
func (c *Console) Done() <-chan struct{} { return c.done }

// Close stops the console. Later Show calls fail with grid.ErrViewerGone.
func (c *Console) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *Console) signal() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}
