// Package anim renders slide transitions between two grid snapshots, one
// frame per clock tick.
package anim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/slot"
)

// ErrMismatchedSize is reported when source and destination differ in size.
// Such runs degrade to an instant cut.
var ErrMismatchedSize = errors.New("mismatched surface size")

// Direction is the way the destination grid slides in.
type Direction int

const (
	// Up moves content upwards; the destination enters from the bottom.
	Up Direction = iota
	// Down moves content downwards; the destination enters from the top.
	Down
	// Left moves content leftwards; the destination enters from the right.
	Left
	// Right moves content rightwards; the destination enters from the left.
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return 0, false
}

// Horizontal reports whether the slide moves columns.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Frames returns the number of frames a slide takes on a grid of rows rows.
func (d Direction) Frames(rows int) int {
	if d.Horizontal() {
		return slot.Columns
	}
	return rows
}

// Target is the grid a run draws on.
type Target interface {
	grid.Canvas
	Viewers() int
}

// Run is one transition in flight. All methods must be called from the
// clock's goroutine.
type Run struct {
	clock  clock.Clock
	target Target
	src    []grid.Cell
	dst    []grid.Cell
	rows   int
	dir    Direction
	frames int
	frame  int
	ready  func()
	done   func()
	task   clock.Task
	ended  bool
}

// Start draws frame 0 on target, calls ready, and schedules the remaining
// frames one tick apart. The snapshots are copied. When the sizes of src,
// dst and target disagree the run writes dst at once and calls ready then
// done.
func Start(c clock.Clock, target Target, src, dst []grid.Cell, rows int, dir Direction, ready, done func()) *Run {
	r := &Run{
		clock:  c,
		target: target,
		src:    grid.BufferOf(src).Cells(),
		dst:    grid.BufferOf(dst).Cells(),
		rows:   rows,
		dir:    dir,
		frames: dir.Frames(rows),
		ready:  ready,
		done:   done,
	}
	if len(r.src) != len(r.dst) || len(r.dst) != target.Size() || rows*slot.Columns != len(r.dst) || r.frames < 1 {
		events.Anim.Cut(fmt.Errorf("%w: %d -> %d cells on %d", ErrMismatchedSize, len(r.src), len(r.dst), target.Size()))
		r.writeDestination()
		r.frame = r.frames
		r.fire(r.ready)
		r.finish("cut")
		return r
	}
	events.Anim.Start(dir.String(), r.frames, len(r.dst))
	r.draw(0)
	r.frame = 1
	r.fire(r.ready)
	r.advance()
	return r
}

// Direction returns the slide direction.
func (r *Run) Direction() Direction { return r.dir }

// Frames returns the total number of frames of the run.
func (r *Run) Frames() int { return r.frames }

// Frame returns how many frames have been drawn so far.
func (r *Run) Frame() int { return r.frame }

// Done reports whether the run has ended.
func (r *Run) Done() bool { return r.ended }

// FastForward writes the whole destination and ends the run.
func (r *Run) FastForward() {
	if r.ended {
		return
	}
	r.cancel()
	r.writeDestination()
	r.frame = r.frames
	r.finish("fast-forward")
}

// Stop ends the run without touching the target.
func (r *Run) Stop() {
	if r.ended {
		return
	}
	r.cancel()
	r.finish("stopped")
}

func (r *Run) advance() {
	if r.ended {
		return
	}
	if r.frame >= r.frames {
		r.finish("complete")
		return
	}
	if r.target.Viewers() == 0 {
		r.finish("no viewer")
		return
	}
	r.task = r.clock.ScheduleOnce(1, r.step)
}

func (r *Run) step() {
	r.task = nil
	if r.ended {
		return
	}
	if r.target.Viewers() == 0 {
		r.finish("no viewer")
		return
	}
	r.draw(r.frame)
	r.frame++
	r.advance()
}

func (r *Run) cancel() {
	if r.task != nil {
		r.task.Cancel()
		r.task = nil
	}
}

func (r *Run) finish(reason string) {
	r.ended = true
	events.Anim.Done(r.dir.String(), r.frame, reason)
	r.fire(r.done)
}

func (r *Run) fire(fn func()) {
	if fn != nil {
		fn()
	}
}

func (r *Run) writeDestination() {
	if len(r.dst) != r.target.Size() {
		return
	}
	for i, c := range r.dst {
		r.put(i, c)
	}
}

// draw renders frame f. After frame f, f+1 columns (or rows) of the
// destination have slid in.
func (r *Run) draw(f int) {
	settled := f + 1
	for i := range r.dst {
		row, col := i/slot.Columns, i%slot.Columns
		r.put(i, r.pick(row, col, settled))
	}
}

func (r *Run) pick(row, col, settled int) grid.Cell {
	at := func(cells []grid.Cell, row, col int) grid.Cell {
		return cells[row*slot.Columns+col]
	}
	switch r.dir {
	case Left:
		if col < slot.Columns-settled {
			return at(r.src, row, col+settled)
		}
		return at(r.dst, row, col-(slot.Columns-settled))
	case Right:
		if col < settled {
			return at(r.dst, row, col+slot.Columns-settled)
		}
		return at(r.src, row, col-settled)
	case Up:
		if row < r.rows-settled {
			return at(r.src, row+settled, col)
		}
		return at(r.dst, row-(r.rows-settled), col)
	default:
		if row < settled {
			return at(r.dst, row+r.rows-settled, col)
		}
		return at(r.src, row-settled, col)
	}
}

// put skips cells that already show the wanted content.
func (r *Run) put(i int, c grid.Cell) {
	if r.target.Cell(i).Equal(c) {
		return
	}
	r.target.SetCell(i, c)
}
