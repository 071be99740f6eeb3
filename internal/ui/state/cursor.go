package state

import "github.com/atomicstack/gridmenu/internal/slot"

// Cursor tracks the highlighted slot of a rows×9 grid.
type Cursor struct {
	Slot int
	Rows int
}

// NewCursor returns a cursor on slot 0 of a grid with the given rows.
func NewCursor(rows int) Cursor {
	return Cursor{Rows: rows}
}

func (c *Cursor) size() int {
	if c.Rows <= 0 {
		return 0
	}
	return c.Rows * slot.Columns
}

// Row returns the cursor's row.
func (c *Cursor) Row() int { return c.Slot / slot.Columns }

// Col returns the cursor's column.
func (c *Cursor) Col() int { return c.Slot % slot.Columns }

// Resize changes the grid height and keeps the cursor inside it.
func (c *Cursor) Resize(rows int) bool {
	old := c.Slot
	c.Rows = rows
	c.clamp()
	return old != c.Slot
}

// MoveCursorHome moves the cursor to the first slot.
func (c *Cursor) MoveCursorHome() bool {
	old := c.Slot
	c.Slot = 0
	return old != c.Slot
}

// MoveCursorEnd moves the cursor to the last slot.
func (c *Cursor) MoveCursorEnd() bool {
	old := c.Slot
	c.Slot = c.size() - 1
	c.clamp()
	return old != c.Slot
}

// Move shifts the cursor by whole rows and columns. Moves stop at the grid
// edges rather than wrapping.
func (c *Cursor) Move(dRow, dCol int) bool {
	if c.size() == 0 {
		c.Slot = 0
		return false
	}
	row := clampInt(c.Row()+dRow, 0, c.Rows-1)
	col := clampInt(c.Col()+dCol, 0, slot.Columns-1)
	old := c.Slot
	c.Slot = row*slot.Columns + col
	return old != c.Slot
}

func (c *Cursor) clamp() {
	c.Slot = clampInt(c.Slot, 0, c.size()-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
