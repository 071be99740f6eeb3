package menu

import "github.com/atomicstack/gridmenu/internal/grid"

// Item describes one cell: what it shows, what a click does and, when
// Refresh is positive, the period in ticks at which the clock redraws it.
// The same shape is used for fixed and paged cells.
type Item struct {
	Supplier func(*Instance) grid.Cell
	OnClick  func(*Instance, *grid.ClickEvent)
	Refresh  int
}

// Static returns an item that always shows c.
func Static(c grid.Cell) Item {
	return Item{Supplier: func(*Instance) grid.Cell { return c }}
}

// Button returns an item showing c that runs fn on click.
func Button(c grid.Cell, fn func(*Instance, *grid.ClickEvent)) Item {
	return Item{Supplier: func(*Instance) grid.Cell { return c }, OnClick: fn}
}

func (it Item) refreshesAt(time int) bool {
	return it.Refresh > 0 && time%it.Refresh == 0
}
