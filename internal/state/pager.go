package state

// Pager chunks an ordered item list into pages of a fixed slot count and
// tracks the current page. Page 0 always exists, even with no items.
type Pager[T any] struct {
	slots int
	items []T
	index int
}

// NewPager returns an empty pager for the given number of slots per page.
func NewPager[T any](slots int) *Pager[T] {
	if slots < 0 {
		slots = 0
	}
	return &Pager[T]{slots: slots}
}

// Slots returns the page size.
func (p *Pager[T]) Slots() int { return p.slots }

// Count returns the number of items.
func (p *Pager[T]) Count() int { return len(p.items) }

// Index returns the zero-based current page.
func (p *Pager[T]) Index() int { return p.index }

// Pages returns ceil(items/slots), never less than one.
func (p *Pager[T]) Pages() int {
	if p.slots == 0 || len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + p.slots - 1) / p.slots
}

// Set replaces the items and clamps the current page into range. It reports
// whether the current page had to move.
func (p *Pager[T]) Set(items []T) bool {
	p.items = cloneItems(items)
	return p.clamp()
}

func (p *Pager[T]) clamp() bool {
	old := p.index
	if last := p.Pages() - 1; p.index > last {
		p.index = last
	}
	if p.index < 0 {
		p.index = 0
	}
	return old != p.index
}

// Next moves to the following page. It returns false on the last page.
func (p *Pager[T]) Next() bool {
	if p.index >= p.Pages()-1 {
		return false
	}
	p.index++
	return true
}

// Previous moves to the preceding page. It returns false on the first page.
func (p *Pager[T]) Previous() bool {
	if p.index <= 0 {
		return false
	}
	p.index--
	return true
}

// Move shifts the current page by delta without wrapping.
func (p *Pager[T]) Move(delta int) bool {
	return p.SetIndex(p.index + delta)
}

// SetIndex jumps to page i if it exists.
func (p *Pager[T]) SetIndex(i int) bool {
	if i < 0 || i >= p.Pages() || i == p.index {
		return false
	}
	p.index = i
	return true
}

// Page returns the items of page i; the j-th element belongs in the j-th
// page slot. Pages past the end are empty.
func (p *Pager[T]) Page(i int) []T {
	if p.slots == 0 || i < 0 {
		return nil
	}
	start := i * p.slots
	if start >= len(p.items) {
		return nil
	}
	end := start + p.slots
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// Current returns the items of the current page.
func (p *Pager[T]) Current() []T {
	return p.Page(p.index)
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
