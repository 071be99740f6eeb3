package menu

import (
	"fmt"
	"sort"

	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/slot"
)

// TitleFunc derives a surface title from the viewer and the open argument.
type TitleFunc func(viewer grid.Viewer, arg any) string

// OpeningFunc prepares a fresh instance. Returning false aborts the open.
type OpeningFunc func(*Instance) bool

// ClosedFunc runs exactly once when an instance goes away. Returning false
// lets the instance's cancel fallback run.
type ClosedFunc func(*Instance) bool

// Template is the immutable definition of one kind of menu. It holds no
// per-viewer state.
type Template struct {
	engine    *Engine
	name      string
	rows      int
	title     TitleFunc
	fixed     map[int]Item
	pageSlots []int
	opening   OpeningFunc
	closed    ClosedFunc
}

func (t *Template) Name() string { return t.name }
func (t *Template) Rows() int    { return t.rows }

// Size returns the number of cells of the template's surfaces.
func (t *Template) Size() int { return t.rows * slot.Columns }

// PageSlots returns the page slots in fill order.
func (t *Template) PageSlots() []int {
	return append([]int(nil), t.pageSlots...)
}

// FixedSlots returns the slots holding fixed items, ascending.
func (t *Template) FixedSlots() []int {
	return sortedKeys(t.fixed)
}

// Show opens a new instance of the template for viewer.
func (t *Template) Show(viewer grid.Viewer, arg any) (*Instance, error) {
	return t.engine.show(t, viewer, arg, nil)
}

type fixedEntry struct {
	expr string
	item Item
}

// Builder assembles a Template. Errors are collected and reported by Build.
type Builder struct {
	engine  *Engine
	name    string
	rows    int
	title   TitleFunc
	fixed   []fixedEntry
	pages   []string
	opening OpeningFunc
	closed  ClosedFunc
}

// NewBuilder starts a template called name with the given number of rows.
// Built templates are registered with engine when it is not nil.
func NewBuilder(engine *Engine, name string, rows int) *Builder {
	return &Builder{engine: engine, name: name, rows: rows}
}

// Title sets a constant title.
func (b *Builder) Title(title string) *Builder {
	b.title = func(grid.Viewer, any) string { return title }
	return b
}

// TitleFunc sets a title derived from the viewer and argument.
func (b *Builder) TitleFunc(fn TitleFunc) *Builder {
	b.title = fn
	return b
}

// Fixed places item on every slot of expr. Later calls override earlier
// ones on the same slot.
func (b *Builder) Fixed(expr string, item Item) *Builder {
	b.fixed = append(b.fixed, fixedEntry{expr: expr, item: item})
	return b
}

// PageSlots reserves the slots of expr for paged content. Pages fill the
// slots in ascending order.
func (b *Builder) PageSlots(expr string) *Builder {
	b.pages = append(b.pages, expr)
	return b
}

func (b *Builder) Opening(fn OpeningFunc) *Builder {
	b.opening = fn
	return b
}

func (b *Builder) Closed(fn ClosedFunc) *Builder {
	b.closed = fn
	return b
}

// Build validates the definition and registers the template.
func (b *Builder) Build() (*Template, error) {
	if b.rows < 1 || b.rows > 6 {
		return nil, fmt.Errorf("template %q: %w (got %d)", b.name, ErrInvalidRows, b.rows)
	}
	size := b.rows * slot.Columns

	pageSet := make(slot.Set)
	for _, expr := range b.pages {
		set, err := slot.Parse(expr, b.rows)
		if err != nil {
			return nil, fmt.Errorf("template %q page slots: %w", b.name, err)
		}
		for s := range set {
			if s < 0 || s >= size {
				return nil, fmt.Errorf("template %q page slot %d: %w", b.name, s, ErrSlotOutOfRange)
			}
			pageSet[s] = struct{}{}
		}
	}

	fixed := make(map[int]Item)
	for _, entry := range b.fixed {
		set, err := slot.Parse(entry.expr, b.rows)
		if err != nil {
			return nil, fmt.Errorf("template %q fixed item: %w", b.name, err)
		}
		for _, s := range set.Sorted() {
			if s < 0 || s >= size {
				return nil, fmt.Errorf("template %q fixed slot %d: %w", b.name, s, ErrSlotOutOfRange)
			}
			if pageSet.Has(s) {
				return nil, fmt.Errorf("template %q slot %d is both fixed and paged: %w", b.name, s, ErrSlotConflict)
			}
			fixed[s] = entry.item
		}
	}

	title := b.title
	if title == nil {
		title = func(grid.Viewer, any) string { return b.name }
	}
	t := &Template{
		engine:    b.engine,
		name:      b.name,
		rows:      b.rows,
		title:     title,
		fixed:     fixed,
		pageSlots: pageSet.Sorted(),
		opening:   b.opening,
		closed:    b.closed,
	}
	if b.engine != nil && b.name != "" {
		if err := b.engine.templates.Register(t); err != nil {
			return nil, err
		}
	}
	events.Template.Register(t.name, t.rows, len(t.fixed), len(t.pageSlots))
	return t, nil
}

// MustBuild is Build for package-level templates; it panics on error.
func (b *Builder) MustBuild() *Template {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func sortedKeys(m map[int]Item) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
