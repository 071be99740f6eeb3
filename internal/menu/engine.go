// Package menu implements paged, animated grid menus: immutable templates,
// the per-viewer instances created from them, and the engine that routes
// surface events back to those instances.
//
// Nothing in this package locks. Every call must come from the goroutine
// that advances the engine's clock.
package menu

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging/events"
)

// Engine owns the template registry and every live instance.
type Engine struct {
	provider  grid.Provider
	clock     clock.Clock
	templates *Registry
	refresher *Refresher

	bySurface map[int]*Instance
	byViewer  map[string]*Instance
	live      []*Instance
	seq       uint64
	stopping  bool

	refreshInterval int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRefreshInterval sets how many ticks pass between refresh firings.
func WithRefreshInterval(ticks int) Option {
	return func(e *Engine) {
		if ticks > 0 {
			e.refreshInterval = ticks
		}
	}
}

// NewEngine creates an engine drawing on surfaces from provider and
// scheduling on c. The refresh task is scheduled immediately.
func NewEngine(provider grid.Provider, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		provider:        provider,
		clock:           c,
		templates:       newRegistry(),
		bySurface:       make(map[int]*Instance),
		byViewer:        make(map[string]*Instance),
		refreshInterval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.refresher = newRefresher(c, e.refreshInterval)
	return e
}

func (e *Engine) Clock() clock.Clock      { return e.clock }
func (e *Engine) Refresher() *Refresher   { return e.refresher }
func (e *Engine) Templates() *Registry    { return e.templates }
func (e *Engine) Provider() grid.Provider { return e.provider }

// ShowByName opens the template registered as name.
func (e *Engine) ShowByName(name string, viewer grid.Viewer, arg any) (*Instance, error) {
	t, ok := e.templates.Find(name)
	if !ok {
		return nil, fmt.Errorf("show %q: %w", name, ErrUnknownTemplate)
	}
	return t.Show(viewer, arg)
}

// Instances returns the live instances in creation order.
func (e *Engine) Instances() []*Instance {
	out := append([]*Instance(nil), e.live...)
	slices.SortFunc(out, func(a, b *Instance) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

// Instance finds a live instance by id.
func (e *Engine) Instance(id string) (*Instance, bool) {
	for _, in := range e.live {
		if in.id == id {
			return in, true
		}
	}
	return nil, false
}

// ViewerInstance returns the instance the viewer is looking at.
func (e *Engine) ViewerInstance(viewerID string) (*Instance, bool) {
	in, ok := e.byViewer[viewerID]
	return in, ok
}

// OnClick routes a click to the instance owning the surface. Clicks on
// engine surfaces are always cancelled before any handler runs.
func (e *Engine) OnClick(ev *grid.ClickEvent) {
	if ev == nil || ev.Surface == nil {
		return
	}
	in, ok := e.bySurface[ev.Surface.ID()]
	if !ok {
		return
	}
	ev.Cancel()
	in.click(ev)
}

// OnClose tears down the instance owning the surface.
func (e *Engine) OnClose(viewer grid.Viewer, surface grid.Surface) {
	if surface == nil {
		return
	}
	if in, ok := e.bySurface[surface.ID()]; ok {
		in.teardown(true)
	}
}

type detacher interface {
	Detach()
}

// Disconnect tears down whatever the viewer had open without writing to it.
func (e *Engine) Disconnect(viewer grid.Viewer) {
	in, ok := e.byViewer[viewer.ID()]
	if !ok {
		return
	}
	if d, ok := in.surface.(detacher); ok {
		d.Detach()
	}
	in.teardown(true)
}

// CloseAll closes every live instance, oldest first.
func (e *Engine) CloseAll() {
	for _, in := range e.Instances() {
		in.teardown(true)
	}
}

// Shutdown closes every instance and stops the refresh task. Later calls to
// Show fail with ErrEngineStopped.
func (e *Engine) Shutdown() {
	e.stopping = true
	e.CloseAll()
	e.refresher.stop()
}

// maxReplacements bounds how many menus a closed hook chain may reopen while
// show clears the viewer's current instance.
const maxReplacements = 8

func (e *Engine) show(t *Template, viewer grid.Viewer, arg any, o *switchOptions) (*Instance, error) {
	if o == nil {
		o = &switchOptions{}
	}
	closePrevious := func() {
		if o.prev != nil {
			o.prev.Close()
			o.prev = nil
		}
	}
	if e == nil {
		closePrevious()
		return nil, fmt.Errorf("show %q: template has no engine", t.name)
	}
	if e.stopping {
		closePrevious()
		return nil, fmt.Errorf("show %q: %w", t.name, ErrEngineStopped)
	}
	events.Template.Show(t.name, viewer.Name())

	in := newInstance(e, t, viewer, arg)
	if t.opening != nil {
		accepted := false
		in.guard("opening", func() { accepted = t.opening(in) })
		if !accepted {
			events.Template.Rejected(t.name, viewer.Name())
			closePrevious()
			return nil, fmt.Errorf("show %q: %w", t.name, ErrTemplateRejectedOpen)
		}
	}

	title := t.name
	in.guard("title", func() { title = t.title(viewer, arg) })
	surface, err := e.provider.CreateSurface(t.rows, title)
	if err != nil {
		closePrevious()
		in.teardown(false)
		return nil, fmt.Errorf("show %q: %w", t.name, err)
	}
	in.surface = surface
	in.holding = true
	in.drawAll()
	in.holding = false

	// A closed hook or cancel fallback may open another menu for the same
	// viewer, so keep clearing until the viewer has nothing registered.
	for n := 0; ; n++ {
		current, ok := e.byViewer[viewer.ID()]
		if !ok {
			break
		}
		if n == maxReplacements {
			closePrevious()
			in.teardown(true)
			return nil, fmt.Errorf("show %q: %w", t.name, ErrReplaceLoop)
		}
		current.teardown(true)
	}
	var openErr error
	openSurface := func() {
		closePrevious()
		openErr = surface.Open(viewer)
	}
	if o.animate {
		in.animate(o.src, o.dir, openSurface)
	} else {
		in.sync()
		openSurface()
	}
	if openErr != nil {
		in.teardown(true)
		return nil, fmt.Errorf("show %q: %w", t.name, openErr)
	}

	in.state = stateOpen
	e.register(in)
	events.Instance.Open(in.id, t.name, viewer.Name(), surface.ID())
	return in, nil
}

func (e *Engine) register(in *Instance) {
	e.bySurface[in.surface.ID()] = in
	e.byViewer[in.viewer.ID()] = in
	e.live = append(e.live, in)
	e.refresher.add(in)
}

func (e *Engine) unregister(in *Instance) {
	if e.bySurface[in.surface.ID()] == in {
		delete(e.bySurface, in.surface.ID())
	}
	if e.byViewer[in.viewer.ID()] == in {
		delete(e.byViewer, in.viewer.ID())
	}
	e.live = slices.DeleteFunc(e.live, func(other *Instance) bool { return other == in })
	e.refresher.remove(in)
}
