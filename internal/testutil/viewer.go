package testutil

import (
	"github.com/atomicstack/gridmenu/internal/grid"
)

// Viewer is a plain grid.Viewer for tests.
type Viewer struct {
	id   string
	name string
}

// NewViewer returns a viewer whose ID and name are both name.
func NewViewer(name string) *Viewer {
	return &Viewer{id: name, name: name}
}

func (v *Viewer) ID() string   { return v.id }
func (v *Viewer) Name() string { return v.name }

// Update is one recorded SetCell mirrored to a sink.
type Update struct {
	Window int
	Slot   int
	Cell   grid.Cell
}

// Sink records everything a surface pushes to its viewer.
type Sink struct {
	Viewer

	// Gone makes Show fail as if the viewer had disconnected.
	Gone bool

	Shown   []int
	Hidden  []int
	Updates []Update
	Titles  map[int]string
	Screens map[int][]grid.Cell
}

// NewSink returns a recording viewer.
func NewSink(name string) *Sink {
	return &Sink{
		Viewer:  Viewer{id: name, name: name},
		Titles:  make(map[int]string),
		Screens: make(map[int][]grid.Cell),
	}
}

func (s *Sink) Show(surface grid.Surface) error {
	if s.Gone {
		return grid.ErrViewerGone
	}
	s.Shown = append(s.Shown, surface.ID())
	s.Titles[surface.ID()] = surface.Title()
	s.Screens[surface.ID()] = grid.Snapshot(surface)
	return nil
}

func (s *Sink) Update(surface grid.Surface, slot int, c grid.Cell) {
	s.Updates = append(s.Updates, Update{Window: surface.ID(), Slot: slot, Cell: c})
	if screen, ok := s.Screens[surface.ID()]; ok && slot >= 0 && slot < len(screen) {
		screen[slot] = c
	}
}

func (s *Sink) Hide(surface grid.Surface) {
	s.Hidden = append(s.Hidden, surface.ID())
}

// UpdatesFor returns the updates recorded for one slot of one window.
func (s *Sink) UpdatesFor(window, slot int) []Update {
	var out []Update
	for _, u := range s.Updates {
		if u.Window == window && u.Slot == slot {
			out = append(out, u)
		}
	}
	return out
}

// Reset forgets recorded updates.
func (s *Sink) Reset() {
	s.Updates = nil
}
