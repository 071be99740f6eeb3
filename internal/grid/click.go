package grid

import "strings"

// ClickKind identifies the mouse/key combination behind a click.
type ClickKind int

const (
	ClickLeft ClickKind = iota
	ClickRight
	ClickShiftLeft
	ClickShiftRight
	ClickMiddle
	ClickDrop
	ClickNumberKey
)

var clickKindNames = map[ClickKind]string{
	ClickLeft:       "left",
	ClickRight:      "right",
	ClickShiftLeft:  "shift-left",
	ClickShiftRight: "shift-right",
	ClickMiddle:     "middle",
	ClickDrop:       "drop",
	ClickNumberKey:  "number-key",
}

func (k ClickKind) String() string {
	if name, ok := clickKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsShift reports whether the click was made with shift held.
func (k ClickKind) IsShift() bool {
	return k == ClickShiftLeft || k == ClickShiftRight
}

// ParseClickKind maps a wire name back to a ClickKind. Unknown names fall
// back to a left click.
func ParseClickKind(name string) ClickKind {
	lower := strings.ToLower(strings.TrimSpace(name))
	for kind, n := range clickKindNames {
		if n == lower {
			return kind
		}
	}
	return ClickLeft
}

// ClickEvent is a single click on a surface. Listeners call Cancel to stop
// the host from applying its own effect to the grid.
type ClickEvent struct {
	Viewer  Viewer
	Surface Surface
	Slot    int
	Kind    ClickKind

	cancelled bool
}

// Cancel marks the click as handled by the engine.
func (e *ClickEvent) Cancel() {
	e.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (e *ClickEvent) Cancelled() bool {
	return e.cancelled
}
