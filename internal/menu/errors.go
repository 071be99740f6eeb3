package menu

import "errors"

var (
	// ErrTemplateRejectedOpen is returned by Show when the opening hook
	// declined to open. Nothing was created or registered.
	ErrTemplateRejectedOpen = errors.New("template rejected open")
	// ErrInstanceClosed is returned by operations on a closed instance.
	ErrInstanceClosed = errors.New("instance closed")
	// ErrStaleInstance is traced when a write reaches a closed instance.
	ErrStaleInstance = errors.New("write to closed instance")
	// ErrUnknownTemplate is returned when no template has the given name.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrEngineStopped is returned by Show once the engine began shutting down.
	ErrEngineStopped = errors.New("engine stopped")
	// ErrDuplicateTemplate is returned when a template name is registered twice.
	ErrDuplicateTemplate = errors.New("template already registered")
	// ErrReplaceLoop is returned by Show when closing the viewer's current
	// menu keeps opening new ones for the same viewer.
	ErrReplaceLoop = errors.New("closed hooks kept reopening menus for the viewer")
	// ErrSlotOutOfRange is returned by Build and SetItem for a slot outside
	// the grid.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrSlotConflict is returned when a fixed item lands on a page slot.
	ErrSlotConflict = errors.New("slot conflict")
	// ErrInvalidRows is returned by Build for grids outside 1..6 rows.
	ErrInvalidRows = errors.New("rows must be within 1..6")
)
