package command

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gridmenu/internal/logging/events"
)

// Submitter runs functions on the engine loop. clock.Loop implements it.
type Submitter interface {
	Call(ctx context.Context, fn func()) error
}

// Request encapsulates one piece of engine work triggered from the console.
type Request struct {
	ID    string
	Label string
	Run   func() error
}

// Result is delivered to the model once a request ran.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus hands console actions to the engine loop.
type Bus struct {
	loop Submitter
}

// New initialises a command bus submitting to loop.
func New(loop Submitter) *Bus {
	return &Bus{loop: loop}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Console.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil || b.loop == nil {
			events.Console.Skip(req.ID, req.Label)
			return nil
		}
		var runErr error
		if err := b.loop.Call(context.Background(), func() { runErr = req.Run() }); err != nil {
			runErr = err
		}
		events.Console.Result(req.ID, req.Label, runErr)
		return Result{ID: req.ID, Label: req.Label, Err: runErr}
	}
}
