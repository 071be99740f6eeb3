// Package ui contains the Bubble Tea program that shows grid menus in a
// terminal. The Console type is a grid.Sink: the engine pushes surfaces into
// it from the engine loop and the Model renders the latest frame.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses move a cursor over the grid (internal/ui/state.Cursor).
//     Clicks, closes and opens become command.Requests; the command bus runs
//     them on the engine loop and reports a command.Result back.
//   - waitForFrame blocks on the console's change signal. Every frameMsg pulls
//     a fresh snapshot and re-arms the wait, so rendering never touches engine
//     state directly.
package ui
