package ui

import (
	"fmt"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/theme"
	"github.com/atomicstack/gridmenu/internal/ui/command"
	uistate "github.com/atomicstack/gridmenu/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the console viewer.
type Model struct {
	console *Console
	engine  *menu.Engine
	bus     *command.Bus
	menu    string
	keys    keyMap

	frame   Frame
	cursor  uistate.Cursor
	width   int
	height  int
	errMsg  string
	infoMsg string

	handlers map[reflect.Type]msgHandler
}

// NewModel creates the console model. Work against the engine is submitted
// through loop; rootMenu is opened on start and by the open key.
func NewModel(console *Console, loop command.Submitter, engine *menu.Engine, rootMenu string) *Model {
	m := &Model{
		console: console,
		engine:  engine,
		bus:     command.New(loop),
		menu:    rootMenu,
		keys:    defaultKeyMap(),
	}
	m.registerHandlers()
	m.syncFrame()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.console != nil {
		cmds = append(cmds, waitForFrame(m.console))
	}
	if m.menu != "" && !m.frame.Open {
		cmds = append(cmds, m.openCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(consoleDoneMsg{}):    m.handleConsoleDoneMsg,
		reflect.TypeOf(command.Result{}):    m.handleResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.Console.Key(keyMsg.String())
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(keyMsg, m.keys.Home):
		if m.cursor.MoveCursorHome() {
			events.Console.Cursor(m.frame.Window, m.cursor.Slot)
		}
	case key.Matches(keyMsg, m.keys.End):
		if m.cursor.MoveCursorEnd() {
			events.Console.Cursor(m.frame.Window, m.cursor.Slot)
		}
	case key.Matches(keyMsg, m.keys.Click):
		return m.clickCmd(grid.ClickLeft)
	case key.Matches(keyMsg, m.keys.RightClick):
		return m.clickCmd(grid.ClickRight)
	case key.Matches(keyMsg, m.keys.ShiftClick):
		return m.clickCmd(grid.ClickShiftLeft)
	case key.Matches(keyMsg, m.keys.Close):
		return m.closeCmd()
	case key.Matches(keyMsg, m.keys.Open):
		return m.openCmd()
	}
	return nil
}

func (m *Model) moveCursor(dRow, dCol int) {
	if m.cursor.Move(dRow, dCol) {
		events.Console.Cursor(m.frame.Window, m.cursor.Slot)
	}
}

func (m *Model) clickCmd(kind grid.ClickKind) tea.Cmd {
	if !m.frame.Open || m.engine == nil {
		return nil
	}
	window, slot := m.frame.Window, m.cursor.Slot
	events.Console.Click(window, slot, kind.String())
	return m.bus.Execute(command.Request{
		ID:    "click",
		Label: fmt.Sprintf("%s click on slot %d", kind, slot),
		Run: func() error {
			s, ok := m.console.Surface(window)
			if !ok {
				return nil
			}
			m.engine.OnClick(&grid.ClickEvent{Viewer: m.console, Surface: s, Slot: slot, Kind: kind})
			return nil
		},
	})
}

func (m *Model) closeCmd() tea.Cmd {
	if !m.frame.Open || m.engine == nil {
		return nil
	}
	window := m.frame.Window
	return m.bus.Execute(command.Request{
		ID:    "close",
		Label: m.frame.Title,
		Run: func() error {
			if s, ok := m.console.Surface(window); ok {
				m.engine.OnClose(m.console, s)
			}
			return nil
		},
	})
}

func (m *Model) openCmd() tea.Cmd {
	if m.menu == "" || m.engine == nil {
		return nil
	}
	name := m.menu
	return m.bus.Execute(command.Request{
		ID:    "open",
		Label: name,
		Run: func() error {
			_, err := m.engine.ShowByName(name, m.console, nil)
			return err
		},
	})
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.syncFrame()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.infoMsg = ""
		return nil
	}
	m.errMsg = ""
	if !m.frame.Open && m.menu != "" {
		m.infoMsg = fmt.Sprintf("Press o to open %s", m.menu)
	} else {
		m.infoMsg = ""
	}
	return nil
}
