package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	Click      key.Binding
	RightClick key.Binding
	ShiftClick key.Binding
	Close      key.Binding
	Open       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Click:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "click")),
		RightClick: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "right-click")),
		ShiftClick: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shift-click")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help lists the bindings shown in the footer.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Click, k.RightClick, k.ShiftClick, k.Close, k.Open, k.Quit}
}
