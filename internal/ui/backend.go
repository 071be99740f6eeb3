package ui

import tea "github.com/charmbracelet/bubbletea"

func waitForFrame(c *Console) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-c.Changed():
			return frameMsg{}
		case <-c.Done():
			return consoleDoneMsg{}
		}
	}
}

type frameMsg struct{}

type consoleDoneMsg struct{}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	m.syncFrame()
	if m.console != nil {
		return waitForFrame(m.console)
	}
	return nil
}

func (m *Model) handleConsoleDoneMsg(msg tea.Msg) tea.Cmd {
	return tea.Quit
}

// syncFrame pulls the latest frame and keeps the cursor inside it.
func (m *Model) syncFrame() {
	if m.console == nil {
		return
	}
	next := m.console.Snapshot()
	if next.Window != m.frame.Window {
		m.errMsg = ""
	}
	m.frame = next
	m.cursor.Resize(next.Rows)
}
