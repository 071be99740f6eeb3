package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/slot"
)

const (
	defaultCellWidth = 10
	minCellWidth     = 4
	maxCellWidth     = 16
	emptyLabel       = "·"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if !m.frame.Open {
		b.WriteString(styles.Info.Render("No menu open."))
		b.WriteString("\n")
		if m.errMsg != "" {
			b.WriteString(styles.Error.Render(m.errMsg))
			b.WriteString("\n")
		}
		if m.infoMsg != "" {
			b.WriteString(styles.Info.Render(m.infoMsg))
			b.WriteString("\n")
		}
		b.WriteString(m.footer())
		return b.String()
	}

	b.WriteString(styles.Title.Render(m.frame.Title))
	b.WriteString("\n")
	width := m.cellWidth()
	for row := 0; row < m.frame.Rows; row++ {
		parts := make([]string, 0, slot.Columns)
		for col := 0; col < slot.Columns; col++ {
			s := row*slot.Columns + col
			parts = append(parts, m.renderCell(s, width))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, line := range m.detailLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) cellWidth() int {
	if m.width <= 0 {
		return defaultCellWidth
	}
	w := (m.width - (slot.Columns - 1)) / slot.Columns
	if w < minCellWidth {
		return minCellWidth
	}
	if w > maxCellWidth {
		return maxCellWidth
	}
	return w
}

func cellLabel(c grid.Cell) string {
	label := strings.TrimSpace(c.Name)
	if label == "" {
		label = strings.TrimSpace(c.Icon)
	}
	if label == "" {
		return emptyLabel
	}
	if c.Amount > 1 {
		label = fmt.Sprintf("%s x%d", label, c.Amount)
	}
	return label
}

func (m *Model) renderCell(s, width int) string {
	c := grid.Empty
	if s < len(m.frame.Cells) {
		c = m.frame.Cells[s]
	}
	label := truncate.StringWithTail(cellLabel(c), uint(width), "…")
	if pad := width - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	style := styles.Cell
	switch {
	case s == m.cursor.Slot:
		style = styles.Cursor
	case c.IsEmpty():
		style = styles.CellEmpty
	case c.Glow:
		style = styles.CellGlow
	}
	return style.Render(label)
}

// detailLines describes the cell under the cursor.
func (m *Model) detailLines() []string {
	if m.cursor.Slot >= len(m.frame.Cells) {
		return nil
	}
	c := m.frame.Cells[m.cursor.Slot]
	if c.IsEmpty() {
		return []string{styles.Footer.Render(fmt.Sprintf("slot %d: empty", m.cursor.Slot))}
	}
	name := c.Name
	if strings.TrimSpace(name) == "" {
		name = c.Icon
	}
	head := styles.LoreName.Render(name)
	if c.Amount > 1 {
		head += " " + styles.Amount.Render(fmt.Sprintf("x%d", c.Amount))
	}
	lines := []string{head}
	for _, l := range c.Lore {
		lines = append(lines, styles.Lore.Render(l))
	}
	return lines
}

func (m *Model) footer() string {
	parts := make([]string, 0, 8)
	for _, binding := range m.keys.help() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	line := strings.Join(parts, " • ")
	if m.width > 0 {
		line = truncate.StringWithTail(line, uint(m.width), "…")
	}
	return styles.Footer.Render(line)
}
