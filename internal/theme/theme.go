package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the console viewer.
type Styles struct {
	Title      *lipgloss.Style
	Cell       *lipgloss.Style
	CellGlow   *lipgloss.Style
	CellEmpty  *lipgloss.Style
	Cursor     *lipgloss.Style
	Amount     *lipgloss.Style
	LoreName   *lipgloss.Style
	Lore       *lipgloss.Style
	Footer     *lipgloss.Style
	Info       *lipgloss.Style
	Error      *lipgloss.Style
	Banner     *lipgloss.Style
	BannerInfo *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Cell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	CellGlow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Background(lipgloss.Color("236")).Bold(true),
	),
	CellEmpty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("234")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Amount: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	),
	LoreName: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Lore: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Banner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	BannerInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
