// Package tui renders a live preview of the resolved theme state.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/overtone-dev/overtone/internal/tokens"
)

// Styles contains lipgloss styles derived from resolved token values.
type Styles struct {
	Editor      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Panel       lipgloss.Style
	SideBar     lipgloss.Style
	StatusBar   lipgloss.Style
	Button      lipgloss.Style
	Input       lipgloss.Style
	Selection   lipgloss.Style
	Muted       lipgloss.Style
	Title       lipgloss.Style
}

// BuildStyles converts a resolved value map into lipgloss styles.
func BuildStyles(values map[tokens.Token]tokens.Color) Styles {
	fg := func(t tokens.Token) lipgloss.Color { return lipgloss.Color(values[t]) }

	return Styles{
		Editor:      lipgloss.NewStyle().Foreground(fg(tokens.EditorForeground)).Background(fg(tokens.EditorBackground)),
		TabActive:   lipgloss.NewStyle().Foreground(fg(tokens.TabActiveForeground)).Background(fg(tokens.TabActiveBackground)).Bold(true),
		TabInactive: lipgloss.NewStyle().Foreground(fg(tokens.TabInactiveForeground)).Background(fg(tokens.TabInactiveBackground)),
		Panel:       lipgloss.NewStyle().Foreground(fg(tokens.PanelTitleForeground)).Background(fg(tokens.PanelBackground)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(fg(tokens.PanelBorder)),
		SideBar:     lipgloss.NewStyle().Foreground(fg(tokens.SideBarForeground)).Background(fg(tokens.SideBarBackground)),
		StatusBar:   lipgloss.NewStyle().Foreground(fg(tokens.StatusBarForeground)).Background(fg(tokens.StatusBarBackground)),
		Button:      lipgloss.NewStyle().Foreground(fg(tokens.ButtonForeground)).Background(fg(tokens.ButtonBackground)).Padding(0, 1),
		Input:       lipgloss.NewStyle().Foreground(fg(tokens.InputForeground)).Background(fg(tokens.InputBackground)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(fg(tokens.InputBorder)),
		Selection:   lipgloss.NewStyle().Foreground(fg(tokens.ListActiveSelectionForeground)).Background(fg(tokens.ListActiveSelectionBackground)),
		Muted:       lipgloss.NewStyle().Foreground(fg(tokens.TabInactiveForeground)),
		Title:       lipgloss.NewStyle().Foreground(fg(tokens.PanelTitleForeground)).Bold(true),
	}
}
