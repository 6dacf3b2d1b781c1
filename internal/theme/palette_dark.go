package theme

import "github.com/overtone-dev/overtone/internal/tokens"

// Dark is the baseline dark palette.
var Dark = New("dark", map[tokens.Token]tokens.Color{
	tokens.EditorBackground:          "#1e1e1e",
	tokens.EditorForeground:          "#d4d4d4",
	tokens.EditorLineHighlight:       "#2a2d2e",
	tokens.EditorSelectionBackground: "#264f78",
	tokens.EditorCursorForeground:    "#aeafad",

	tokens.TabActiveBackground:   "#1e1e1e",
	tokens.TabActiveForeground:   "#ffffff",
	tokens.TabInactiveBackground: "#2d2d2d",
	tokens.TabInactiveForeground: "#969696",
	tokens.TabBorder:             "#252526",

	tokens.PanelBackground:      "#1e1e1e",
	tokens.PanelBorder:          "#414141",
	tokens.PanelTitleForeground: "#e7e7e7",
	tokens.SideBarBackground:    "#252526",
	tokens.SideBarForeground:    "#cccccc",

	tokens.StatusBarBackground:      "#007acc",
	tokens.StatusBarForeground:      "#ffffff",
	tokens.StatusBarErrorBackground: "#c72e0f",

	tokens.ButtonBackground:      "#0e639c",
	tokens.ButtonForeground:      "#ffffff",
	tokens.ButtonHoverBackground: "#1177bb",
	tokens.InputBackground:       "#3c3c3c",
	tokens.InputForeground:       "#cccccc",
	tokens.InputBorder:           "#3c3c3c",
	tokens.FocusBorder:           "#007fd4",

	tokens.ListActiveSelectionBackground: "#094771",
	tokens.ListActiveSelectionForeground: "#ffffff",
	tokens.ListHoverBackground:           "#2a2d2e",
	tokens.ListHighlightForeground:       "#18a3ff",
})
