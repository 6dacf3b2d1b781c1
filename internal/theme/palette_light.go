package theme

import "github.com/overtone-dev/overtone/internal/tokens"

// Light is the baseline light palette.
var Light = New("light", map[tokens.Token]tokens.Color{
	tokens.EditorBackground:          "#ffffff",
	tokens.EditorForeground:          "#000000",
	tokens.EditorLineHighlight:       "#f3f3f3",
	tokens.EditorSelectionBackground: "#add6ff",
	tokens.EditorCursorForeground:    "#000000",

	tokens.TabActiveBackground:   "#ffffff",
	tokens.TabActiveForeground:   "#333333",
	tokens.TabInactiveBackground: "#ececec",
	tokens.TabInactiveForeground: "#6f6f6f",
	tokens.TabBorder:             "#f3f3f3",

	tokens.PanelBackground:      "#ffffff",
	tokens.PanelBorder:          "#c8c8c8",
	tokens.PanelTitleForeground: "#424242",
	tokens.SideBarBackground:    "#f3f3f3",
	tokens.SideBarForeground:    "#616161",

	tokens.StatusBarBackground:      "#007acc",
	tokens.StatusBarForeground:      "#ffffff",
	tokens.StatusBarErrorBackground: "#c72e0f",

	tokens.ButtonBackground:      "#007acc",
	tokens.ButtonForeground:      "#ffffff",
	tokens.ButtonHoverBackground: "#0062a3",
	tokens.InputBackground:       "#ffffff",
	tokens.InputForeground:       "#616161",
	tokens.InputBorder:           "#cecece",
	tokens.FocusBorder:           "#0090f1",

	tokens.ListActiveSelectionBackground: "#0060c0",
	tokens.ListActiveSelectionForeground: "#ffffff",
	tokens.ListHoverBackground:           "#e8e8e8",
	tokens.ListHighlightForeground:       "#0066bf",
})
