// Package tokens defines the closed namespace of themeable design tokens.
package tokens

// Token is a stable string key naming one themeable visual property.
type Token string

// Color is a hex color value such as "#1e1e1e".
type Color string

// Category groups tokens for listing and browsing.
type Category string

// Token categories.
const (
	CategoryEditor    Category = "editor"
	CategoryTabs      Category = "tabs"
	CategoryPanels    Category = "panels"
	CategoryStatusBar Category = "statusBar"
	CategoryControls  Category = "controls"
	CategoryLists     Category = "lists"
)

// Editor tokens.
const (
	EditorBackground          Token = "editor.background"
	EditorForeground          Token = "editor.foreground"
	EditorLineHighlight       Token = "editor.lineHighlightBackground"
	EditorSelectionBackground Token = "editor.selectionBackground"
	EditorCursorForeground    Token = "editorCursor.foreground"
)

// Tab tokens.
const (
	TabActiveBackground   Token = "tab.activeBackground"
	TabActiveForeground   Token = "tab.activeForeground"
	TabInactiveBackground Token = "tab.inactiveBackground"
	TabInactiveForeground Token = "tab.inactiveForeground"
	TabBorder             Token = "tab.border"
)

// Panel tokens.
const (
	PanelBackground      Token = "panel.background"
	PanelBorder          Token = "panel.border"
	PanelTitleForeground Token = "panelTitle.activeForeground"
	SideBarBackground    Token = "sideBar.background"
	SideBarForeground    Token = "sideBar.foreground"
)

// Status bar tokens.
const (
	StatusBarBackground      Token = "statusBar.background"
	StatusBarForeground      Token = "statusBar.foreground"
	StatusBarErrorBackground Token = "statusBar.errorBackground"
)

// Control tokens.
const (
	ButtonBackground      Token = "button.background"
	ButtonForeground      Token = "button.foreground"
	ButtonHoverBackground Token = "button.hoverBackground"
	InputBackground       Token = "input.background"
	InputForeground       Token = "input.foreground"
	InputBorder           Token = "input.border"
	FocusBorder           Token = "focusBorder"
)

// List tokens.
const (
	ListActiveSelectionBackground Token = "list.activeSelectionBackground"
	ListActiveSelectionForeground Token = "list.activeSelectionForeground"
	ListHoverBackground           Token = "list.hoverBackground"
	ListHighlightForeground       Token = "list.highlightForeground"
)

// Definition describes one registered token.
type Definition struct {
	Key      Token
	Category Category
	Default  Color
}

// builtinDefinitions is the canonical token table. Order is the stable
// enumeration order: grouped by category, fixed within each group.
var builtinDefinitions = []Definition{
	{EditorBackground, CategoryEditor, "#0b0f14"},
	{EditorForeground, CategoryEditor, "#e6edf3"},
	{EditorLineHighlight, CategoryEditor, "#121821"},
	{EditorSelectionBackground, CategoryEditor, "#223043"},
	{EditorCursorForeground, CategoryEditor, "#7aa2f7"},

	{TabActiveBackground, CategoryTabs, "#121821"},
	{TabActiveForeground, CategoryTabs, "#e6edf3"},
	{TabInactiveBackground, CategoryTabs, "#0b0f14"},
	{TabInactiveForeground, CategoryTabs, "#8b9aae"},
	{TabBorder, CategoryTabs, "#223043"},

	{PanelBackground, CategoryPanels, "#0b0f14"},
	{PanelBorder, CategoryPanels, "#223043"},
	{PanelTitleForeground, CategoryPanels, "#e6edf3"},
	{SideBarBackground, CategoryPanels, "#0e131a"},
	{SideBarForeground, CategoryPanels, "#c9d4e0"},

	{StatusBarBackground, CategoryStatusBar, "#121821"},
	{StatusBarForeground, CategoryStatusBar, "#8b9aae"},
	{StatusBarErrorBackground, CategoryStatusBar, "#f85149"},

	{ButtonBackground, CategoryControls, "#5b8def"},
	{ButtonForeground, CategoryControls, "#0b0f14"},
	{ButtonHoverBackground, CategoryControls, "#7aa2f7"},
	{InputBackground, CategoryControls, "#121821"},
	{InputForeground, CategoryControls, "#e6edf3"},
	{InputBorder, CategoryControls, "#223043"},
	{FocusBorder, CategoryControls, "#7aa2f7"},

	{ListActiveSelectionBackground, CategoryLists, "#223043"},
	{ListActiveSelectionForeground, CategoryLists, "#e6edf3"},
	{ListHoverBackground, CategoryLists, "#121821"},
	{ListHighlightForeground, CategoryLists, "#5b8def"},
}
