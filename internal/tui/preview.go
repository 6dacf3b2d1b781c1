package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/overtone-dev/overtone/internal/manager"
	"github.com/overtone-dev/overtone/internal/theme"
	"github.com/overtone-dev/overtone/internal/tokens"
)

// Run launches the swatch preview. The program subscribes to the manager
// and re-resolves every token whenever any layer changes.
func Run(mgr *manager.Manager) error {
	program := tea.NewProgram(initialModel(mgr), tea.WithAltScreen())

	notifier := &programNotifier{program: program}
	sub := mgr.Subscribe(notifier)
	defer sub.Cancel()

	_, err := program.Run()
	return err
}

// programNotifier bridges broadcaster signals into bubbletea messages.
type programNotifier struct {
	program *tea.Program
}

func (n *programNotifier) ThemeChanged() {
	n.program.Send(themeChangedMsg{})
}

type themeChangedMsg struct{}

type model struct {
	mgr    *manager.Manager
	values map[tokens.Token]tokens.Color
	themes []string
	cursor int
	width  int
	err    error
}

func initialModel(mgr *manager.Manager) model {
	m := model{mgr: mgr, themes: theme.Names()}
	for i, name := range m.themes {
		if name == mgr.ActiveTheme().Name() {
			m.cursor = i
		}
	}
	m.refresh()
	return m
}

func (m *model) refresh() {
	values, err := m.mgr.EffectiveValues()
	if err != nil {
		m.err = err
		return
	}
	m.values = values
	m.err = nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			m.cursor = (m.cursor + 1) % len(m.themes)
			if err := m.mgr.SetThemeByName(m.themes[m.cursor]); err != nil {
				m.err = err
			}
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case themeChangedMsg:
		m.refresh()
	}
	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	styles := BuildStyles(m.values)
	reg := m.mgr.Registry()

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("overtone preview — theme %q", m.mgr.ActiveTheme().Name())))
	b.WriteString("\n\n")

	for _, cat := range reg.Categories() {
		b.WriteString(styles.Title.Render(string(cat)))
		b.WriteString("\n")
		for _, def := range reg.ByCategory(cat) {
			v := m.values[def.Key]
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(v)).Render("      ")
			line := fmt.Sprintf("  %s %-34s %s", swatch, def.Key, v)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Muted.Render("t: cycle theme  q: quit"))
	b.WriteString("\n")
	return b.String()
}
