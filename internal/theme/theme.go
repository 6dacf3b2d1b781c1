// Package theme provides immutable named palettes.
package theme

import "github.com/overtone-dev/overtone/internal/tokens"

// Theme is an immutable named snapshot of token assignments. A theme may be
// sparse; tokens it does not define fall through to the next layer in the
// resolution chain.
type Theme struct {
	name   string
	values map[tokens.Token]tokens.Color
}

// New constructs a theme from a name and a token mapping. The mapping is
// copied; later changes to the argument do not affect the theme.
func New(name string, values map[tokens.Token]tokens.Color) *Theme {
	copied := make(map[tokens.Token]tokens.Color, len(values))
	for t, v := range values {
		copied[t] = v
	}
	return &Theme{name: name, values: copied}
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.name
}

// Get returns the theme's value for tok, if the theme defines it.
func (t *Theme) Get(tok tokens.Token) (tokens.Color, bool) {
	v, ok := t.values[tok]
	return v, ok
}

// Len returns the number of tokens the theme defines.
func (t *Theme) Len() int {
	return len(t.values)
}

// Values returns a snapshot copy of the theme's assignments.
func (t *Theme) Values() map[tokens.Token]tokens.Color {
	out := make(map[tokens.Token]tokens.Color, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Builtin lists the palettes that ship with the engine, by name.
var Builtin = map[string]*Theme{
	"dark":  Dark,
	"light": Light,
}

// Names returns the builtin palette names.
func Names() []string {
	return []string{"dark", "light"}
}
