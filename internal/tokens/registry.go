package tokens

import (
	"errors"
	"fmt"
)

// ErrUnknownToken indicates a token outside the registered namespace.
var ErrUnknownToken = errors.New("unknown token")

// Registry is the canonical namespace of valid tokens. The set is closed
// over the process lifetime; tokens are never added or removed at runtime.
type Registry struct {
	defs  []Definition
	index map[Token]int
}

// NewRegistry builds a registry over the builtin token table.
func NewRegistry() *Registry {
	return newRegistry(builtinDefinitions)
}

func newRegistry(defs []Definition) *Registry {
	index := make(map[Token]int, len(defs))
	for i, def := range defs {
		index[def.Key] = i
	}
	return &Registry{defs: defs, index: index}
}

// Contains reports whether t is a registered token.
func (r *Registry) Contains(t Token) bool {
	_, ok := r.index[t]
	return ok
}

// Lookup returns the definition for t, or ErrUnknownToken.
func (r *Registry) Lookup(t Token) (Definition, error) {
	i, ok := r.index[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownToken, t)
	}
	return r.defs[i], nil
}

// Default returns the registry default for t, or ErrUnknownToken.
func (r *Registry) Default(t Token) (Color, error) {
	def, err := r.Lookup(t)
	if err != nil {
		return "", err
	}
	return def.Default, nil
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	return len(r.defs)
}

// All returns every definition in stable enumeration order, grouped by
// category. Intended for listing and inspection, not the resolution path.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// ByCategory returns the definitions in c, in enumeration order.
func (r *Registry) ByCategory(c Category) []Definition {
	var out []Definition
	for _, def := range r.defs {
		if def.Category == c {
			out = append(out, def)
		}
	}
	return out
}

// Categories returns the distinct categories in enumeration order.
func (r *Registry) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, def := range r.defs {
		if !seen[def.Category] {
			seen[def.Category] = true
			out = append(out, def.Category)
		}
	}
	return out
}
