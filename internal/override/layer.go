// Package override implements the mutable override layers stacked above the
// active theme.
package override

import "github.com/overtone-dev/overtone/internal/tokens"

// Provenance identifies which layer an override belongs to.
type Provenance string

const (
	// ProvenanceApp marks application branding overrides.
	ProvenanceApp Provenance = "app"
	// ProvenanceUser marks user personalization overrides.
	ProvenanceUser Provenance = "user"
)

// Layer is an ordered-irrelevant mapping from token to color with a fixed
// provenance. Layers carry no internal locking; the owning manager
// serializes all access.
type Layer struct {
	provenance Provenance
	registry   *tokens.Registry
	entries    map[tokens.Token]tokens.Color
}

// NewLayer creates an empty layer validating against reg.
func NewLayer(provenance Provenance, reg *tokens.Registry) *Layer {
	return &Layer{
		provenance: provenance,
		registry:   reg,
		entries:    make(map[tokens.Token]tokens.Color),
	}
}

// Provenance returns the layer's provenance.
func (l *Layer) Provenance() Provenance {
	return l.provenance
}

// Set assigns a value to a registered token. Setting an unchanged value
// succeeds and still counts as a mutation to the caller.
func (l *Layer) Set(t tokens.Token, v tokens.Color) error {
	if _, err := l.registry.Lookup(t); err != nil {
		return err
	}
	l.entries[t] = v
	return nil
}

// SetBulk validates every token before applying any entry. On validation
// failure the layer is left completely unchanged.
func (l *Layer) SetBulk(entries map[tokens.Token]tokens.Color) error {
	for t := range entries {
		if _, err := l.registry.Lookup(t); err != nil {
			return err
		}
	}
	for t, v := range entries {
		l.entries[t] = v
	}
	return nil
}

// Remove deletes a token's entry. Removing an absent token is a no-op.
func (l *Layer) Remove(t tokens.Token) {
	delete(l.entries, t)
}

// Clear deletes every entry and returns how many were removed.
func (l *Layer) Clear() int {
	n := len(l.entries)
	l.entries = make(map[tokens.Token]tokens.Color)
	return n
}

// Get returns the layer's value for t, if present.
func (l *Layer) Get(t tokens.Token) (tokens.Color, bool) {
	v, ok := l.entries[t]
	return v, ok
}

// Len returns the number of entries.
func (l *Layer) Len() int {
	return len(l.entries)
}

// All returns a snapshot copy of the layer's entries.
func (l *Layer) All() map[tokens.Token]tokens.Color {
	out := make(map[tokens.Token]tokens.Color, len(l.entries))
	for t, v := range l.entries {
		out[t] = v
	}
	return out
}

// Replace swaps the layer contents for the given entries without registry
// validation. Used when restoring a persisted snapshot the manager has
// already filtered.
func (l *Layer) Replace(entries map[tokens.Token]tokens.Color) {
	copied := make(map[tokens.Token]tokens.Color, len(entries))
	for t, v := range entries {
		copied[t] = v
	}
	l.entries = copied
}
