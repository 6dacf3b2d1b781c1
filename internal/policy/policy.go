// Package policy gates which tokens may receive user-level overrides.
package policy

import (
	"sort"

	"github.com/overtone-dev/overtone/internal/tokens"
)

// Config is the policy configuration accepted at initialization.
type Config struct {
	// Restricted limits user customization to AllowedTokens when true.
	Restricted bool `mapstructure:"restricted"`

	// AllowedTokens lists the customizable tokens under restriction.
	AllowedTokens []string `mapstructure:"allowed_tokens"`
}

// Policy decides whether a token may be customized by the user. Policy
// mutators change configuration only; the manager owns any reconciliation
// of existing overrides.
type Policy struct {
	restricted bool
	allowed    map[tokens.Token]struct{}
}

// FromConfig builds a policy from configuration.
func FromConfig(cfg Config) *Policy {
	p := &Policy{restricted: cfg.Restricted}
	p.setAllowed(cfg.AllowedTokens)
	return p
}

// IsAllowed reports whether t may receive a user override.
func (p *Policy) IsAllowed(t tokens.Token) bool {
	if !p.restricted {
		return true
	}
	_, ok := p.allowed[t]
	return ok
}

// Restricted reports whether the policy is in restricted mode.
func (p *Policy) Restricted() bool {
	return p.restricted
}

// SetRestricted toggles restricted mode.
func (p *Policy) SetRestricted(restricted bool) {
	p.restricted = restricted
}

// SetAllowedTokens replaces the allowlist.
func (p *Policy) SetAllowedTokens(allowed []string) {
	p.setAllowed(allowed)
}

func (p *Policy) setAllowed(allowed []string) {
	set := make(map[tokens.Token]struct{}, len(allowed))
	for _, t := range allowed {
		set[tokens.Token(t)] = struct{}{}
	}
	p.allowed = set
}

// Snapshot returns the current configuration.
func (p *Policy) Snapshot() Config {
	allowed := make([]string, 0, len(p.allowed))
	for t := range p.allowed {
		allowed = append(allowed, string(t))
	}
	sort.Strings(allowed)
	return Config{Restricted: p.restricted, AllowedTokens: allowed}
}
