// Package manager orchestrates the layered theme override-resolution engine.
//
// A Manager owns the active theme, the application and user override layers,
// and the customization policy. Every resolved color follows the same
// precedence chain: user override, then app override, then the active
// theme, then the registry default.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/overtone-dev/overtone/internal/logging"
	"github.com/overtone-dev/overtone/internal/notify"
	"github.com/overtone-dev/overtone/internal/override"
	"github.com/overtone-dev/overtone/internal/policy"
	"github.com/overtone-dev/overtone/internal/store"
	"github.com/overtone-dev/overtone/internal/theme"
	"github.com/overtone-dev/overtone/internal/tokens"
)

// Manager errors.
var (
	ErrAlreadyInitialized   = errors.New("manager already initialized")
	ErrNotInitialized       = errors.New("manager not initialized")
	ErrUnknownTheme         = errors.New("unknown theme")
	ErrTokenNotCustomizable = errors.New("token is not customizable")
	ErrPersistenceDisabled  = errors.New("persistence is not configured")
)

// Source identifies which layer produced a resolved value.
type Source string

const (
	SourceUser    Source = "user"
	SourceApp     Source = "app"
	SourceTheme   Source = "theme"
	SourceDefault Source = "default"
)

// Manager is the single owner of theming state. Mutations are serialized by
// one lock; reads are served under a shared lock so observers may call
// Resolve from inside their change handlers.
type Manager struct {
	mu          sync.RWMutex
	registry    *tokens.Registry
	store       store.Store
	broadcaster *notify.Broadcaster
	logger      zerolog.Logger

	initialized bool
	appID       string
	active      *theme.Theme
	app         *override.Layer
	user        *override.Layer
	policy      *policy.Policy
}

// NewManager creates an uninitialized manager. st may be nil to disable
// persistence entirely.
func NewManager(reg *tokens.Registry, st store.Store) *Manager {
	return &Manager{
		registry:    reg,
		store:       st,
		broadcaster: notify.NewBroadcaster(),
		logger:      logging.Component("manager"),
	}
}

// Initialize sets the active theme, applies the customization policy, and
// restores any persisted user overrides for appID. Calling Initialize twice
// is a caller error: re-initialization would silently discard subscriber
// state.
func (m *Manager) Initialize(ctx context.Context, defaultTheme *theme.Theme, appID string, policyCfg policy.Config) error {
	if defaultTheme == nil {
		return fmt.Errorf("default theme is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return ErrAlreadyInitialized
	}

	m.active = defaultTheme
	m.appID = appID
	m.app = override.NewLayer(override.ProvenanceApp, m.registry)
	m.user = override.NewLayer(override.ProvenanceUser, m.registry)
	m.policy = policy.FromConfig(policyCfg)

	if m.store != nil && appID != "" {
		m.restoreUserOverrides(ctx, appID)
	}

	m.initialized = true
	m.logger.Debug().
		Str("theme", defaultTheme.Name()).
		Str("app_id", appID).
		Bool("restricted", m.policy.Restricted()).
		Int("restored_overrides", m.user.Len()).
		Msg("initialized")
	return nil
}

// restoreUserOverrides loads the persisted record for appID into the user
// layer. Storage failure is non-fatal: the manager starts with an empty
// user layer and the condition is logged. Persisted tokens that are no
// longer registered are skipped.
func (m *Manager) restoreUserOverrides(ctx context.Context, appID string) {
	record, err := m.store.Load(ctx, appID)
	if err != nil {
		m.logger.Warn().Err(err).Str("app_id", appID).Msg("failed to load persisted overrides")
		return
	}
	if record == nil {
		return
	}

	entries := make(map[tokens.Token]tokens.Color, len(record.Entries))
	for t, v := range record.Entries {
		if !m.registry.Contains(t) {
			m.logger.Warn().Str("token", string(t)).Msg("skipping persisted override for unregistered token")
			continue
		}
		entries[t] = v
	}
	m.user.Replace(entries)
}

// Registry returns the token registry the manager validates against.
func (m *Manager) Registry() *tokens.Registry {
	return m.registry
}

// ActiveTheme returns the current base theme.
func (m *Manager) ActiveTheme() *theme.Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetTheme replaces the active theme wholesale. Override layers are not
// touched; a single change signal is broadcast.
func (m *Manager) SetTheme(t *theme.Theme) error {
	if t == nil {
		return fmt.Errorf("theme is required")
	}

	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	m.active = t
	m.mu.Unlock()

	m.logger.Debug().Str("theme", t.Name()).Msg("theme switched")
	m.broadcaster.NotifyAll()
	return nil
}

// SetThemeByName switches to a builtin palette.
func (m *Manager) SetThemeByName(name string) error {
	t, ok := theme.Builtin[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return m.SetTheme(t)
}

// Resolve computes the effective color for t through the precedence chain.
// It never mutates state and is safe to call from notification handlers.
func (m *Manager) Resolve(t tokens.Token) (tokens.Color, error) {
	v, _, err := m.ResolveProvenance(t)
	return v, err
}

// ResolveProvenance resolves t and reports which layer the value came from.
func (m *Manager) ResolveProvenance(t tokens.Token) (tokens.Color, Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return "", "", ErrNotInitialized
	}
	return m.resolveLocked(t)
}

func (m *Manager) resolveLocked(t tokens.Token) (tokens.Color, Source, error) {
	def, err := m.registry.Lookup(t)
	if err != nil {
		return "", "", err
	}
	if v, ok := m.user.Get(t); ok {
		return v, SourceUser, nil
	}
	if v, ok := m.app.Get(t); ok {
		return v, SourceApp, nil
	}
	if v, ok := m.active.Get(t); ok {
		return v, SourceTheme, nil
	}
	return def.Default, SourceDefault, nil
}

// EffectiveValues returns the resolved color for every registered token,
// computed against one consistent snapshot.
func (m *Manager) EffectiveValues() (map[tokens.Token]tokens.Color, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}

	out := make(map[tokens.Token]tokens.Color, m.registry.Len())
	for _, def := range m.registry.All() {
		v, _, err := m.resolveLocked(def.Key)
		if err != nil {
			return nil, err
		}
		out[def.Key] = v
	}
	return out, nil
}

// SetAppOverride writes one application branding override.
func (m *Manager) SetAppOverride(t tokens.Token, v tokens.Color) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	if err := m.app.Set(t, v); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	m.broadcaster.NotifyAll()
	return nil
}

// SetAppOverridesBulk applies branding overrides atomically: every token is
// validated before any entry is written, and exactly one change signal is
// broadcast for the whole call.
func (m *Manager) SetAppOverridesBulk(entries map[tokens.Token]tokens.Color) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	if err := m.app.SetBulk(entries); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	m.logger.Debug().Int("entries", len(entries)).Msg("applied app overrides")
	m.broadcaster.NotifyAll()
	return nil
}

// SetUserOverride writes one user personalization override, subject to the
// customization policy. With persist set, the full user layer is saved so
// the durable record stays a complete snapshot; a failed save never rolls
// back the in-memory override.
func (m *Manager) SetUserOverride(ctx context.Context, t tokens.Token, v tokens.Color, persist bool) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	if _, err := m.registry.Lookup(t); err != nil {
		m.mu.Unlock()
		return err
	}
	if !m.policy.IsAllowed(t) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrTokenNotCustomizable, t)
	}
	if err := m.user.Set(t, v); err != nil {
		m.mu.Unlock()
		return err
	}
	var snapshot map[tokens.Token]tokens.Color
	if persist {
		snapshot = m.user.All()
	}
	appID := m.appID
	m.mu.Unlock()

	m.broadcaster.NotifyAll()

	if persist {
		return m.persistSnapshot(ctx, appID, snapshot)
	}
	return nil
}

// SetUserOverridesBulk applies user overrides atomically. Every entry is
// validated against the registry and the policy before any is written.
func (m *Manager) SetUserOverridesBulk(ctx context.Context, entries map[tokens.Token]tokens.Color, persist bool) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	for t := range entries {
		if _, err := m.registry.Lookup(t); err != nil {
			m.mu.Unlock()
			return err
		}
		if !m.policy.IsAllowed(t) {
			m.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrTokenNotCustomizable, t)
		}
	}
	if err := m.user.SetBulk(entries); err != nil {
		m.mu.Unlock()
		return err
	}
	var snapshot map[tokens.Token]tokens.Color
	if persist {
		snapshot = m.user.All()
	}
	appID := m.appID
	m.mu.Unlock()

	m.logger.Debug().Int("entries", len(entries)).Msg("applied user overrides")
	m.broadcaster.NotifyAll()

	if persist {
		return m.persistSnapshot(ctx, appID, snapshot)
	}
	return nil
}

// RemoveUserOverride deletes one user override. The durable record is left
// untouched until the caller explicitly saves, which supports previewing a
// removal without committing it.
func (m *Manager) RemoveUserOverride(t tokens.Token) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	if _, err := m.registry.Lookup(t); err != nil {
		m.mu.Unlock()
		return err
	}
	m.user.Remove(t)
	m.mu.Unlock()

	m.broadcaster.NotifyAll()
	return nil
}

// ClearUserOverrides removes every user override in one call, with a single
// change signal. The durable record is not touched.
func (m *Manager) ClearUserOverrides() error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	removed := m.user.Clear()
	m.mu.Unlock()

	m.logger.Debug().Int("removed", removed).Msg("cleared user overrides")
	m.broadcaster.NotifyAll()
	return nil
}

// AppOverrides returns a snapshot of the app layer.
func (m *Manager) AppOverrides() map[tokens.Token]tokens.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized {
		return map[tokens.Token]tokens.Color{}
	}
	return m.app.All()
}

// UserOverrides returns a snapshot of the user layer.
func (m *Manager) UserOverrides() map[tokens.Token]tokens.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized {
		return map[tokens.Token]tokens.Color{}
	}
	return m.user.All()
}

// SaveUserPreferences persists the current user layer as a complete
// snapshot. This is the commit step of the preview-then-commit workflow.
func (m *Manager) SaveUserPreferences(ctx context.Context) error {
	m.mu.RLock()
	if !m.initialized {
		m.mu.RUnlock()
		return ErrNotInitialized
	}
	snapshot := m.user.All()
	appID := m.appID
	m.mu.RUnlock()

	return m.persistSnapshot(ctx, appID, snapshot)
}

func (m *Manager) persistSnapshot(ctx context.Context, appID string, snapshot map[tokens.Token]tokens.Color) error {
	if m.store == nil || appID == "" {
		return ErrPersistenceDisabled
	}
	if err := m.store.Save(ctx, appID, snapshot); err != nil {
		m.logger.Warn().Err(err).Str("app_id", appID).Msg("override applied but durable save failed")
		return fmt.Errorf("override state applied but not persisted: %w", err)
	}
	return nil
}

// UpdatePolicy replaces the customization policy. Existing user overrides
// that the new policy would reject are retained; call ReconcilePolicy to
// purge them explicitly.
func (m *Manager) UpdatePolicy(cfg policy.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return ErrNotInitialized
	}
	m.policy = policy.FromConfig(cfg)
	return nil
}

// Policy returns the current policy configuration.
func (m *Manager) Policy() policy.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized {
		return policy.Config{}
	}
	return m.policy.Snapshot()
}

// ReconcilePolicy removes user overrides the current policy no longer
// allows and returns the purged tokens in sorted order. One change signal
// is broadcast if anything was removed.
func (m *Manager) ReconcilePolicy() ([]tokens.Token, error) {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return nil, ErrNotInitialized
	}
	var removed []tokens.Token
	for t := range m.user.All() {
		if !m.policy.IsAllowed(t) {
			m.user.Remove(t)
			removed = append(removed, t)
		}
	}
	m.mu.Unlock()

	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	if len(removed) > 0 {
		m.logger.Debug().Int("removed", len(removed)).Msg("reconciled user overrides against policy")
		m.broadcaster.NotifyAll()
	}
	return removed, nil
}

// Subscribe registers an observer for change signals.
func (m *Manager) Subscribe(o notify.Observer) *notify.Subscription {
	return m.broadcaster.Subscribe(o)
}

// Unsubscribe detaches an observer. Safe to call for observers that were
// never subscribed.
func (m *Manager) Unsubscribe(o notify.Observer) {
	m.broadcaster.Unsubscribe(o)
}
