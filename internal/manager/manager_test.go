package manager

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/overtone-dev/overtone/internal/policy"
	"github.com/overtone-dev/overtone/internal/store"
	"github.com/overtone-dev/overtone/internal/theme"
	"github.com/overtone-dev/overtone/internal/tokens"
)

func setupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	db, err := store.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	s := store.NewSQLiteStore(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestManager(t *testing.T, st store.Store, cfg policy.Config) *Manager {
	t.Helper()

	m := NewManager(tokens.NewRegistry(), st)
	require.NoError(t, m.Initialize(context.Background(), theme.Dark, "test-app", cfg))
	return m
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) ThemeChanged() {
	o.calls++
}

func TestInitializeTwiceFails(t *testing.T) {
	m := NewManager(tokens.NewRegistry(), nil)
	ctx := context.Background()

	require.NoError(t, m.Initialize(ctx, theme.Dark, "", policy.Config{}))
	err := m.Initialize(ctx, theme.Light, "", policy.Config{})
	require.ErrorIs(t, err, ErrAlreadyInitialized)

	// The first initialization must remain in effect.
	require.Equal(t, "dark", m.ActiveTheme().Name())
}

func TestOperationsBeforeInitialize(t *testing.T) {
	m := NewManager(tokens.NewRegistry(), nil)

	_, err := m.Resolve(tokens.EditorBackground)
	require.ErrorIs(t, err, ErrNotInitialized)
	require.ErrorIs(t, m.SetTheme(theme.Dark), ErrNotInitialized)
	require.ErrorIs(t, m.SetAppOverride(tokens.EditorBackground, "#fff"), ErrNotInitialized)
}

func TestResolvePrecedenceChain(t *testing.T) {
	// A sparse theme so absence can fall through to the registry default.
	base := theme.New("base", map[tokens.Token]tokens.Color{
		tokens.EditorBackground: "#theme",
	})

	cases := []struct {
		name       string
		user, app  bool
		themeHas   bool
		wantValue  tokens.Color
		wantSource Source
	}{
		{"user wins over everything", true, true, true, "#user", SourceUser},
		{"user wins without app", true, false, true, "#user", SourceUser},
		{"app wins over theme", false, true, true, "#app", SourceApp},
		{"theme wins over default", false, false, true, "#theme", SourceTheme},
		{"default when nothing set", false, false, false, "", SourceDefault},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(tokens.NewRegistry(), nil)
			ctx := context.Background()
			require.NoError(t, m.Initialize(ctx, base, "", policy.Config{}))

			token := tokens.EditorBackground
			if !tc.themeHas {
				token = tokens.FocusBorder // not defined by the sparse theme
			}
			if tc.app {
				require.NoError(t, m.SetAppOverride(token, "#app"))
			}
			if tc.user {
				require.NoError(t, m.SetUserOverride(ctx, token, "#user", false))
			}

			value, source, err := m.ResolveProvenance(token)
			require.NoError(t, err)
			require.Equal(t, tc.wantSource, source)

			if tc.wantSource == SourceDefault {
				def, err := m.Registry().Lookup(token)
				require.NoError(t, err)
				require.Equal(t, def.Default, value)
			} else {
				require.Equal(t, tc.wantValue, value)
			}
		})
	}
}

func TestResolveUnknownToken(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})

	_, err := m.Resolve("bogus.token")
	require.ErrorIs(t, err, tokens.ErrUnknownToken)
}

func TestBrandingScenario(t *testing.T) {
	m := NewManager(tokens.NewRegistry(), nil)
	ctx := context.Background()

	base := theme.New("dark", map[tokens.Token]tokens.Color{
		tokens.EditorBackground: "#1e1e1e",
	})
	require.NoError(t, m.Initialize(ctx, base, "", policy.Config{}))
	require.NoError(t, m.SetAppOverride(tokens.TabActiveBackground, "#7c3aed"))

	v, err := m.Resolve(tokens.TabActiveBackground)
	require.NoError(t, err)
	require.Equal(t, tokens.Color("#7c3aed"), v)

	v, err = m.Resolve(tokens.EditorBackground)
	require.NoError(t, err)
	require.Equal(t, tokens.Color("#1e1e1e"), v)

	// A token set nowhere resolves to its registry default.
	def, err := m.Registry().Lookup(tokens.FocusBorder)
	require.NoError(t, err)
	v, err = m.Resolve(tokens.FocusBorder)
	require.NoError(t, err)
	require.Equal(t, def.Default, v)
}

func TestUserBulkAllOrNothing(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	err := m.SetUserOverridesBulk(ctx, map[tokens.Token]tokens.Color{
		tokens.EditorBackground:    "#111111",
		tokens.TabActiveBackground: "#222222",
		"invalid.token":            "#333333",
	}, false)
	require.ErrorIs(t, err, tokens.ErrUnknownToken)
	require.Empty(t, m.UserOverrides(), "failed bulk update must leave the layer unchanged")
}

func TestUserBulkPolicyAllOrNothing(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{
		Restricted:    true,
		AllowedTokens: []string{string(tokens.EditorBackground)},
	})
	ctx := context.Background()

	err := m.SetUserOverridesBulk(ctx, map[tokens.Token]tokens.Color{
		tokens.EditorBackground:    "#111111",
		tokens.TabActiveBackground: "#222222", // not allowlisted
	}, false)
	require.ErrorIs(t, err, ErrTokenNotCustomizable)
	require.Empty(t, m.UserOverrides())
}

func TestPolicyGatesUserOverrides(t *testing.T) {
	ctx := context.Background()

	restricted := newTestManager(t, nil, policy.Config{
		Restricted:    true,
		AllowedTokens: []string{string(tokens.EditorBackground)},
	})

	require.NoError(t, restricted.SetUserOverride(ctx, tokens.EditorBackground, "#ok", false))

	err := restricted.SetUserOverride(ctx, tokens.TabActiveBackground, "#nope", false)
	require.ErrorIs(t, err, ErrTokenNotCustomizable)
	require.NotContains(t, restricted.UserOverrides(), tokens.TabActiveBackground)

	open := newTestManager(t, nil, policy.Config{Restricted: false})
	require.NoError(t, open.SetUserOverride(ctx, tokens.TabActiveBackground, "#fine", false))
}

func TestPolicyDoesNotGateAppOverrides(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{Restricted: true})

	require.NoError(t, m.SetAppOverride(tokens.EditorBackground, "#brand"))
}

func TestPersistenceRoundTrip(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	first := newTestManager(t, st, policy.Config{})
	require.NoError(t, first.SetUserOverride(ctx, tokens.EditorBackground, "#ff0000", false))
	require.NoError(t, first.SetUserOverride(ctx, tokens.TabActiveBackground, "#00ff00", false))
	require.NoError(t, first.SaveUserPreferences(ctx))

	second := newTestManager(t, st, policy.Config{})
	require.Equal(t, first.UserOverrides(), second.UserOverrides())
}

func TestPersistFlagSavesFullSnapshot(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	m := newTestManager(t, st, policy.Config{})
	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#ff0000", false))
	require.NoError(t, m.SetUserOverride(ctx, tokens.TabActiveBackground, "#00ff00", true))

	record, err := st.Load(ctx, "test-app")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, map[tokens.Token]tokens.Color{
		tokens.EditorBackground:    "#ff0000",
		tokens.TabActiveBackground: "#00ff00",
	}, record.Entries, "persisted record must be the full layer, not the delta")
}

func TestRemoveDoesNotTouchPersistedRecord(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	m := newTestManager(t, st, policy.Config{})
	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#saved", true))

	// Preview a change and back it out without committing.
	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#ff0000", false))
	require.NoError(t, m.RemoveUserOverride(tokens.EditorBackground))

	_, source, err := m.ResolveProvenance(tokens.EditorBackground)
	require.NoError(t, err)
	require.NotEqual(t, SourceUser, source, "removed override must fall through")

	record, err := st.Load(ctx, "test-app")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, tokens.Color("#saved"), record.Entries[tokens.EditorBackground],
		"remove must not implicitly re-save")
}

func TestNotificationCadence(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	obs := &countingObserver{}
	m.Subscribe(obs)

	require.NoError(t, m.SetUserOverridesBulk(ctx, map[tokens.Token]tokens.Color{
		tokens.EditorBackground:    "#111111",
		tokens.TabActiveBackground: "#222222",
		tokens.PanelBackground:     "#333333",
	}, false))
	require.Equal(t, 1, obs.calls, "bulk update must notify exactly once")

	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorForeground, "#444444", false))
	require.NoError(t, m.SetAppOverride(tokens.SideBarBackground, "#555555"))
	require.NoError(t, m.RemoveUserOverride(tokens.EditorBackground))
	require.Equal(t, 4, obs.calls, "each single mutation notifies once")

	require.NoError(t, m.SetTheme(theme.Light))
	require.Equal(t, 5, obs.calls, "theme switch notifies once")

	err := m.SetUserOverride(ctx, "bogus.token", "#666666", false)
	require.ErrorIs(t, err, tokens.ErrUnknownToken)
	require.Equal(t, 5, obs.calls, "failed validation must not notify")
}

func TestObserverResolvesDuringDelivery(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	var seen tokens.Color
	obs := &resolvingObserver{m: m, token: tokens.EditorBackground, out: &seen}
	m.Subscribe(obs)

	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#abcdef", false))
	require.Equal(t, tokens.Color("#abcdef"), seen, "observer must see the new value")
}

type resolvingObserver struct {
	m     *Manager
	token tokens.Token
	out   *tokens.Color
}

func (o *resolvingObserver) ThemeChanged() {
	if v, err := o.m.Resolve(o.token); err == nil {
		*o.out = v
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	obs := &countingObserver{}
	sub := m.Subscribe(obs)

	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#111111", false))
	sub.Cancel()
	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#222222", false))

	require.Equal(t, 1, obs.calls)
}

// failingStore simulates a durable layer that accepts loads but cannot
// complete writes.
type failingStore struct{}

func (failingStore) Load(ctx context.Context, appID string) (*store.Record, error) {
	return nil, nil
}

func (failingStore) Save(ctx context.Context, appID string, entries map[tokens.Token]tokens.Color) error {
	return fmt.Errorf("%w: disk full", store.ErrWriteFailed)
}

func (failingStore) Close() error { return nil }

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	m := newTestManager(t, failingStore{}, policy.Config{})
	ctx := context.Background()

	obs := &countingObserver{}
	m.Subscribe(obs)

	err := m.SetUserOverride(ctx, tokens.EditorBackground, "#ff0000", true)
	require.ErrorIs(t, err, store.ErrWriteFailed)

	// The in-memory override survives the failed write, and the change
	// signal still fired.
	v, source, rerr := m.ResolveProvenance(tokens.EditorBackground)
	require.NoError(t, rerr)
	require.Equal(t, SourceUser, source)
	require.Equal(t, tokens.Color("#ff0000"), v)
	require.Equal(t, 1, obs.calls)
}

func TestPersistWithoutStore(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	err := m.SetUserOverride(ctx, tokens.EditorBackground, "#ff0000", true)
	require.ErrorIs(t, err, ErrPersistenceDisabled)

	// The override is still applied.
	_, source, rerr := m.ResolveProvenance(tokens.EditorBackground)
	require.NoError(t, rerr)
	require.Equal(t, SourceUser, source)

	require.ErrorIs(t, m.SaveUserPreferences(ctx), ErrPersistenceDisabled)
}

func TestPolicyTighteningRetainsUntilReconciled(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#keep", false))
	require.NoError(t, m.SetUserOverride(ctx, tokens.TabActiveBackground, "#purge", false))

	require.NoError(t, m.UpdatePolicy(policy.Config{
		Restricted:    true,
		AllowedTokens: []string{string(tokens.EditorBackground)},
	}))

	// Tightening alone never purges.
	require.Contains(t, m.UserOverrides(), tokens.TabActiveBackground)

	obs := &countingObserver{}
	m.Subscribe(obs)

	removed, err := m.ReconcilePolicy()
	require.NoError(t, err)
	require.Equal(t, []tokens.Token{tokens.TabActiveBackground}, removed)
	require.NotContains(t, m.UserOverrides(), tokens.TabActiveBackground)
	require.Contains(t, m.UserOverrides(), tokens.EditorBackground)
	require.Equal(t, 1, obs.calls)

	// Nothing left to purge: no signal.
	removed, err = m.ReconcilePolicy()
	require.NoError(t, err)
	require.Empty(t, removed)
	require.Equal(t, 1, obs.calls)
}

func TestEffectiveValuesCoversRegistry(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#user", false))
	require.NoError(t, m.SetAppOverride(tokens.TabActiveBackground, "#app"))

	values, err := m.EffectiveValues()
	require.NoError(t, err)
	require.Len(t, values, m.Registry().Len(), "every registered token must resolve")
	require.Equal(t, tokens.Color("#user"), values[tokens.EditorBackground])
	require.Equal(t, tokens.Color("#app"), values[tokens.TabActiveBackground])
}

func TestSetThemeLeavesOverridesIntact(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	require.NoError(t, m.SetUserOverride(ctx, tokens.EditorBackground, "#user", false))
	require.NoError(t, m.SetAppOverride(tokens.TabActiveBackground, "#app"))

	require.NoError(t, m.SetThemeByName("light"))
	require.Equal(t, "light", m.ActiveTheme().Name())

	v, err := m.Resolve(tokens.EditorBackground)
	require.NoError(t, err)
	require.Equal(t, tokens.Color("#user"), v)

	require.ErrorIs(t, m.SetThemeByName("solarized"), ErrUnknownTheme)
}

func TestRestoreSkipsUnregisteredTokens(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "test-app", map[tokens.Token]tokens.Color{
		tokens.EditorBackground: "#ff0000",
		"retired.token":         "#dead00",
	}))

	m := newTestManager(t, st, policy.Config{})
	overrides := m.UserOverrides()
	require.Contains(t, overrides, tokens.EditorBackground)
	require.NotContains(t, overrides, tokens.Token("retired.token"))
}

func TestClearUserOverrides(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})
	ctx := context.Background()

	require.NoError(t, m.SetUserOverridesBulk(ctx, map[tokens.Token]tokens.Color{
		tokens.EditorBackground:    "#111111",
		tokens.TabActiveBackground: "#222222",
	}, false))

	obs := &countingObserver{}
	m.Subscribe(obs)

	require.NoError(t, m.ClearUserOverrides())
	require.Empty(t, m.UserOverrides())
	require.Equal(t, 1, obs.calls, "clear notifies exactly once")
}

func TestAppBulkAllOrNothing(t *testing.T) {
	m := newTestManager(t, nil, policy.Config{})

	err := m.SetAppOverridesBulk(map[tokens.Token]tokens.Color{
		tokens.EditorBackground: "#111111",
		"invalid.token":         "#222222",
	})
	require.ErrorIs(t, err, tokens.ErrUnknownToken)
	require.Empty(t, m.AppOverrides())
}

func TestLoadFailureIsNonFatal(t *testing.T) {
	m := NewManager(tokens.NewRegistry(), unavailableStore{})
	ctx := context.Background()

	require.NoError(t, m.Initialize(ctx, theme.Dark, "test-app", policy.Config{}))
	require.Empty(t, m.UserOverrides())

	v, err := m.Resolve(tokens.EditorBackground)
	require.NoError(t, err)
	require.NotEmpty(t, v)
}

type unavailableStore struct{}

func (unavailableStore) Load(ctx context.Context, appID string) (*store.Record, error) {
	return nil, fmt.Errorf("%w: no backend", store.ErrUnavailable)
}

func (unavailableStore) Save(ctx context.Context, appID string, entries map[tokens.Token]tokens.Color) error {
	return fmt.Errorf("%w: no backend", store.ErrUnavailable)
}

func (unavailableStore) Close() error { return nil }
