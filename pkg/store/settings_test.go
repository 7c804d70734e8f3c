package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

// memRecords is an in-memory core.RecordStore with failure switches.
type memRecords struct {
	data     map[string][]byte
	failLoad bool
	failSave bool
	saves    int
}

func newMemRecords() *memRecords {
	return &memRecords{data: make(map[string][]byte)}
}

func (m *memRecords) Load(_ context.Context, key string, v any) error {
	if m.failLoad {
		return errors.New("disk unavailable")
	}
	raw, ok := m.data[key]
	if !ok {
		return fmt.Errorf("record %q: %w", key, core.ErrNotFound)
	}
	return json.Unmarshal(raw, v)
}

func (m *memRecords) Save(_ context.Context, key string, v any) error {
	if m.failSave {
		return errors.New("disk full")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.saves++
	return nil
}

// notifyScheme is a controllable core.ColorScheme.
type notifyScheme struct {
	pref     core.Theme
	notify   func(core.Theme)
	canceled bool
}

func (s *notifyScheme) Preference() core.Theme { return s.pref }
func (s *notifyScheme) Notify(fn func(core.Theme)) func() {
	s.notify = fn
	return func() { s.canceled = true }
}

func (s *notifyScheme) change(t core.Theme) {
	s.pref = t
	if s.notify != nil {
		s.notify(t)
	}
}

func TestInitializeWithoutRecordUsesDefaults(t *testing.T) {
	s := NewSettings(newMemRecords(), nil, nil, nil)
	s.Initialize(context.Background())

	assert.True(t, s.Loaded())
	assert.Equal(t, core.DefaultSettings(), s.Current())
}

func TestInitializeMergesPartialRecordOverDefaults(t *testing.T) {
	records := newMemRecords()
	records.data[SettingsKey] = []byte(`{"app": {"theme": "dark"}}`)

	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())

	current := s.Current()
	assert.Equal(t, core.ThemeDark, current.App.Theme)
	// Sections the record never saved keep their defaults.
	assert.Equal(t, "llama3.2:3b", current.AI.Model)
	assert.True(t, current.Weather.Enabled)
}

func TestInitializeLoadFailureStillMarksLoaded(t *testing.T) {
	records := newMemRecords()
	records.failLoad = true

	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())

	assert.True(t, s.Loaded())
	assert.Equal(t, core.DefaultSettings(), s.Current())
}

func TestUpdateSingleSectionLeavesOthersIntact(t *testing.T) {
	records := newMemRecords()
	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())
	before := s.Current()

	weather := before.Weather
	weather.Location = "Lisbon, Portugal"
	require.NoError(t, s.Update(context.Background(), core.SettingsPatch{Weather: &weather}))

	after := s.Current()
	assert.Equal(t, "Lisbon, Portugal", after.Weather.Location)
	assert.Equal(t, before.App, after.App)
	assert.Equal(t, before.AI, after.AI)
	assert.Equal(t, before.Publishing, after.Publishing)
	assert.Equal(t, 1, records.saves)
}

func TestUpdateKeepsMemoryOnSaveFailure(t *testing.T) {
	records := newMemRecords()
	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())

	records.failSave = true
	app := s.Current().App
	app.Theme = core.ThemeDark
	err := s.Update(context.Background(), core.SettingsPatch{App: &app})

	require.Error(t, err)
	// The in-memory value keeps the merge; only persistence failed.
	assert.Equal(t, core.ThemeDark, s.Current().App.Theme)
}

func TestReset(t *testing.T) {
	records := newMemRecords()
	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())

	app := s.Current().App
	app.Theme = core.ThemeDark
	require.NoError(t, s.Update(context.Background(), core.SettingsPatch{App: &app}))
	require.NoError(t, s.Reset(context.Background()))

	assert.Equal(t, core.DefaultSettings(), s.Current())
}

func TestReloadPicksUpExternalEdit(t *testing.T) {
	records := newMemRecords()
	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())

	records.data[SettingsKey] = []byte(`{"app": {"theme": "light"}}`)
	s.Reload(context.Background())
	assert.Equal(t, core.ThemeLight, s.Current().App.Theme)
}

func TestReloadFailureKeepsCurrent(t *testing.T) {
	records := newMemRecords()
	s := NewSettings(records, nil, nil, nil)
	s.Initialize(context.Background())
	before := s.Current()

	records.failLoad = true
	s.Reload(context.Background())
	assert.Equal(t, before, s.Current())
}

func TestEffectiveThemeFollowsSystemScheme(t *testing.T) {
	scheme := &notifyScheme{pref: core.ThemeDark}
	s := NewSettings(newMemRecords(), scheme, nil, nil)
	s.Initialize(context.Background())

	// Default theme is "system", so the OS preference wins.
	assert.Equal(t, core.ThemeDark, s.EffectiveTheme())

	scheme.change(core.ThemeLight)
	assert.Equal(t, core.ThemeLight, s.EffectiveTheme())

	// An explicit theme ignores the scheme.
	app := s.Current().App
	app.Theme = core.ThemeDark
	require.NoError(t, s.Update(context.Background(), core.SettingsPatch{App: &app}))
	scheme.change(core.ThemeLight)
	assert.Equal(t, core.ThemeDark, s.EffectiveTheme())
}

func TestCloseCancelsSchemeSubscription(t *testing.T) {
	scheme := &notifyScheme{pref: core.ThemeLight}
	s := NewSettings(newMemRecords(), scheme, nil, nil)
	s.Initialize(context.Background())

	s.Close()
	assert.True(t, scheme.canceled)
}
