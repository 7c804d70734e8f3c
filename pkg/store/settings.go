package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

// SettingsKey is the record-store key the settings record persists under.
const SettingsKey = "settings"

// Settings owns the composite settings record. Every section is always
// present: persisted data is decoded over a defaults-populated value, so
// sections or fields added after the user's data was last saved come back
// at their defaults instead of zero values.
type Settings struct {
	mu      sync.RWMutex
	records core.RecordStore
	scheme  core.ColorScheme
	log     *slog.Logger
	bus     *Broker

	current      core.Settings
	loaded       bool
	effective    core.Theme
	cancelScheme func()
}

// NewSettings creates a settings store holding defaults. Initialize loads
// the persisted record.
func NewSettings(records core.RecordStore, scheme core.ColorScheme, bus *Broker, log *slog.Logger) *Settings {
	if scheme == nil {
		scheme = core.FixedScheme(core.ThemeLight)
	}
	return &Settings{
		records:   records,
		scheme:    scheme,
		log:       log,
		bus:       bus,
		current:   core.DefaultSettings(),
		effective: core.ThemeLight,
	}
}

// Initialize loads the persisted settings record and subscribes to OS
// color-scheme changes. Load failure is non-fatal: defaults remain in
// effect and Loaded is still set so the app can proceed.
func (s *Settings) Initialize(ctx context.Context) {
	loaded := core.DefaultSettings()
	if err := s.records.Load(ctx, SettingsKey, &loaded); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			if s.log != nil {
				s.log.Debug("no persisted settings, using defaults")
			}
		} else if s.log != nil {
			s.log.Error("failed to load settings, using defaults", slog.Any("error", err))
		}
		loaded = core.DefaultSettings()
	}

	s.mu.Lock()
	s.current = loaded
	s.loaded = true
	s.resolveEffectiveLocked()
	if s.cancelScheme == nil {
		s.cancelScheme = s.scheme.Notify(func(core.Theme) {
			s.mu.Lock()
			s.resolveEffectiveLocked()
			s.mu.Unlock()
		})
	}
	s.mu.Unlock()
	s.publish()
}

// Reload re-reads the persisted record, used when the backing file changes
// out of band. Unlike Initialize it does not touch the scheme subscription.
func (s *Settings) Reload(ctx context.Context) {
	loaded := core.DefaultSettings()
	if err := s.records.Load(ctx, SettingsKey, &loaded); err != nil {
		if s.log != nil && !errors.Is(err, core.ErrNotFound) {
			s.log.Error("failed to reload settings", slog.Any("error", err))
		}
		return
	}
	s.mu.Lock()
	s.current = loaded
	s.resolveEffectiveLocked()
	s.mu.Unlock()
	s.publish()
}

// Update merges a section-granular patch into the current settings and
// immediately persists the full merged record. The in-memory state keeps
// the merged value even if persisting fails; the error reports the gap.
func (s *Settings) Update(ctx context.Context, patch core.SettingsPatch) error {
	s.mu.Lock()
	s.current.Apply(patch)
	s.resolveEffectiveLocked()
	merged := s.current
	s.mu.Unlock()
	s.publish()

	if err := s.records.Save(ctx, SettingsKey, merged); err != nil {
		if s.log != nil {
			s.log.Error("failed to persist settings", slog.Any("error", err))
		}
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// Reset replaces every section with its defaults and persists.
func (s *Settings) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.current = core.DefaultSettings()
	s.resolveEffectiveLocked()
	defaults := s.current
	s.mu.Unlock()
	s.publish()

	if err := s.records.Save(ctx, SettingsKey, defaults); err != nil {
		if s.log != nil {
			s.log.Error("failed to persist settings reset", slog.Any("error", err))
		}
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// Current returns a copy of the full settings record.
func (s *Settings) Current() core.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loaded reports whether initialization has completed (successfully or not).
func (s *Settings) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// EffectiveTheme is the derived theme: explicit light/dark settings pass
// through, ThemeSystem resolves against the OS preference.
func (s *Settings) EffectiveTheme() core.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effective
}

// Close releases the color-scheme subscription.
func (s *Settings) Close() {
	s.mu.Lock()
	cancel := s.cancelScheme
	s.cancelScheme = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Settings) resolveEffectiveLocked() {
	if s.current.App.Theme == core.ThemeSystem {
		s.effective = s.scheme.Preference()
		return
	}
	s.effective = s.current.App.Theme
}

func (s *Settings) publish() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(core.Event{Type: core.EventSettings, ID: SettingsKey, Timestamp: time.Now().Unix()})
}
