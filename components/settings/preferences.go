package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownPreference is returned for keys that were never registered.
var ErrUnknownPreference = errors.New("settings: unknown preference")

// Preference is one boolean switch on the settings page.
type Preference struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Telemetry records settings events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// InMemoryPreferenceStore keeps switch values for the lifetime of the
// process. It is safe for concurrent use.
type InMemoryPreferenceStore struct {
	mu        sync.RWMutex
	order     []string
	data      map[string]Preference
	telemetry Telemetry
}

// NewInMemoryPreferenceStore registers defaults in the given order.
// Duplicate keys keep the first definition.
func NewInMemoryPreferenceStore(defaults []Preference, telemetry Telemetry) *InMemoryPreferenceStore {
	if telemetry == nil {
		telemetry = noopTelemetry{}
	}
	s := &InMemoryPreferenceStore{
		data:      make(map[string]Preference, len(defaults)),
		telemetry: telemetry,
	}
	for _, pref := range defaults {
		if pref.Key == "" {
			continue
		}
		if _, exists := s.data[pref.Key]; exists {
			continue
		}
		s.order = append(s.order, pref.Key)
		s.data[pref.Key] = pref
	}
	return s
}

// List returns every preference in registration order.
func (s *InMemoryPreferenceStore) List() []Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Preference, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.data[key])
	}
	return out
}

// Get returns a single preference.
func (s *InMemoryPreferenceStore) Get(key string) (Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pref, ok := s.data[key]
	if !ok {
		return Preference{}, fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	return pref, nil
}

// Set stores an explicit value.
func (s *InMemoryPreferenceStore) Set(ctx context.Context, key string, enabled bool) (Preference, error) {
	return s.update(ctx, key, func(bool) bool { return enabled })
}

// Toggle flips a switch and returns its new state.
func (s *InMemoryPreferenceStore) Toggle(ctx context.Context, key string) (Preference, error) {
	return s.update(ctx, key, func(current bool) bool { return !current })
}

func (s *InMemoryPreferenceStore) update(ctx context.Context, key string, next func(bool) bool) (Preference, error) {
	s.mu.Lock()
	pref, ok := s.data[key]
	if !ok {
		s.mu.Unlock()
		return Preference{}, fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	pref.Enabled = next(pref.Enabled)
	s.data[key] = pref
	s.mu.Unlock()

	s.telemetry.Record(ctx, "settings.preference.set", map[string]any{
		"key":     key,
		"enabled": pref.Enabled,
	})
	return pref, nil
}
