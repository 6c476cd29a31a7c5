// Package prefs persists the selected effect name.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// Store reads and writes string preferences by key.
type Store interface {
	// Load returns the stored value and whether one exists.
	Load(key string) (string, bool, error)
	Save(key, value string) error
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Load(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Save(key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// preferencesObject groups every key under one gdata object.
const preferencesObject = "preferences"

// GdataStore persists preferences in the per-user data directory.
// With a nil manager it keeps values in memory only.
type GdataStore struct {
	manager  *gdata.Manager
	fallback Memory
}

// Open opens the gdata store for an application.
func Open(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening preference storage: %w", err)
	}
	return NewGdataStore(m), nil
}

// NewGdataStore wraps an existing manager, which may be nil.
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	return &GdataStore{manager: manager}
}

func (s *GdataStore) Load(key string) (string, bool, error) {
	if s.manager == nil {
		return s.fallback.Load(key)
	}
	if !s.manager.ObjectPropExists(preferencesObject, key) {
		return "", false, nil
	}
	data, err := s.manager.LoadObjectProp(preferencesObject, key)
	if err != nil {
		return "", false, fmt.Errorf("loading preference %q: %w", key, err)
	}
	return string(data), true, nil
}

func (s *GdataStore) Save(key, value string) error {
	if s.manager == nil {
		return s.fallback.Save(key, value)
	}
	if err := s.manager.SaveObjectProp(preferencesObject, key, []byte(value)); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}
