// Package prefs persists player preferences between runs through gdata.
package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/siraegi-run/internal/config"
)

// AppName is the gdata application directory.
const AppName = "siraegi-run"

const prefsKey = "prefs"

// Prefs are the remembered player choices.
type Prefs struct {
	Difficulty string `json:"difficulty"`
	SkipIntro  bool   `json:"skipIntro"`
}

// Default returns the preferences of a first launch.
func Default() Prefs {
	return Prefs{Difficulty: string(config.DifficultyNormal)}
}

// Preset returns the stored difficulty, falling back to normal for
// unknown values.
func (p Prefs) Preset() config.DifficultyPreset {
	if preset, ok := config.ParsePreset(p.Difficulty); ok {
		return preset
	}
	return config.DifficultyNormal
}

// ItemStore is the slice of gdata.Manager the store needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store reads and writes preferences.
type Store struct {
	items ItemStore
}

// Open opens the per-user gdata storage.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("prefs: cannot open storage: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps an item store.
func NewStore(items ItemStore) *Store {
	return &Store{items: items}
}

// Load returns the saved preferences, or the defaults when nothing was saved.
func (s *Store) Load() (Prefs, error) {
	data, err := s.items.LoadItem(prefsKey)
	if err != nil {
		return Default(), fmt.Errorf("prefs: cannot load: %w", err)
	}
	return Decode(data)
}

// Save writes the preferences.
func (s *Store) Save(p Prefs) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.items.SaveItem(prefsKey, data); err != nil {
		return fmt.Errorf("prefs: cannot save: %w", err)
	}
	return nil
}

// Encode serialises preferences.
func Encode(p Prefs) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("prefs: cannot encode: %w", err)
	}
	return data, nil
}

// Decode parses saved preferences. Empty data yields the defaults and
// missing fields keep their default values.
func Decode(data []byte) (Prefs, error) {
	p := Default()
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("prefs: cannot decode: %w", err)
	}
	return p, nil
}
