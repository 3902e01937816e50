package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preferences is the session's auto-saved preferences blob, per spec.md
// §6's "{celeste_root, last_filepath, snap, draw_interval, …}". The core
// treats it as an opaque read/write record — no field here drives any
// pkg/action or pkg/levelmap behavior; an embedding application reads it
// to restore its own UI state.
type Preferences struct {
	CelesteRoot  string  `yaml:"celeste_root"`
	LastFilepath string  `yaml:"last_filepath"`
	Snap         bool    `yaml:"snap"`
	DrawInterval float64 `yaml:"draw_interval"`
	RecentFiles  []string `yaml:"recent_files,omitempty"`
	ShowGrid     bool    `yaml:"show_grid"`
}

// defaultPreferences returns the preferences a fresh install starts with.
func defaultPreferences() *Preferences {
	return &Preferences{
		Snap:         true,
		DrawInterval: 1.0 / 60.0,
		ShowGrid:     true,
	}
}

// Validate reports whether p's fields are in their legal ranges.
func (p *Preferences) Validate() error {
	if p.DrawInterval <= 0 {
		return fmt.Errorf("draw_interval must be positive, got %v", p.DrawInterval)
	}
	return nil
}

// LoadPreferences reads and validates a YAML preferences file, following
// pkg/dungeon/config.go's LoadConfig: read file, unmarshal, default-fill,
// validate.
func LoadPreferences(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preferences file: %w", err)
	}
	return LoadPreferencesFromBytes(data)
}

// LoadPreferencesFromBytes parses preferences from a byte slice, useful
// for tests and for an embedding application that manages the file itself.
func LoadPreferencesFromBytes(data []byte) (*Preferences, error) {
	p := defaultPreferences()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing preferences YAML: %w", err)
	}
	if p.DrawInterval == 0 {
		p.DrawInterval = 1.0 / 60.0
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating preferences: %w", err)
	}
	return p, nil
}

// Save marshals p and writes it to path.
func (p *Preferences) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences file: %w", err)
	}
	return nil
}
