package session_test

import (
	"path/filepath"
	"testing"

	"github.com/levelsmith/levelsmith/pkg/session"
)

func TestLoadPreferencesFromBytesDefaultsMissingFields(t *testing.T) {
	p, err := session.LoadPreferencesFromBytes([]byte(`celeste_root: /games/celeste`))
	if err != nil {
		t.Fatalf("LoadPreferencesFromBytes: %v", err)
	}
	if p.CelesteRoot != "/games/celeste" {
		t.Fatalf("CelesteRoot = %q", p.CelesteRoot)
	}
	if !p.Snap {
		t.Fatalf("Snap default = false, want true")
	}
	if p.DrawInterval <= 0 {
		t.Fatalf("DrawInterval default = %v, want > 0", p.DrawInterval)
	}
}

func TestLoadPreferencesFromBytesRejectsInvalidDrawInterval(t *testing.T) {
	_, err := session.LoadPreferencesFromBytes([]byte("draw_interval: -1\n"))
	if err == nil {
		t.Fatalf("expected a validation error for a negative draw_interval")
	}
}

func TestPreferencesSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")

	p, err := session.LoadPreferencesFromBytes(nil)
	if err != nil {
		t.Fatalf("LoadPreferencesFromBytes(nil): %v", err)
	}
	p.LastFilepath = "/maps/1.bin"
	p.RecentFiles = []string{"/maps/1.bin", "/maps/2.bin"}
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := session.LoadPreferences(path)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded.LastFilepath != "/maps/1.bin" || len(loaded.RecentFiles) != 2 {
		t.Fatalf("round-tripped preferences = %+v", loaded)
	}
}
