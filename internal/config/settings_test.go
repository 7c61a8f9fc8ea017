package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *settings != *DefaultSettings() {
		t.Errorf("Load() of missing file = %+v, want defaults", settings)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")

	saved := DefaultSettings()
	saved.RenameFiles = false
	saved.CoverMaxSize = 500
	saved.MaxConcurrentWrites = 4
	if err := saved.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *saved {
		t.Errorf("Load() = %+v, want %+v", loaded, saved)
	}
}
