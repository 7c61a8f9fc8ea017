package config

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Settings holds all configuration options.
type Settings struct {
	// Safety settings
	BackupOriginal bool `json:"backup_original"`

	// Cover art settings
	EmbedCover        bool `json:"embed_cover"`
	ResizeCover       bool `json:"resize_cover"`
	CoverMaxSize      int  `json:"cover_max_size"`
	ConvertCoverToJPG bool `json:"convert_cover_to_jpg"`

	// Lyrics settings
	FetchLyrics       bool `json:"fetch_lyrics"`
	FetchSyncedLyrics bool `json:"fetch_synced_lyrics"`
	WriteLRCSidecar   bool `json:"write_lrc_sidecar"`

	// File naming
	RenameFiles bool `json:"rename_files"`

	// Concurrency
	MaxConcurrentWrites int `json:"max_concurrent_writes"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BackupOriginal: true,

		EmbedCover:        true,
		ResizeCover:       true,
		CoverMaxSize:      1000,
		ConvertCoverToJPG: true,

		FetchLyrics:       true,
		FetchSyncedLyrics: true,
		WriteLRCSidecar:   true,

		RenameFiles: true,

		MaxConcurrentWrites: 1,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
