// Package config provides configuration management for the melon tagger.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Backups enabled, covers embedded at max 1000px,
//	// lyrics fetched, files renamed to the catalog names
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.RenameFiles = false
//	err := settings.Save("/path/to/config.json")
package config
