// Package ioutils provides file system utilities for the melon tagger.
//
// This package contains functions for:
//   - File copying and writing
//   - Pre-write backups of audio files
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"io"
	"os"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Returns an error if:
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile(ctx, "/path/to/source.mp3", "/path/to/dest.mp3")
func CopyFile(ctx context.Context, src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// BackupFile copies a file to a sibling path with a ".bak" suffix before
// it is modified, and returns the backup's path.
//
// If a backup already exists it is kept as-is and no copy is made: the
// first backup is the one that predates any tagging, and later runs must
// not overwrite it with an already-modified file.
//
// Example:
//
//	bak, err := BackupFile(ctx, "/music/track.mp3")
//	// bak == "/music/track.mp3.bak"
func BackupFile(ctx context.Context, path string) (string, error) {
	backupPath := path + ".bak"

	if _, err := os.Stat(backupPath); err == nil {
		return backupPath, nil
	}

	if err := CopyFile(ctx, path, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
