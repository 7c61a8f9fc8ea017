package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBackupFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(path, []byte("original audio"), 0644); err != nil {
		t.Fatal(err)
	}

	bak, err := BackupFile(context.Background(), path)
	if err != nil {
		t.Fatalf("BackupFile() error = %v", err)
	}
	if bak != path+".bak" {
		t.Errorf("BackupFile() = %q, want %q", bak, path+".bak")
	}

	data, err := os.ReadFile(bak)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original audio" {
		t.Errorf("backup content = %q, want %q", string(data), "original audio")
	}
}

func TestBackupFileKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(path, []byte("retagged audio"), 0644); err != nil {
		t.Fatal(err)
	}
	// Backup from a previous run, before the file was modified.
	if err := os.WriteFile(path+".bak", []byte("original audio"), 0644); err != nil {
		t.Fatal(err)
	}

	bak, err := BackupFile(context.Background(), path)
	if err != nil {
		t.Fatalf("BackupFile() error = %v", err)
	}

	data, err := os.ReadFile(bak)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original audio" {
		t.Errorf("existing backup was overwritten: content = %q", string(data))
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	if err := os.WriteFile(src, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("copied content = %q, want %q", string(data), "payload")
	}
}
