package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakyung/melon-tagger/internal/audio"
	"github.com/hakyung/melon-tagger/internal/config"
	"github.com/hakyung/melon-tagger/internal/model"
)

// fakeStore records tag writes without touching real ID3 containers.
type fakeStore struct {
	mu       sync.Mutex
	writes   map[string]audio.Fields
	reads    map[string]audio.Fields
	failPath string
}

func newFakeStore() *fakeStore {
	return &fakeStore{writes: make(map[string]audio.Fields), reads: make(map[string]audio.Fields)}
}

func (f *fakeStore) Read(path string) (audio.Fields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[path], nil
}

func (f *fakeStore) Write(path string, fields audio.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path == f.failPath {
		return fmt.Errorf("tag %s: container is corrupt", path)
	}
	f.writes[path] = fields
	return nil
}

func offlineSettings() *config.Settings {
	settings := config.DefaultSettings()
	settings.FetchLyrics = false
	settings.FetchSyncedLyrics = false
	settings.EmbedCover = false
	return settings
}

func newTestSession(settings *config.Settings, store audio.Store, album *model.Album) *Session {
	sess := New(settings, zerolog.Nop(), nil)
	sess.store = store
	sess.album = album
	return sess
}

func testAlbum() *model.Album {
	album := &model.Album{Name: "The Winning", Artist: "IU", Genre: "발라드"}
	album.Tracks = []*model.Track{
		model.NewTrack(album, 1, 1, "Shh..", "IU", "1001"),
		model.NewTrack(album, 2, 1, "Holssi", "IU", "1002"),
		model.NewTrack(album, 3, 1, "Love wins all", "IU", "1003"),
	}
	return album
}

func writeTestFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyTrackTagsBacksUpAndRenames(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "03 Love wins all.mp3")

	store := newFakeStore()
	album := testAlbum()
	sess := newTestSession(offlineSettings(), store, album)

	result, err := sess.ApplyTrack(context.Background(), path, album.Tracks[2])
	if err != nil {
		t.Fatalf("ApplyTrack() error = %v", err)
	}

	wantPath := filepath.Join(dir, "IU-03-Love wins all.mp3")
	if result.Path != wantPath {
		t.Errorf("result.Path = %q, want %q", result.Path, wantPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if result.BackupPath != path+".bak" {
		t.Errorf("result.BackupPath = %q, want %q", result.BackupPath, path+".bak")
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("backup missing: %v", err)
	}

	fields, ok := store.writes[path]
	if !ok {
		t.Fatalf("no tag write recorded for %s", path)
	}
	if fields.Title != "Love wins all" || fields.Artist != "IU" || fields.TrackNumber != 3 {
		t.Errorf("written fields = %+v", fields)
	}
	if fields.Album != "The Winning" || fields.Genre != "발라드" {
		t.Errorf("album fields not copied down: %+v", fields)
	}
}

func TestApplyTrackRenameCollision(t *testing.T) {
	dir := t.TempDir()
	// The target name is already taken by another file.
	writeTestFile(t, dir, "IU-01-Shh...mp3")
	path := writeTestFile(t, dir, "unnamed.mp3")

	album := testAlbum()
	settings := offlineSettings()
	settings.BackupOriginal = false
	sess := newTestSession(settings, newFakeStore(), album)

	result, err := sess.ApplyTrack(context.Background(), path, album.Tracks[0])
	if err != nil {
		t.Fatalf("ApplyTrack() error = %v", err)
	}
	want := filepath.Join(dir, "IU-01-Shh..(2).mp3")
	if result.Path != want {
		t.Errorf("result.Path = %q, want %q", result.Path, want)
	}
}

func TestRenameTargetExhaustion(t *testing.T) {
	dir := t.TempDir()
	album := testAlbum()
	track := album.Tracks[0]

	base := model.TargetFileName(track)
	writeTestFile(t, dir, base+".mp3")
	for i := 2; i <= 99; i++ {
		writeTestFile(t, dir, fmt.Sprintf("%s(%d).mp3", base, i))
	}
	path := writeTestFile(t, dir, "unnamed.mp3")

	sess := newTestSession(offlineSettings(), newFakeStore(), album)
	if _, err := sess.renameTarget(path, track); err == nil {
		t.Error("renameTarget() error = nil, want exhaustion error")
	}
}

func TestRenameTargetAlreadyNamed(t *testing.T) {
	dir := t.TempDir()
	album := testAlbum()
	path := writeTestFile(t, dir, "IU-01-Shh...mp3")

	sess := newTestSession(offlineSettings(), newFakeStore(), album)
	target, err := sess.renameTarget(path, album.Tracks[0])
	if err != nil {
		t.Fatalf("renameTarget() error = %v", err)
	}
	if target != path {
		t.Errorf("renameTarget() = %q, want unchanged %q", target, path)
	}
}

func TestMatchFiles(t *testing.T) {
	album := testAlbum()
	store := newFakeStore()
	store.reads["/music/mystery.mp3"] = audio.Fields{Title: "Holssi"}
	sess := newTestSession(offlineSettings(), store, album)

	matches := sess.MatchFiles([]string{
		"/music/02 - Holssi.mp3",
		"/music/love wins all.mp3",
		"/music/mystery.mp3",
		"/music/nothing here.mp3",
	})
	if len(matches) != 4 {
		t.Fatalf("len(matches) = %d, want 4", len(matches))
	}
	if matches[0].Track != album.Tracks[1] {
		t.Errorf("numeric prefix match failed: got %+v", matches[0].Track)
	}
	if matches[1].Track != album.Tracks[2] {
		t.Errorf("title match failed: got %+v", matches[1].Track)
	}
	if matches[2].Track != album.Tracks[1] {
		t.Errorf("tag-title fallback failed: got %+v", matches[2].Track)
	}
	if matches[3].Track != nil {
		t.Errorf("unmatched file got track %+v", matches[3].Track)
	}
}

func TestApplyMatchedZeroConcurrencyCompletes(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "01 Shh.mp3")

	album := testAlbum()
	settings := offlineSettings()
	settings.BackupOriginal = false
	settings.RenameFiles = false
	settings.MaxConcurrentWrites = 0
	sess := newTestSession(settings, newFakeStore(), album)

	done := make(chan Summary, 1)
	go func() {
		done <- sess.ApplyMatched(context.Background(), []FileMatch{
			{Path: path, Track: album.Tracks[0]},
		})
	}()

	select {
	case summary := <-done:
		if summary.Applied != 1 {
			t.Errorf("Applied = %d, want 1", summary.Applied)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ApplyMatched did not return with max_concurrent_writes=0")
	}
}

func TestMatchFilesBeforeLoadAlbum(t *testing.T) {
	sess := New(offlineSettings(), zerolog.Nop(), nil)

	matches := sess.MatchFiles([]string{"/music/a.mp3", "/music/b.mp3"})
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	for _, fm := range matches {
		if fm.Track != nil {
			t.Errorf("file %s matched %+v with no album loaded", fm.Path, fm.Track)
		}
	}
}

func TestApplyMatchedCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "01 Shh.mp3")
	bad := writeTestFile(t, dir, "02 Holssi.mp3")

	album := testAlbum()
	settings := offlineSettings()
	settings.BackupOriginal = false
	settings.RenameFiles = false
	store := newFakeStore()
	store.failPath = bad
	sess := newTestSession(settings, store, album)

	summary := sess.ApplyMatched(context.Background(), []FileMatch{
		{Path: good, Track: album.Tracks[0]},
		{Path: bad, Track: album.Tracks[1]},
		{Path: filepath.Join(dir, "unmatched.mp3"), Track: nil},
	})

	if summary.Applied != 1 {
		t.Errorf("Applied = %d, want 1", summary.Applied)
	}
	if len(summary.Failed) != 2 {
		t.Fatalf("len(Failed) = %d, want 2", len(summary.Failed))
	}
	if _, ok := store.writes[good]; !ok {
		t.Error("batch stopped before the good file was tagged")
	}
}
