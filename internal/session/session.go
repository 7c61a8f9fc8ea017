package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hakyung/melon-tagger/internal/audio"
	"github.com/hakyung/melon-tagger/internal/config"
	httpx "github.com/hakyung/melon-tagger/internal/http"
	ioutils "github.com/hakyung/melon-tagger/internal/io"
	"github.com/hakyung/melon-tagger/internal/lyrics"
	"github.com/hakyung/melon-tagger/internal/match"
	"github.com/hakyung/melon-tagger/internal/melon"
	"github.com/hakyung/melon-tagger/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a tagging progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// FileMatch pairs a local file with the catalog track chosen for it.
// Track is nil when no track could be matched.
type FileMatch struct {
	Path       string
	Track      *model.Track
	Confidence match.Confidence
}

// FileError records a file that could not be tagged and why.
type FileError struct {
	Path string
	Err  error
}

// Summary reports the outcome of a bulk apply. A batch never stops on a
// single file's failure, so Applied and Failed together cover every
// matched file.
type Summary struct {
	Applied int
	Failed  []FileError
}

// ApplyResult reports where a tagged file and its side artifacts ended up.
type ApplyResult struct {
	// Path is the file's final path, after any rename.
	Path string
	// BackupPath is the pre-write backup, empty when backups are disabled.
	BackupPath string
	// LRCPath is the timed-lyrics sidecar, empty when none was written.
	LRCPath string
}

// Session coordinates one album-tagging run: load a catalog album, match
// local files against its tracks, and apply tags to the files.
type Session struct {
	settings *config.Settings
	crawler  *melon.Crawler
	lrclib   *lyrics.Client
	store    audio.Store
	images   *ioutils.ImageService
	log      zerolog.Logger

	album *model.Album

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// New creates a Session. onProgress may be nil.
func New(settings *config.Settings, log zerolog.Logger, onProgress func(ProgressEvent)) *Session {
	return &Session{
		settings:   settings,
		crawler:    melon.NewCrawler(httpx.NewClient(httpx.MelonHeaders()), log),
		lrclib:     lyrics.NewClient(),
		store:      audio.NewID3Store(),
		images:     ioutils.NewImageService(),
		log:        log,
		onProgress: onProgress,
	}
}

// LoadAlbum fetches and parses the album page, preparing its cover art
// per the settings. Cover preparation failures are reported but do not
// fail the load.
func (s *Session) LoadAlbum(ctx context.Context, url string) error {
	s.progress(ProgressEvent{Message: fmt.Sprintf("Fetching album: %s", url), Level: LevelVerbose})

	album, err := s.crawler.FetchAlbum(ctx, url)
	if err != nil {
		return err
	}

	if len(album.CoverData) > 0 {
		if err := s.prepareCover(ctx, album); err != nil {
			s.log.Warn().Err(err).Msg("cover preparation failed")
			s.progress(ProgressEvent{Message: fmt.Sprintf("Cover preparation failed: %v", err), Level: LevelWarning})
		}
	}

	s.album = album
	s.progress(ProgressEvent{
		Message: fmt.Sprintf("Found album: %s - %s (%d tracks)", album.Artist, album.Name, len(album.Tracks)),
		Level:   LevelInfo,
	})
	return nil
}

// Album returns the loaded album, or nil before LoadAlbum succeeds.
func (s *Session) Album() *model.Album {
	return s.album
}

// FindTrack picks the loaded album's best track for a textual query.
// It returns nil when no album is loaded or nothing matches.
func (s *Session) FindTrack(query string) *model.Track {
	if s.album == nil {
		return nil
	}
	return match.FindBest(s.album.Tracks, query)
}

// MatchFiles pairs each file with a track by filename, falling back to
// the title already stored in the file's tags. Every input path gets an
// entry; unmatched files carry a nil Track. Before an album is loaded
// every file is unmatched.
func (s *Session) MatchFiles(paths []string) []FileMatch {
	matches := make([]FileMatch, 0, len(paths))
	if s.album == nil {
		for _, path := range paths {
			matches = append(matches, FileMatch{Path: path})
		}
		return matches
	}
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		track, confidence := match.ByFilename(s.album.Tracks, stem)

		if track == nil {
			if fields, err := s.store.Read(path); err == nil && fields.Title != "" {
				if t := match.FindBest(s.album.Tracks, fields.Title); t != nil {
					track, confidence = t, match.ConfidenceFuzzy
				}
			}
		}

		if track == nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("No track matched for %s", filepath.Base(path)), Level: LevelWarning})
		} else {
			s.progress(ProgressEvent{
				Message: fmt.Sprintf("%s -> %02d. %s", filepath.Base(path), track.Number, track.Title),
				Level:   LevelVerbose,
			})
		}
		matches = append(matches, FileMatch{Path: path, Track: track, Confidence: confidence})
	}
	return matches
}

// ApplyTrack tags one file with one track: backup, lyric fetch, tag
// write, rename, sidecar, in that order. The sidecar is written after
// the rename so its name tracks the file's final name.
func (s *Session) ApplyTrack(ctx context.Context, path string, track *model.Track) (ApplyResult, error) {
	result := ApplyResult{Path: path}

	if s.settings.BackupOriginal {
		backupPath, err := ioutils.BackupFile(ctx, path)
		if err != nil {
			return result, fmt.Errorf("backup %s: %w", path, err)
		}
		result.BackupPath = backupPath
	}

	fields := audio.Fields{
		Title:       track.Title,
		Artist:      track.Artist,
		Album:       track.AlbumName,
		AlbumArtist: track.AlbumArtist,
		Genre:       track.Genre,
		TrackNumber: track.Number,
		DiscNumber:  track.DiscNumber,
	}
	if s.settings.EmbedCover && s.album != nil {
		fields.Cover = s.album.CoverData
	}

	var synced []lyrics.Line
	if s.settings.FetchLyrics {
		detail, err := s.crawler.FetchTrackDetail(ctx, track.SongID)
		if err != nil {
			s.log.Warn().Err(err).Str("song_id", track.SongID).Msg("track detail fetch failed")
		} else {
			fields.Lyrics = detail.Lyrics
			// The song page carries a per-track genre which is more
			// specific than the album's.
			if detail.Genre != "" {
				fields.Genre = detail.Genre
			}
		}
	}
	if s.settings.FetchSyncedLyrics {
		lines, err := s.lrclib.FetchSynced(ctx, track.Title, track.Artist, track.AlbumName)
		if err != nil {
			s.log.Warn().Err(err).Str("title", track.Title).Msg("synced lyrics fetch failed")
		} else {
			synced = lines
		}
	}

	if err := s.store.Write(path, fields); err != nil {
		return result, fmt.Errorf("tag %s: %w", path, err)
	}

	if s.settings.RenameFiles {
		target, err := s.renameTarget(path, track)
		if err != nil {
			return result, err
		}
		if target != path {
			if err := os.Rename(path, target); err != nil {
				return result, fmt.Errorf("rename %s: %w", path, err)
			}
			result.Path = target
		}
	}

	if s.settings.WriteLRCSidecar && len(synced) > 0 {
		lrcPath, err := audio.WriteLRC(result.Path, synced)
		if err != nil {
			return result, err
		}
		result.LRCPath = lrcPath
	}

	s.progress(ProgressEvent{
		Message: fmt.Sprintf("Tagged %s", filepath.Base(result.Path)),
		Level:   LevelSuccess,
	})
	return result, nil
}

// ApplyMatched tags every matched file, at most MaxConcurrentWrites at a
// time. Unmatched and failed files are collected in the summary; the
// batch always runs to completion.
func (s *Session) ApplyMatched(ctx context.Context, matches []FileMatch) Summary {
	var summary Summary

	g, ctx := errgroup.WithContext(ctx)
	// A limit below 1 would forbid all goroutines and block the first Go
	// call forever, so a misconfigured value degrades to serial writes.
	limit := s.settings.MaxConcurrentWrites
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, fm := range matches {
		fm := fm // capture
		if fm.Track == nil {
			summary.Failed = append(summary.Failed, FileError{Path: fm.Path, Err: fmt.Errorf("no matching track")})
			continue
		}
		g.Go(func() error {
			if _, err := s.ApplyTrack(ctx, fm.Path, fm.Track); err != nil {
				s.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
				s.mu.Lock()
				summary.Failed = append(summary.Failed, FileError{Path: fm.Path, Err: err})
				s.mu.Unlock()
				return nil
			}
			s.mu.Lock()
			summary.Applied++
			s.mu.Unlock()
			return nil
		})
	}

	g.Wait()

	s.progress(ProgressEvent{
		Message: fmt.Sprintf("Done: %d tagged, %d failed", summary.Applied, len(summary.Failed)),
		Level:   LevelInfo,
	})
	return summary
}

// renameTarget returns the path the file should be renamed to, keeping
// its extension and directory. On a name collision it tries numbered
// variants "(2)" through "(99)" and errors out when all are taken.
func (s *Session) renameTarget(path string, track *model.Track) (string, error) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := model.TargetFileName(track)

	target := filepath.Join(dir, base+ext)
	if target == path {
		return path, nil
	}
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return target, nil
	}

	for i := 2; i <= 99; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s(%d)%s", base, i, ext))
		if candidate == path {
			return path, nil
		}
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("rename %s: no free name for %q", path, base+ext)
}

func (s *Session) prepareCover(ctx context.Context, album *model.Album) error {
	var err error
	data := album.CoverData

	if s.settings.ResizeCover {
		data, err = s.images.ResizeImage(ctx, data, s.settings.CoverMaxSize, s.settings.CoverMaxSize)
		if err != nil {
			return err
		}
	} else if s.settings.ConvertCoverToJPG {
		data, err = s.images.ConvertToJPEG(ctx, data)
		if err != nil {
			return err
		}
	}

	album.CoverData = data
	return nil
}

func (s *Session) progress(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}
