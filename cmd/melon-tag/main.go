package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/hakyung/melon-tagger/internal/config"
	"github.com/hakyung/melon-tagger/internal/session"
)

func main() {
	// Command line flags
	var (
		urlFlag      = flag.String("url", "", "Melon album page URL")
		fileFlag     = flag.String("file", "", "Tag a single audio file")
		searchFlag   = flag.String("search", "", "Track title to match the single file against (with -file)")
		dirFlag      = flag.String("dir", "", "Tag every mp3 in a folder")
		configFlag   = flag.String("config", "", "Path to config file")
		noBackupFlag = flag.Bool("no-backup", false, "Skip the .bak backup before tagging")
		noCoverFlag  = flag.Bool("no-cover", false, "Skip embedding cover art")
		noLyricsFlag = flag.Bool("no-lyrics", false, "Skip fetching lyrics")
		noSyncedFlag = flag.Bool("no-synced", false, "Skip fetching timed lyrics and .lrc sidecars")
		noRenameFlag = flag.Bool("no-rename", false, "Keep current filenames")
		dryRunFlag   = flag.Bool("dry-run", false, "Show matches without writing anything")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if *urlFlag == "" || (*fileFlag == "" && *dirFlag == "") {
		fmt.Println("Melon Tagger - Tag local audio files from the Melon catalog")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  melon-tag -url <album URL> -dir <folder> [options]")
		fmt.Println("  melon-tag -url <album URL> -file <file> [-search <title>] [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: melon-tag-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *noBackupFlag {
		settings.BackupOriginal = false
	}
	if *noCoverFlag {
		settings.EmbedCover = false
	}
	if *noLyricsFlag {
		settings.FetchLyrics = false
	}
	if *noSyncedFlag {
		settings.FetchSyncedLyrics = false
		settings.WriteLRCSidecar = false
	}
	if *noRenameFlag {
		settings.RenameFiles = false
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verboseFlag {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.WarnLevel)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	sess := session.New(settings, log, printProgress(*verboseFlag))

	color.New(color.FgGreen, color.Bold).Println("Melon Tagger")
	fmt.Println(strings.Repeat("━", 40))
	fmt.Println()

	if err := sess.LoadAlbum(ctx, *urlFlag); err != nil {
		color.Red("Error loading album: %v", err)
		os.Exit(1)
	}

	if *fileFlag != "" {
		runSingle(ctx, sess, *fileFlag, *searchFlag, *dryRunFlag)
		return
	}
	runBulk(ctx, sess, *dirFlag, *dryRunFlag)
}

// printProgress returns the session progress callback for CLI output.
func printProgress(verbose bool) func(session.ProgressEvent) {
	return func(event session.ProgressEvent) {
		if event.Level == session.LevelVerbose && !verbose {
			return
		}
		switch event.Level {
		case session.LevelError:
			color.Red("✗ %s", event.Message)
		case session.LevelWarning:
			color.Yellow("! %s", event.Message)
		case session.LevelSuccess:
			color.Green("✓ %s", event.Message)
		case session.LevelInfo:
			color.Cyan("› %s", event.Message)
		default:
			fmt.Println("  " + event.Message)
		}
	}
}

// runSingle tags one file against one track, picked by the search query
// or, failing that, by the file's own name.
func runSingle(ctx context.Context, sess *session.Session, path, query string, dryRun bool) {
	if query == "" {
		query = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	track := sess.FindTrack(query)
	if track == nil {
		color.Red("No track matched %q", query)
		os.Exit(1)
	}

	fmt.Printf("%s → %02d. %s\n", filepath.Base(path), track.Number, track.Title)
	if dryRun {
		fmt.Println("\n[Dry run - not writing]")
		return
	}

	result, err := sess.ApplyTrack(ctx, path, track)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	fmt.Println()
	color.Green("✨ Tagged %s", result.Path)
}

// runBulk matches every mp3 in the folder and tags the matched ones.
func runBulk(ctx context.Context, sess *session.Session, dir string, dryRun bool) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.mp3"))
	if err != nil {
		color.Red("Error listing %s: %v", dir, err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		color.Red("No mp3 files in %s", dir)
		os.Exit(1)
	}
	sort.Strings(paths)

	matches := sess.MatchFiles(paths)
	for _, fm := range matches {
		name := filepath.Base(fm.Path)
		if fm.Track == nil {
			color.Yellow("? %s (no match)", name)
		} else {
			fmt.Printf("♪ %s → %02d. %s\n", name, fm.Track.Number, fm.Track.Title)
		}
	}

	if dryRun {
		fmt.Println("\n[Dry run - not writing]")
		return
	}

	fmt.Println()
	summary := sess.ApplyMatched(ctx, matches)

	fmt.Println()
	fmt.Println(strings.Repeat("━", 40))
	color.Green("✨ Complete! Tagged %d/%d files", summary.Applied, len(matches))
	if len(summary.Failed) > 0 {
		for _, fe := range summary.Failed {
			color.Red("   ✗ %s: %v", filepath.Base(fe.Path), fe.Err)
		}
		os.Exit(1)
	}
}
