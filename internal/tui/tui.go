// Package tui provides a Bubble Tea terminal user interface for the melon tagger.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hakyung/melon-tagger/internal/config"
	"github.com/hakyung/melon-tagger/internal/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00CD3C")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateURLInput State = iota
	StateLoading
	StateDirInput
	StateReview
	StateApplying
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   session.ProgressLevel
}

// logBuffer collects progress events from the session's goroutines so
// the UI can drain them on its own tick.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	done    int
}

func (b *logBuffer) add(event session.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, LogEntry{Message: event.Message, Level: event.Level})
	if event.Level == session.LevelSuccess || event.Level == session.LevelError {
		b.done++
	}
}

func (b *logBuffer) drain() ([]LogEntry, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.entries
	b.entries = nil
	return entries, b.done
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	urlInput textinput.Model
	dirInput textinput.Model
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logs     []LogEntry
	err      error

	// Tagging context
	ctx    context.Context
	cancel context.CancelFunc

	// Session reference
	sess    *session.Session
	buffer  *logBuffer
	matches []session.FileMatch
	summary session.Summary

	doneFiles int

	// Options
	backup  bool
	rename  bool
	lyrics  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	url := textinput.New()
	url.Placeholder = "https://www.melon.com/album/detail.htm?albumId=..."
	url.Focus()
	url.CharLimit = 500
	url.Width = 60

	dir := textinput.New()
	dir.Placeholder = "/path/to/album/folder"
	dir.CharLimit = 500
	dir.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CD3C"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateURLInput,
		urlInput: url,
		dirInput: dir,
		spinner:  sp,
		progress: prog,
		settings: config.DefaultSettings(),
		logs:     make([]LogEntry, 0),
		buffer:   &logBuffer{},
		backup:   true,
		rename:   true,
		lyrics:   true,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// AlbumLoadedMsg is sent when the album page has been fetched and parsed.
	AlbumLoadedMsg struct {
		Session *session.Session
		Err     error
	}

	// MatchedMsg is sent when local files have been paired with tracks.
	MatchedMsg struct {
		Matches []session.FileMatch
		Err     error
	}

	// ApplyDoneMsg is sent when all files have been tagged.
	ApplyDoneMsg struct {
		Summary session.Summary
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateURLInput {
				return m, tea.Quit
			}
			if m.state == StateLoading || m.state == StateApplying {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			switch {
			case m.state == StateURLInput && m.urlInput.Value() != "":
				m.state = StateLoading
				return m, tea.Batch(m.loadAlbum(), m.spinner.Tick, m.tickProgress())
			case m.state == StateDirInput && m.dirInput.Value() != "":
				return m, m.matchFiles()
			case m.state == StateReview:
				m.state = StateApplying
				return m, tea.Batch(m.applyMatched(), m.spinner.Tick, m.tickProgress())
			}

		case "b":
			if m.state == StateURLInput {
				m.backup = !m.backup
			}

		case "n":
			if m.state == StateURLInput {
				m.rename = !m.rename
			}

		case "l":
			if m.state == StateURLInput {
				m.lyrics = !m.lyrics
			}

		case "v":
			if m.state == StateURLInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new album
				m.state = StateURLInput
				m.logs = nil
				m.err = nil
				m.sess = nil
				m.matches = nil
				m.summary = session.Summary{}
				m.doneFiles = 0
				m.buffer = &logBuffer{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.urlInput.SetValue("")
				m.urlInput.Focus()
				m.dirInput.SetValue("")
				m.dirInput.Blur()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case AlbumLoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.sess = msg.Session
			m.state = StateDirInput
			m.urlInput.Blur()
			m.dirInput.Focus()
		}

	case MatchedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.matches = msg.Matches
			m.state = StateReview
			m.dirInput.Blur()
		}

	case ApplyDoneMsg:
		m.summary = msg.Summary
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		entries, done := m.buffer.drain()
		m.doneFiles = done
		for _, entry := range entries {
			if entry.Level == session.LevelVerbose && !m.verbose {
				continue
			}
			m.logs = append(m.logs, entry)
		}
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}
		if m.state == StateLoading || m.state == StateApplying {
			if m.state == StateApplying && len(m.matches) > 0 {
				percent := float64(m.doneFiles) / float64(len(m.matches))
				cmds = append(cmds, m.progress.SetPercent(percent))
			}
			cmds = append(cmds, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update the focused text input
	switch m.state {
	case StateURLInput:
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateDirInput:
		var cmd tea.Cmd
		m.dirInput, cmd = m.dirInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🍈 Melon Tagger"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Tag local audio files from the Melon catalog"))
	b.WriteString("\n\n")

	switch m.state {
	case StateURLInput:
		b.WriteString(m.viewURLInput())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateDirInput:
		b.WriteString(m.viewDirInput())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateApplying:
		b.WriteString(m.viewApplying())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewURLInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter Melon album URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n\n")

	// Options
	backupCheck := "[ ]"
	if m.backup {
		backupCheck = "[×]"
	}
	renameCheck := "[ ]"
	if m.rename {
		renameCheck = "[×]"
	}
	lyricsCheck := "[ ]"
	if m.lyrics {
		lyricsCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Back up files before tagging (b)\n", backupCheck))
	b.WriteString(fmt.Sprintf("  %s Rename files to catalog names (n)\n", renameCheck))
	b.WriteString(fmt.Sprintf("  %s Fetch lyrics (l)\n", lyricsCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching album info..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDirInput() string {
	var b strings.Builder

	if album := m.sess.Album(); album != nil {
		b.WriteString(successStyle.Render(fmt.Sprintf("Album: %s - %s (%d tracks)", album.Artist, album.Name, len(album.Tracks))))
		b.WriteString("\n\n")
	}
	b.WriteString(subtitleStyle.Render("Enter folder with the audio files:"))
	b.WriteString("\n\n")
	b.WriteString(m.dirInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	matched := 0
	for _, fm := range m.matches {
		if fm.Track != nil {
			matched++
		}
	}
	b.WriteString(successStyle.Render(fmt.Sprintf("Matched %d of %d file(s):", matched, len(m.matches))))
	b.WriteString("\n")
	for _, fm := range m.matches {
		name := filepath.Base(fm.Path)
		if fm.Track == nil {
			b.WriteString(warningStyle.Render(fmt.Sprintf("  ? %s (no match)", name)))
		} else {
			b.WriteString(trackStyle.Render(fmt.Sprintf("  ♪ %s → %02d. %s", name, fm.Track.Number, fm.Track.Title)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewApplying() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Writing tags..."))
	b.WriteString("\n\n")

	var percent float64
	if len(m.matches) > 0 {
		percent = float64(m.doneFiles) / float64(len(m.matches))
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.doneFiles, len(m.matches))))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Tagging Complete!\n\n"+
			"Tagged: %d\n"+
			"Failed: %d",
		m.summary.Applied,
		len(m.summary.Failed),
	))
	b.WriteString(box)
	if len(m.summary.Failed) > 0 {
		b.WriteString("\n\n")
		for _, fe := range m.summary.Failed {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", filepath.Base(fe.Path), fe.Err)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case session.LevelError:
			style = errorStyle
			prefix = "✗"
		case session.LevelWarning:
			style = warningStyle
			prefix = "!"
		case session.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case session.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateURLInput:
		return "enter: load album • b: backup • n: rename • l: lyrics • v: verbose • esc: quit"
	case StateLoading, StateApplying:
		return "esc: cancel"
	case StateDirInput:
		return "enter: match files • ctrl+c: quit"
	case StateReview:
		return "enter: apply tags • ctrl+c: quit"
	case StateComplete, StateError:
		return "r: new album • q: quit"
	}
	return ""
}

// loadAlbum fetches album info and creates the session.
func (m *Model) loadAlbum() tea.Cmd {
	buffer := m.buffer
	ctx := m.ctx
	url := m.urlInput.Value()

	// Apply options
	settings := config.DefaultSettings()
	settings.BackupOriginal = m.backup
	settings.RenameFiles = m.rename
	settings.FetchLyrics = m.lyrics
	settings.FetchSyncedLyrics = m.lyrics

	return func() tea.Msg {
		sess := session.New(settings, zerolog.Nop(), buffer.add)
		if err := sess.LoadAlbum(ctx, url); err != nil {
			return AlbumLoadedMsg{Err: err}
		}
		return AlbumLoadedMsg{Session: sess}
	}
}

// matchFiles pairs the folder's mp3 files with the album's tracks.
func (m *Model) matchFiles() tea.Cmd {
	sess := m.sess
	dir := m.dirInput.Value()

	return func() tea.Msg {
		paths, err := filepath.Glob(filepath.Join(dir, "*.mp3"))
		if err != nil {
			return MatchedMsg{Err: err}
		}
		if len(paths) == 0 {
			return MatchedMsg{Err: fmt.Errorf("no mp3 files in %s", dir)}
		}
		sort.Strings(paths)
		return MatchedMsg{Matches: sess.MatchFiles(paths)}
	}
}

// applyMatched tags all matched files in background.
func (m *Model) applyMatched() tea.Cmd {
	sess := m.sess
	ctx := m.ctx
	matches := m.matches

	return func() tea.Msg {
		summary := sess.ApplyMatched(ctx, matches)
		return ApplyDoneMsg{Summary: summary}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
