package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hakyung/melon-tagger/internal/lyrics"
)

// WriteLRC writes timed lyrics as an .lrc file next to the audio file,
// replacing the audio extension, and returns the sidecar's path. Players
// that ignore embedded lyrics frames pick the sidecar up by name, so it
// must be written after any rename of the audio file.
func WriteLRC(audioPath string, lines []lyrics.Line) (string, error) {
	ext := filepath.Ext(audioPath)
	lrcPath := strings.TrimSuffix(audioPath, ext) + ".lrc"

	content := lyrics.Render(lines)
	if err := os.WriteFile(lrcPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write lyrics sidecar %s: %w", lrcPath, err)
	}
	return lrcPath, nil
}
