package model

import (
	"fmt"
	"regexp"
	"strings"
)

// unsafeChars matches the characters that cannot appear in file names on
// any of the supported platforms.
var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// SafeFileName strips path-unsafe characters from a name component and
// trims surrounding whitespace.
//
// Unlike replacement-with-underscore schemes, characters are removed
// entirely so the resulting names match what the original files on a
// user's player look like.
//
//	SafeFileName(`Song: Part 1/2`) // "Song Part 12"
func SafeFileName(name string) string {
	return strings.TrimSpace(unsafeChars.ReplaceAllString(name, ""))
}

// TargetFileName returns the deterministic rename target for a matched
// track, without extension: <artist>-<two-digit track number>-<title>.
func TargetFileName(t *Track) string {
	return fmt.Sprintf("%s-%02d-%s", SafeFileName(t.Artist), t.Number, SafeFileName(t.Title))
}
