package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hakyung/melon-tagger/internal/model"
)

// Confidence classifies how a filename match was made.
type Confidence int

const (
	// ConfidenceNone means no track matched.
	ConfidenceNone Confidence = iota

	// ConfidenceFuzzy means a normalized track title was found inside the
	// normalized filename stem.
	ConfidenceFuzzy

	// ConfidenceExact means the filename's numeric prefix equalled a track
	// number.
	ConfidenceExact
)

var (
	// normalizeChars is the character class removed before comparison:
	// whitespace plus the decoration characters that vary between a
	// catalog title and a ripped filename.
	normalizeChars = regexp.MustCompile(`[\s\-_()\[\]]`)

	// numericPrefix matches a leading track number in a filename stem:
	// digits followed by one of the common separators.
	numericPrefix = regexp.MustCompile(`^(\d+)[.\s_-]`)
)

func normalize(s string) string {
	return normalizeChars.ReplaceAllString(strings.ToLower(s), "")
}

// FindBest returns the track best matching a free-text search, or nil.
//
// The ladder is strict-first, scanning tracks in catalog order at each
// rung: case-insensitive exact title equality, then equality after
// normalization, then substring containment in either direction. A query
// matching nothing returns nil; that is an outcome callers branch on, not
// an error.
func FindBest(tracks []*model.Track, query string) *model.Track {
	queryLower := strings.ToLower(query)
	for _, track := range tracks {
		if strings.ToLower(track.Title) == queryLower {
			return track
		}
	}

	queryNorm := normalize(query)
	for _, track := range tracks {
		if normalize(track.Title) == queryNorm {
			return track
		}
	}

	if queryNorm != "" {
		for _, track := range tracks {
			titleNorm := normalize(track.Title)
			if titleNorm == "" {
				continue
			}
			if strings.Contains(titleNorm, queryNorm) || strings.Contains(queryNorm, titleNorm) {
				return track
			}
		}
	}

	return nil
}

// ByFilename matches a local file's name stem against the track list.
//
// A numeric prefix ("02 - ...", "02.…", "02_…") wins outright when it
// equals some track's number, because it is unambiguous and cheap. Only
// files without a usable prefix fall back to title containment. Both rungs
// favor precision over recall: a wrong-but-plausible match is worse than
// none, since unmatched files are surfaced for manual handling instead of
// silently mis-tagged.
//
// Track numbers need not be unique (multi-disc pages restart numbering
// per disc); when several tracks share the prefix number, the last one
// in catalog order wins.
func ByFilename(tracks []*model.Track, stem string) (*model.Track, Confidence) {
	if m := numericPrefix.FindStringSubmatch(stem); m != nil {
		if num, err := strconv.Atoi(m[1]); err == nil {
			for i := len(tracks) - 1; i >= 0; i-- {
				if tracks[i].Number == num {
					return tracks[i], ConfidenceExact
				}
			}
		}
	}

	stemNorm := normalize(stem)
	for _, track := range tracks {
		titleNorm := normalize(track.Title)
		if titleNorm != "" && strings.Contains(stemNorm, titleNorm) {
			return track, ConfidenceFuzzy
		}
	}

	return nil, ConfidenceNone
}
