// Package lyrics handles timed lyrics: the line-oriented LRC text format
// and the lrclib.net lookup service.
//
// # Codec
//
// Parse and Render convert between LRC text and []Line:
//
//	lines := lyrics.Parse("[00:12.34]Hello\n[01:05.00]World")
//	text := lyrics.Render(lines)
//
// Render always emits two-digit centiseconds (truncating milliseconds),
// matching the sidecar format the target player expects. Do not widen it
// to three digits; the asymmetry with Parse is intentional.
//
// # Lookup
//
// Client fetches synchronized lyrics from lrclib.net by track, artist and
// album name. Missing lyrics are (nil, nil), not an error.
package lyrics
