// Package audio writes metadata into audio files: ID3v2 text frames,
// embedded cover art, unsynchronized lyrics, and timed-lyrics sidecar
// files for players that read .lrc by filename.
package audio
