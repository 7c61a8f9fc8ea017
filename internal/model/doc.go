// Package model defines the core data structures shared across
// melon-tagger.
//
// # Album and Track
//
// Album is the result of parsing one Melon album page; Track is one row of
// its track table. Album-level fields (name, artist, genre) are copied into
// each Track at construction time so a track can be applied to a file
// without holding a reference back to the album:
//
//	track := model.NewTrack(album, 3, 1, "Title", "Artist", "12345678")
//	// track.AlbumName == album.Name, and stays that way even if the
//	// album value is mutated later
//
// # File naming
//
// TargetFileName computes the rename target for a matched track
// ("Artist-03-Title"), and SafeFileName strips the characters that cannot
// appear in file names.
package model
