// Package session coordinates a full tagging run against one catalog
// album: page fetch and parse, local-file matching, lyric lookup, tag
// writes, backups, and renames.
//
// A Session is driven in three steps:
//
//	sess := session.New(settings, log, onProgress)
//	sess.LoadAlbum(ctx, albumURL)
//	matches := sess.MatchFiles(paths)
//	summary := sess.ApplyMatched(ctx, matches)
//
// Single files go through FindTrack and ApplyTrack directly.
package session
