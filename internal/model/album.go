package model

// Album represents one Melon album page as a single parse result.
//
// Album is built in one pass over the page HTML and is treated as an
// immutable value afterwards, with two documented exceptions: CoverData is
// filled in by a follow-up image fetch, and a single track's Genre/Lyrics
// may be overridden by a later detail-page fetch. Albums are never
// persisted; every run starts from a fresh fetch.
//
// Example:
//
//	album := parser.ParseAlbumPage(html)
//	fmt.Printf("%s - %s (%d tracks)\n", album.Artist, album.Name, len(album.Tracks))
type Album struct {
	// Name is the album title with decorative badge labels stripped.
	Name string

	// Artist is the album artist name. Falls back to the page's og:title
	// metadata when no artist-name element is present.
	Artist string

	// Genre is the album genre text from the page's definition list.
	Genre string

	// ReleaseDate is the release date exactly as displayed on the page.
	// It is catalog-defined free text and is not parsed further.
	ReleaseDate string

	// CoverURL is the og:image metadata value. Empty if absent.
	CoverURL string

	// CoverData holds the cover image bytes after a successful secondary
	// fetch. Nil is a normal state, not an error.
	CoverData []byte

	// Tracks holds the album's tracks in page display order. Track numbers
	// are whatever the page showed and need not be unique or contiguous
	// (multi-disc pages restart numbering per disc).
	Tracks []*Track
}

// HasCover returns true if the page exposed a cover image URL.
func (a *Album) HasCover() bool {
	return a.CoverURL != ""
}
