package model

// Track represents one song's metadata scoped to one album context.
//
// AlbumName, AlbumArtist and Genre are copied from the owning Album when
// the track is constructed. They are independent copies, not references:
// mutating the Album afterwards does not update its tracks. The only late
// update a track receives is a Genre/Lyrics override from the per-song
// detail page.
type Track struct {
	// Number is the track number parsed from the row's visible rank text.
	Number int

	// DiscNumber comes from a cd<N> pattern in the row's group attribute.
	// Rows without the pattern get disc 1.
	DiscNumber int

	// Title is the track title.
	Title string

	// Artist is a comma-joined, order-preserving de-duplicated list of the
	// row's artist names. Falls back to the album artist when the row has
	// no artist links of its own.
	Artist string

	// AlbumName, AlbumArtist and Genre are copied down from the album at
	// construction time.
	AlbumName   string
	AlbumArtist string
	Genre       string

	// SongID is Melon's per-song identifier, used for the detail-page
	// fetch. Empty when the row exposed no checkbox value or info link.
	SongID string

	// Lyrics is empty until a detail-page fetch populates it.
	Lyrics string
}

// NewTrack creates a Track under the given album, copying the album-level
// fields down so the track stays self-contained.
func NewTrack(album *Album, number, disc int, title, artist, songID string) *Track {
	return &Track{
		Number:      number,
		DiscNumber:  disc,
		Title:       title,
		Artist:      artist,
		AlbumName:   album.Name,
		AlbumArtist: album.Artist,
		Genre:       album.Genre,
		SongID:      songID,
	}
}
