package audio

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"
)

// lyricsLanguage is the ISO 639-2 tag under which lyrics frames are
// stored. Melon serves Korean-market releases, so everything goes under
// one fixed language tag the way the target players expect.
const lyricsLanguage = "kor"

// Fields holds the tag values to apply to a file.
//
// The write contract is a partial update: only fields with a non-zero
// value are written, and everything else in the container is preserved,
// including frames this type does not model. To leave a field alone,
// leave it zero.
type Fields struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	TrackNumber int
	DiscNumber  int

	// Cover is embedded as the single front-cover picture, JPEG-typed.
	Cover []byte

	// Lyrics is stored as unsynchronized text under the fixed language tag.
	Lyrics string
}

// Store is the tag-container capability the rest of the system depends
// on. It hides the tagging library's representation so sessions can be
// tested against a fake and the backing library swapped without touching
// callers.
type Store interface {
	// Read returns the file's current text fields. A file without a tag
	// container reads as all-empty, not as an error.
	Read(path string) (Fields, error)

	// Write applies the non-zero fields to the file's tag container,
	// creating the container if the file has none. The update is atomic
	// with respect to the rest of the tag set on success, but a crash
	// mid-write may leave a partially updated container.
	Write(path string, f Fields) error
}

// ID3Store implements Store against ID3v2 tags in MP3 files.
type ID3Store struct{}

// NewID3Store creates an ID3-backed Store.
func NewID3Store() *ID3Store {
	return &ID3Store{}
}

// Read reads the common text frames from the file's ID3 tag.
func (s *ID3Store) Read(path string) (Fields, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Fields{}, fmt.Errorf("open tags of %s: %w", path, err)
	}
	defer tag.Close()

	f := Fields{
		Title:       tag.Title(),
		Artist:      tag.Artist(),
		Album:       tag.Album(),
		AlbumArtist: tag.GetTextFrame("TPE2").Text,
		Genre:       tag.Genre(),
	}
	if n, err := strconv.Atoi(tag.GetTextFrame("TRCK").Text); err == nil {
		f.TrackNumber = n
	}
	if n, err := strconv.Atoi(tag.GetTextFrame("TPOS").Text); err == nil {
		f.DiscNumber = n
	}
	return f, nil
}

// Write applies the non-zero fields and saves the tag. id3v2.Open parses
// any existing tag first, so unnamed frames survive the save.
func (s *ID3Store) Write(path string, f Fields) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags of %s: %w", path, err)
	}
	defer tag.Close()

	if f.Title != "" {
		tag.SetTitle(f.Title)
	}
	if f.Artist != "" {
		tag.SetArtist(f.Artist)
	}
	if f.Album != "" {
		tag.SetAlbum(f.Album)
	}
	if f.AlbumArtist != "" {
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, f.AlbumArtist)
	}
	if f.Genre != "" {
		tag.SetGenre(f.Genre)
	}
	if f.TrackNumber > 0 {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(f.TrackNumber))
	}
	if f.DiscNumber > 0 {
		tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, strconv.Itoa(f.DiscNumber))
	}

	if len(f.Cover) > 0 {
		// One front cover only; drop any pictures already present.
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     f.Cover,
		})
	}

	if f.Lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          lyricsLanguage,
			ContentDescriptor: "",
			Lyrics:            f.Lyrics,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags of %s: %w", path, err)
	}
	return nil
}
