package melon

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/hakyung/melon-tagger/internal/model"
)

// Parser extracts album and track information from Melon HTML pages.
//
// Melon markup is inconsistent across album types, so every extraction
// step has a fallback ladder and degrades to an empty value rather than
// failing the whole parse. A page that is not an album page at all still
// parses, to an Album full of empty strings.
//
// Example usage:
//
//	parser := NewParser()
//	album := parser.ParseAlbumPage(html)
//	for _, track := range album.Tracks {
//	    fmt.Printf("%d. %s\n", track.Number, track.Title)
//	}
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	discPattern       = regexp.MustCompile(`(?i)cd(\d+)`)
	songDetailPattern = regexp.MustCompile(`goSongDetail\('(\d+)'\)`)
)

// Localized markers in Melon markup. Matching is by substring because the
// surrounding label text varies between page layouts.
const (
	labelGenre       = "장르"     // "genre" in the info definition list
	labelReleaseDate = "발매일"    // "release date" in the info definition list
	labelPlay        = "재생"     // title attribute of play links
	labelSongInfo    = "곡정보"    // suffix on info-link title attributes
	lyricsPending    = "가사 준비중" // "lyrics not ready" placeholder
)

// ParseAlbumPage extracts album metadata and the ordered track list from
// an album page. It never fails: fields that cannot be extracted are left
// empty and rows without a parseable track number are skipped.
func (p *Parser) ParseAlbumPage(htmlContent string) *model.Album {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return &model.Album{}
	}

	album := &model.Album{
		Name:     albumName(doc),
		Artist:   albumArtist(doc),
		CoverURL: doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""),
	}
	album.Genre, album.ReleaseDate = albumMeta(doc)
	album.Tracks = trackRows(doc, album)

	return album
}

// albumName reads the primary title element, stripping the nested badge
// labels Melon embeds in it ("[EP]", "19금" and so on live in <strong>).
func albumName(doc *goquery.Document) string {
	sel := doc.Find(".song_name").First()
	if sel.Length() == 0 {
		return ""
	}
	sel.Find("strong").Remove()
	return strings.TrimSpace(sel.Text())
}

// albumArtist reads the first artist-name link, falling back to the
// social-preview title when the artist block is missing (various-artist
// compilations omit it).
func albumArtist(doc *goquery.Document) string {
	sel := doc.Find(".artist .artist_name span").First()
	if sel.Length() > 0 {
		return strings.TrimSpace(sel.Text())
	}
	return doc.Find(`meta[property="og:title"]`).First().AttrOr("content", "")
}

// albumMeta scans the info definition list, pairing label cells with value
// cells positionally. The list has no fixed ordering or cell count, so
// labels are matched by substring and unpaired trailing entries skipped.
func albumMeta(doc *goquery.Document) (genre, releaseDate string) {
	dl := doc.Find("dl.list").First()
	if dl.Length() == 0 {
		return "", ""
	}

	labels := dl.Find("dt")
	values := dl.Find("dd")
	n := labels.Length()
	if values.Length() < n {
		n = values.Length()
	}

	for i := 0; i < n; i++ {
		label := strings.TrimSpace(labels.Eq(i).Text())
		value := strings.TrimSpace(values.Eq(i).Text())
		switch {
		case strings.Contains(label, labelGenre):
			genre = value
		case strings.Contains(label, labelReleaseDate):
			releaseDate = value
		}
	}
	return genre, releaseDate
}

// trackRows walks the track table. A row whose rank cell does not parse as
// an integer is excluded entirely; everything else degrades per-field.
func trackRows(doc *goquery.Document, album *model.Album) []*model.Track {
	var tracks []*model.Track

	doc.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		number, err := strconv.Atoi(strings.TrimSpace(row.Find(".rank").First().Text()))
		if err != nil {
			return
		}

		disc := 1
		if m := discPattern.FindStringSubmatch(row.AttrOr("data-group-items", "")); m != nil {
			disc, _ = strconv.Atoi(m[1])
		}

		tracks = append(tracks, model.NewTrack(
			album,
			number,
			disc,
			rowTitle(row),
			rowArtist(row, album.Artist),
			rowSongID(row),
		))
	})

	return tracks
}

// rowSongID prefers the selection checkbox value; failing that it digs the
// numeric id out of the info link's javascript href.
func rowSongID(row *goquery.Selection) string {
	if id := row.Find(`input[type="checkbox"]`).First().AttrOr("value", ""); id != "" {
		return id
	}
	href := row.Find("a.song_info").First().AttrOr("href", "")
	if m := songDetailPattern.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}

// rowTitle prefers the play link's text; rows without one (unplayable
// tracks) fall back to the info link's title attribute with the localized
// suffix stripped.
func rowTitle(row *goquery.Selection) string {
	if play := row.Find(`a[title*="` + labelPlay + `"]`).First(); play.Length() > 0 {
		return strings.TrimSpace(play.Text())
	}
	if info := row.Find("a.song_info").First(); info.Length() > 0 {
		return strings.TrimSpace(strings.ReplaceAll(info.AttrOr("title", ""), labelSongInfo, ""))
	}
	return ""
}

// rowArtist joins the artist-cell link texts, de-duplicated in order of
// first appearance. Featured artists appear as repeated links on some
// layouts. Rows without any artist link inherit the album artist.
func rowArtist(row *goquery.Selection, albumArtist string) string {
	var names []string
	row.Find(".rank02 a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			names = append(names, name)
		}
	})
	names = lo.Uniq(names)
	if len(names) == 0 {
		return albumArtist
	}
	return strings.Join(names, ", ")
}

// TrackDetail is the enrichment data carried by a per-song detail page.
type TrackDetail struct {
	Lyrics string
	Genre  string
}

// lyricsCandidates is the ordered list of DOM regions that may hold the
// lyrics block, most specific first. Melon has moved this element around
// between redesigns.
var lyricsCandidates = []string{
	".lyric_wrap .lyric",
	"#lyricArea",
	".lyric_wrap",
	".lyric",
}

// ParseTrackDetail extracts lyrics and genre from a song detail page.
// Like ParseAlbumPage it never fails; missing regions yield empty fields.
func (p *Parser) ParseTrackDetail(htmlContent string) TrackDetail {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return TrackDetail{}
	}

	genre, _ := albumMeta(doc)
	return TrackDetail{
		Lyrics: extractLyrics(doc),
		Genre:  genre,
	}
}

// extractLyrics tries each candidate region in order, stopping at the
// first one that yields real text: collapsible buttons and hidden
// sub-elements are stripped, <br> becomes a newline, and the result must
// be longer than 10 characters and not the "lyrics not ready" placeholder.
func extractLyrics(doc *goquery.Document) string {
	for _, candidate := range lyricsCandidates {
		sel := doc.Find(candidate).First()
		if sel.Length() == 0 {
			continue
		}

		sel.Find("button").Remove()
		sel.Find(".none").Remove()
		sel.Find("br").ReplaceWithHtml("\n")

		text := strings.TrimSpace(sel.Text())
		if strings.Contains(text, lyricsPending) {
			return ""
		}
		if utf8.RuneCountInString(text) > 10 {
			return text
		}
	}
	return ""
}
