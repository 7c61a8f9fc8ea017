package melon

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	httpx "github.com/hakyung/melon-tagger/internal/http"
	"github.com/hakyung/melon-tagger/internal/model"
)

const songDetailURL = "https://www.melon.com/song/detail.htm?songId=%s"

// Crawler fetches Melon pages and turns them into model values.
//
// The album page itself is essential: a failed fetch there fails the whole
// operation. Everything after it (cover image, per-song detail) is
// enrichment, so those failures are returned as modeled errors the caller
// can choose to ignore; FetchAlbum ignores the cover failure itself and
// just logs it.
type Crawler struct {
	client *httpx.Client
	parser *Parser
	log    zerolog.Logger
}

// NewCrawler creates a Crawler on top of the given HTTP client.
func NewCrawler(client *httpx.Client, log zerolog.Logger) *Crawler {
	return &Crawler{
		client: client,
		parser: NewParser(),
		log:    log,
	}
}

// FetchAlbum retrieves and parses an album page, then best-effort fetches
// the cover image. A page fetch failure is a hard error; a cover fetch
// failure only leaves CoverData nil.
func (c *Crawler) FetchAlbum(ctx context.Context, albumURL string) (*model.Album, error) {
	page, err := c.client.GetPage(ctx, albumURL)
	if err != nil {
		return nil, fmt.Errorf("fetch album page: %w", err)
	}

	album := c.parser.ParseAlbumPage(page)

	if album.HasCover() {
		data, err := c.client.GetAsset(ctx, album.CoverURL)
		if err != nil {
			c.log.Debug().Err(err).Str("url", album.CoverURL).Msg("cover fetch failed, continuing without cover")
		} else {
			album.CoverData = data
		}
	}

	return album, nil
}

// FetchTrackDetail retrieves a song's detail page and extracts lyrics and
// genre. An empty song id short-circuits to an empty result. Errors are
// returned for observability, but callers treat the detail as optional and
// fall back to empty fields.
func (c *Crawler) FetchTrackDetail(ctx context.Context, songID string) (TrackDetail, error) {
	if songID == "" {
		return TrackDetail{}, nil
	}

	page, err := c.client.GetPage(ctx, fmt.Sprintf(songDetailURL, url.QueryEscape(songID)))
	if err != nil {
		return TrackDetail{}, fmt.Errorf("fetch song detail %s: %w", songID, err)
	}

	return c.parser.ParseTrackDetail(page), nil
}

// FetchLyrics is a convenience wrapper returning just the lyrics text of a
// song's detail page.
func (c *Crawler) FetchLyrics(ctx context.Context, songID string) (string, error) {
	detail, err := c.FetchTrackDetail(ctx, songID)
	if err != nil {
		return "", err
	}
	return detail.Lyrics, nil
}
