package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
)

// Client queries lrclib.net for synchronized lyrics.
//
// Synced lyrics are enrichment data: a track without them is still fully
// taggable, so callers treat a failed lookup as "no lyrics" rather than a
// hard failure.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// NewClient creates a lrclib client with a 10 second request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://lrclib.net/api/get",
	}
}

type lrclibResponse struct {
	SyncedLyrics string `json:"syncedLyrics"`
}

// FetchSynced looks up synchronized lyrics by track, artist and album
// name. A 404 or an empty syncedLyrics field returns (nil, nil): absence
// of lyrics is a modeled outcome, not an error. Transport failures and
// unexpected statuses return an error the caller is free to ignore.
func (c *Client) FetchSynced(ctx context.Context, title, artist, album string) ([]Line, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)
	params.Set("album_name", album)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build lrclib request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var body lrclibResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode lrclib response: %w", err)
	}
	if body.SyncedLyrics == "" {
		return nil, nil
	}

	return Parse(body.SyncedLyrics), nil
}
