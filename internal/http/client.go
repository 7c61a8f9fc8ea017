package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Headers is the fixed request header set sent with every outbound GET.
//
// Melon serves a reduced page to clients that do not look like a desktop
// browser, so the defaults mimic one. Headers is a plain value constructed
// once and handed to NewClient, never mutated afterwards.
type Headers struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
	Referer        string
}

// MelonHeaders returns the header set for the Melon catalog site.
func MelonHeaders() Headers {
	return Headers{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/120.0.0.0 Safari/537.36",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		AcceptLanguage: "ko-KR,ko;q=0.9,en;q=0.8",
		Referer:        "https://www.melon.com/",
	}
}

// Timeouts for the two request classes. Album and detail pages get the
// longer budget; images and other secondary lookups get the shorter one.
const (
	pageTimeout  = 15 * time.Second
	assetTimeout = 10 * time.Second
)

// Client wraps outbound HTTP GETs with the catalog header set and bounded
// timeouts. There are no retries anywhere: a failed request is reported
// once and the caller decides whether to re-invoke.
//
// Example:
//
//	client := http.NewClient(http.MelonHeaders())
//	page, err := client.GetPage(ctx, albumURL)
type Client struct {
	page    *http.Client
	asset   *http.Client
	headers Headers
}

// NewClient creates a Client with the given header configuration.
func NewClient(h Headers) *Client {
	return &Client{
		page:    &http.Client{Timeout: pageTimeout},
		asset:   &http.Client{Timeout: assetTimeout},
		headers: h,
	}
}

// GetPage fetches an HTML page and returns its body as a string.
// Any non-2xx status is an error.
func (c *Client) GetPage(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, c.page, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetAsset fetches a binary resource such as a cover image, using the
// shorter secondary-fetch timeout. Any non-2xx status is an error.
func (c *Client) GetAsset(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, c.asset, url)
}

func (c *Client) get(ctx context.Context, hc *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.headers.UserAgent)
	req.Header.Set("Accept", c.headers.Accept)
	req.Header.Set("Accept-Language", c.headers.AcceptLanguage)
	req.Header.Set("Referer", c.headers.Referer)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
