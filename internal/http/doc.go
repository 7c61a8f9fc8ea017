// Package http provides the outbound HTTP client used for all catalog
// requests.
//
// The Client sends a fixed browser-identifying header set (user agent,
// accept headers, Korean-preferring accept-language, referer pinned to the
// Melon root) and enforces bounded timeouts: 15 seconds for HTML pages,
// 10 seconds for images and other secondary fetches. A request that runs
// past its budget fails as a timeout error rather than hanging.
//
//	client := http.NewClient(http.MelonHeaders())
//
//	page, err := client.GetPage(ctx, "https://www.melon.com/album/detail.htm?albumId=...")
//	cover, err := client.GetAsset(ctx, coverURL)
//
// The header set is a configuration value passed at construction, not
// process-global state, so tests can point a Client anywhere.
package http
