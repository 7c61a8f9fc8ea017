// Package melon parses Melon album and song pages and fetches them over
// HTTP.
//
// # Parsing
//
// Parser turns raw page HTML into model values. It is deliberately
// tolerant: Melon's markup differs between album types and redesign
// generations, so every field has a fallback ladder and degrades to an
// empty value instead of failing the parse. Only a track row without a
// parseable rank number is dropped outright.
//
//	parser := melon.NewParser()
//	album := parser.ParseAlbumPage(html)
//
// # Fetching
//
// Crawler wires the parser to the HTTP client:
//
//	crawler := melon.NewCrawler(httpClient, logger)
//	album, err := crawler.FetchAlbum(ctx, albumURL)     // hard failure
//	detail, err := crawler.FetchTrackDetail(ctx, songID) // optional enrichment
//
// The album page is the one essential fetch. The cover image and the
// per-song detail page (lyrics, per-track genre) are enrichment: their
// failures leave fields empty rather than failing the operation.
package melon
