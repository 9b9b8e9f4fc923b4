// SPDX-License-Identifier: MIT

package epg

import (
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Fetcher adapts a raw guide response body to a plain XML byte stream,
// handling transparent decompression where the URL calls for it.
type Fetcher interface {
	// Supports reports whether this fetcher handles the document URL.
	Supports(url string) bool
	// Open wraps the response body, decoding as needed.
	Open(body io.Reader) (io.ReadCloser, error)
}

// Fetchers returns all registered fetchers in priority order. The last
// entry matches anything.
func Fetchers() []Fetcher {
	return []Fetcher{XMLFetcher{}, GzipFetcher{}, DefaultFetcher{}}
}

// PickFetcher returns the first fetcher supporting the URL. Never nil.
func PickFetcher(url string) Fetcher {
	for _, f := range Fetchers() {
		if f.Supports(url) {
			return f
		}
	}
	return DefaultFetcher{}
}

// XMLFetcher passes plain XML documents through unchanged.
type XMLFetcher struct{}

func (XMLFetcher) Supports(url string) bool {
	return strings.HasSuffix(strings.ToLower(url), ".xml")
}

func (XMLFetcher) Open(body io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(body), nil
}

// GzipFetcher transparently decompresses gzip-packed guides.
type GzipFetcher struct{}

func (GzipFetcher) Supports(url string) bool {
	return strings.HasSuffix(strings.ToLower(url), ".gz")
}

func (GzipFetcher) Open(body io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(body)
}

// DefaultFetcher is the passthrough fallback for unrecognized URLs.
type DefaultFetcher struct{}

func (DefaultFetcher) Supports(url string) bool {
	return true
}

func (DefaultFetcher) Open(body io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(body), nil
}
