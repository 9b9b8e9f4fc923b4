// SPDX-License-Identifier: MIT

// Package playlist decodes raw playlist documents into flat channel items.
// Format detection is content-sniffing, not extension-based: sources behind
// redirectors and shorteners routinely lie about their file type.
package playlist

import "github.com/mytv-core/sourcekit/internal/channel"

// Parser decodes one playlist format.
type Parser interface {
	// Supports reports whether this parser can decode the document.
	Supports(url, data string) bool
	// Parse decodes the document into flat items.
	Parse(data string) ([]channel.Item, error)
}

// EpgURLer is implemented by parsers whose format can embed a programme
// guide index URL.
type EpgURLer interface {
	EpgURL(data string) string
}

// Parsers returns all known parsers in detection order. DefaultParser is
// last and matches anything.
func Parsers() []Parser {
	return []Parser{M3UParser{}, TxtParser{}, DefaultParser{}}
}

// Pick returns the first parser that supports the document.
func Pick(url, data string) Parser {
	for _, p := range Parsers() {
		if p.Supports(url, data) {
			return p
		}
	}
	return DefaultParser{}
}
