// SPDX-License-Identifier: MIT

// Package channel defines the playlist-side domain entities: channels,
// playable lines, groups and favorites, plus the flat parse item they are
// built from.
package channel

import "strings"

// HybridType marks how a line is played back.
type HybridType string

const (
	HybridNone    HybridType = "None"
	HybridWebView HybridType = "WebView"
)

// Line is a single playable endpoint of a channel. The stored URL may embed a
// "$"-delimited display-name suffix that must not reach the player.
type Line struct {
	URL           string     `json:"url"`
	HTTPUserAgent string     `json:"httpUserAgent,omitempty"`
	Hybrid        HybridType `json:"hybridType,omitempty"`
	Name          string     `json:"name,omitempty"`
	ManifestType  string     `json:"manifestType,omitempty"`
	LicenseType   string     `json:"licenseType,omitempty"`
	LicenseKey    string     `json:"licenseKey,omitempty"`
}

// NewLine derives the display name from a "$" suffix when present.
func NewLine(url string) Line {
	return Line{URL: url, Name: lineName(url)}
}

func lineName(url string) string {
	if i := strings.LastIndex(url, "$"); i >= 0 {
		return url[i+1:]
	}
	return ""
}

// PlayableURL strips everything after the first "$". Some providers publish
// URLs with a literal trailing "?"; the query separator gets dropped during
// request encoding, so a sentinel character is appended to keep it intact.
func (l Line) PlayableURL() string {
	u := l.URL
	if i := strings.Index(u, "$"); i >= 0 {
		u = u[:i]
	}
	if strings.HasSuffix(l.URL, "?") {
		return u + "t"
	}
	return u
}

// IsWebView reports whether the line plays through the embedded web player.
func (l Line) IsWebView() bool {
	return l.Hybrid == HybridWebView
}

// Lines is an ordered list of playable endpoints.
type Lines []Line

// DedupByURL keeps the first line for each URL, preserving order.
func (ls Lines) DedupByURL() Lines {
	seen := make(map[string]struct{}, len(ls))
	out := make(Lines, 0, len(ls))
	for _, l := range ls {
		if _, ok := seen[l.URL]; ok {
			continue
		}
		seen[l.URL] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Equal reports whether both lists hold the same lines in the same order.
func (ls Lines) Equal(other Lines) bool {
	if len(ls) != len(other) {
		return false
	}
	for i := range ls {
		if ls[i] != other[i] {
			return false
		}
	}
	return true
}
