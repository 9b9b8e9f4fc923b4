// SPDX-License-Identifier: MIT

// Package repository orchestrates fetch → parse → transform → cache for one
// configured source, producing the domain-level grouped channel list or
// programme list.
package repository

import (
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Cache directory names, one per source kind.
const (
	IptvCacheDir = "iptv_source_cache"
	EpgCacheDir  = "epg_source_cache"
)

// IptvSource is a named playlist document location.
type IptvSource struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	IsLocal     bool   `json:"isLocal,omitempty"`
	TransformJS string `json:"transformJs,omitempty"`
}

// CacheFileName derives the deterministic cache slot for this source
// configuration. Distinct configurations never collide; identical ones
// always share a slot.
func (s IptvSource) CacheFileName(ext string) string {
	return filepath.Join(IptvCacheDir, fmt.Sprintf("iptv_source_%s.%s", s.hash(), ext))
}

func (s IptvSource) hash() string {
	return shortHash(s.Name, s.URL, fmt.Sprintf("%t", s.IsLocal), s.TransformJS)
}

// EpgSource is a named programme guide document location.
type EpgSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CacheFileName derives the deterministic cache slot for this source
// configuration.
func (s EpgSource) CacheFileName(ext string) string {
	return filepath.Join(EpgCacheDir, fmt.Sprintf("epg_source_%s.%s", s.hash(), ext))
}

func (s EpgSource) hash() string {
	return shortHash(s.Name, s.URL)
}

// shortHash folds the identity fields into 8 hex digits.
func shortHash(fields ...string) string {
	h := xxhash.New()
	for _, f := range fields {
		_, _ = h.WriteString(f)
		_, _ = h.WriteString("\x00")
	}
	return fmt.Sprintf("%08x", uint32(h.Sum64()))
}
