// SPDX-License-Identifier: MIT

// Package alias canonicalizes channel names. Playlists and programme guides
// rarely agree on naming, so every raw name is funneled through a layered
// alias table (user overrides over a built-in default) before records from
// different sources are joined or merged.
package alias

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/mytv-core/sourcekit/internal/log"
)

// SuffixKey is the reserved table key holding suffix strings that are
// stripped from a name before alias lookup.
const SuffixKey = "__suffix"

const memoSize = 128

// Resolver maps raw channel names to canonical ones. Safe for concurrent use.
type Resolver struct {
	userFile string

	mu      sync.RWMutex
	userMap map[string][]string

	memo *lru.Cache[string, string]
}

// NewResolver creates a resolver backed by the given user override file. The
// file is not read until Refresh is called; until then only the built-in
// table applies.
func NewResolver(userFile string) *Resolver {
	memo, _ := lru.New[string, string](memoSize)
	return &Resolver{
		userFile: userFile,
		userMap:  map[string][]string{},
		memo:     memo,
	}
}

// Refresh reloads the user override file and drops the memo cache. A missing
// or malformed file yields an empty user table, never an error.
func (r *Resolver) Refresh() {
	logger := log.WithComponent("alias")

	userMap := map[string][]string{}
	data, err := os.ReadFile(r.userFile)
	if err == nil {
		if err := json.Unmarshal(data, &userMap); err != nil {
			logger.Warn().Err(err).Str("path", r.userFile).Msg("alias file malformed, ignoring")
			userMap = map[string][]string{}
		}
	}

	r.mu.Lock()
	r.userMap = userMap
	r.memo.Purge()
	r.mu.Unlock()

	count := 0
	for _, v := range userMap {
		count += len(v)
	}
	logger.Debug().Int("mappings", count).Msg("user alias table loaded")
}

// StandardName resolves a raw name to its canonical form. Resolution strips
// configured suffixes, then looks the name up case-insensitively as a
// canonical key or a synonym, user table first. Unmatched names are
// self-canonical. Results are memoized per original name.
func (r *Resolver) StandardName(name string) string {
	if v, ok := r.memo.Get(name); ok {
		return v
	}

	cleaned := strings.TrimSpace(norm.NFC.String(name))
	for _, suffix := range r.suffixes() {
		cleaned = strings.TrimSuffix(cleaned, suffix)
	}
	cleaned = strings.TrimSpace(cleaned)

	resolved := cleaned
	if canonical, ok := r.findAlias(cleaned); ok {
		resolved = canonical
	}

	r.memo.Add(name, resolved)
	return resolved
}

func (r *Resolver) suffixes() []string {
	r.mu.RLock()
	user := r.userMap[SuffixKey]
	r.mu.RUnlock()
	return append(append([]string{}, user...), builtinTable[SuffixKey]...)
}

func (r *Resolver) findAlias(name string) (string, bool) {
	r.mu.RLock()
	userMap := r.userMap
	r.mu.RUnlock()

	for _, table := range []map[string][]string{userMap, builtinTable} {
		for key := range table {
			if key == SuffixKey {
				continue
			}
			if strings.EqualFold(key, name) {
				return key, true
			}
		}
		for key, synonyms := range table {
			if key == SuffixKey {
				continue
			}
			for _, syn := range synonyms {
				if strings.EqualFold(syn, name) {
					return key, true
				}
			}
		}
	}
	return "", false
}
