// SPDX-License-Identifier: MIT

package epg

import (
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mytv-core/sourcekit/internal/channel"
)

// matchCacheSize bounds the epg-name memo; guides can carry thousands of
// channels and Match would otherwise re-scan them per lookup.
const matchCacheSize = 64

// Matcher joins channels against a guide list by epg name. Replacing the
// list (Reset) drops the memo, so stale matches never outlive a guide
// refresh. Safe for concurrent use through the underlying LRU.
type Matcher struct {
	list  List
	cache *lru.Cache[string, *Epg]
}

// NewMatcher creates a matcher over the given guide list.
func NewMatcher(list List) *Matcher {
	cache, _ := lru.New[string, *Epg](matchCacheSize)
	return &Matcher{list: list, cache: cache}
}

// List returns the guide list currently matched against.
func (m *Matcher) List() List {
	return m.list
}

// Reset swaps in a new guide list and invalidates the memo.
func (m *Matcher) Reset(list List) {
	m.list = list
	m.cache.Purge()
}

// Match returns the first guide entry answering to the channel's epg name,
// case-insensitively. Misses are memoized as an empty entry so repeated
// lookups of unmatched channels stay cheap. Returns nil for an empty list.
func (m *Matcher) Match(ch channel.Channel) *Epg {
	if len(m.list) == 0 {
		return nil
	}

	if e, ok := m.cache.Get(ch.EpgName); ok {
		return e
	}

	found := &Epg{}
	for i := range m.list {
		if containsFold(m.list[i].ChannelNames, ch.EpgName) {
			found = &m.list[i]
			break
		}
	}
	m.cache.Add(ch.EpgName, found)
	return found
}

// RecentProgramme resolves the channel's live and upcoming programme.
func (m *Matcher) RecentProgramme(ch channel.Channel, now time.Time) Recent {
	e := m.Match(ch)
	if e == nil {
		return Recent{}
	}
	return e.RecentProgramme(now)
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
