// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/mytv-core/sourcekit/internal/channel"
	"github.com/mytv-core/sourcekit/internal/config"
	"github.com/mytv-core/sourcekit/internal/epg"
	"github.com/mytv-core/sourcekit/internal/hybrid"
)

// MergeSimilar collapses channels within a group that share a canonical
// name into one channel carrying every line, each line tagged with its
// origin channel's display name and de-duplicated by URL. Distinct channels
// that happen to normalize to the same name merge too; that matches the
// alias table's intent.
func MergeSimilar(groups channel.GroupList) channel.GroupList {
	out := make(channel.GroupList, 0, len(groups))
	for _, g := range groups {
		order := make([]string, 0, len(g.Channels))
		buckets := map[string][]channel.Channel{}
		for _, c := range g.Channels {
			if _, ok := buckets[c.StandardName]; !ok {
				order = append(order, c.StandardName)
			}
			buckets[c.StandardName] = append(buckets[c.StandardName], c)
		}

		merged := make([]channel.Channel, 0, len(order))
		for _, standardName := range order {
			similar := buckets[standardName]
			if len(similar) == 1 {
				merged = append(merged, similar[0])
				continue
			}

			var lines channel.Lines
			for _, c := range similar {
				for _, l := range c.Lines {
					l.Name = c.Name
					lines = append(lines, l)
				}
			}

			first := similar[0]
			first.Name = standardName
			first.Lines = lines.DedupByURL()
			merged = append(merged, first)
		}

		out = append(out, channel.Group{Name: g.Name, Channels: merged})
	}
	return out
}

// ApplyHybrid combines web-player fallback lines with each channel's direct
// lines, in the configured preference order.
func ApplyHybrid(groups channel.GroupList, provider hybrid.LineProvider, mode config.HybridMode) channel.GroupList {
	if mode == config.HybridDisable {
		return groups
	}

	out := make(channel.GroupList, 0, len(groups))
	for _, g := range groups {
		channels := make([]channel.Channel, 0, len(g.Channels))
		for _, c := range g.Channels {
			extra := provider.Lines(c.EpgName)
			if len(extra) > 0 {
				if mode == config.HybridHybridFirst {
					c.Lines = append(append(channel.Lines{}, extra...), c.Lines...)
				} else {
					c.Lines = append(append(channel.Lines{}, c.Lines...), extra...)
				}
			}
			channels = append(channels, c)
		}
		out = append(out, channel.Group{Name: g.Name, Channels: channels})
	}
	return out
}

// FilterEpg discards guide entries for channels absent from both the
// current channel set and the favorites, bounding memory and the match
// cache against guides that carry thousands of irrelevant channels.
func FilterEpg(list epg.List, groups channel.GroupList, favorites channel.FavoriteList) epg.List {
	if len(list) == 0 {
		return list
	}

	wanted := map[string]struct{}{}
	for _, c := range groups.Channels() {
		wanted[c.EpgName] = struct{}{}
	}
	for _, f := range favorites {
		wanted[f.Channel.EpgName] = struct{}{}
	}

	out := make(epg.List, 0, len(list))
	for _, e := range list {
		for _, name := range e.ChannelNames {
			if _, ok := wanted[name]; ok {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// MergeEpgLogos fills in missing channel logos from the matched guide
// entries. A guide without any logos leaves the groups untouched.
func MergeEpgLogos(groups channel.GroupList, matcher *epg.Matcher) channel.GroupList {
	hasLogo := false
	for _, e := range matcher.List() {
		if e.Logo != "" {
			hasLogo = true
			break
		}
	}
	if !hasLogo {
		return groups
	}

	out := make(channel.GroupList, 0, len(groups))
	for _, g := range groups {
		channels := make([]channel.Channel, 0, len(g.Channels))
		for _, c := range g.Channels {
			if c.Logo == "" {
				if e := matcher.Match(c); e != nil && e.Logo != "" {
					c.Logo = e.Logo
				}
			}
			channels = append(channels, c)
		}
		out = append(out, channel.Group{Name: g.Name, Channels: channels})
	}
	return out
}
