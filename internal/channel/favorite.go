// SPDX-License-Identifier: MIT

package channel

// Favorite pins a channel as seen in a specific source's grouping. The
// snapshot survives upstream line-list changes; identity is the
// (source, group, channel name) triple only.
type Favorite struct {
	Channel    Channel `json:"channel"`
	SourceName string  `json:"iptvSourceName"`
	GroupName  string  `json:"groupName"`
}

// SameAs reports favorite identity.
func (f Favorite) SameAs(other Favorite) bool {
	return f.SourceName == other.SourceName &&
		f.GroupName == other.GroupName &&
		f.Channel.Name == other.Channel.Name
}

// FavoriteList is an ordered favorite collection.
type FavoriteList []Favorite

// SourceNames returns the distinct source names referenced by the list,
// in first-seen order.
func (fl FavoriteList) SourceNames() []string {
	seen := make(map[string]struct{}, len(fl))
	var out []string
	for _, f := range fl {
		if _, ok := seen[f.SourceName]; ok {
			continue
		}
		seen[f.SourceName] = struct{}{}
		out = append(out, f.SourceName)
	}
	return out
}

// Refresh replaces each favorite's channel snapshot with the current channel
// from groups, matched by group and raw name, for favorites belonging to
// sourceName. Unmatched favorites keep their stale snapshot.
func (fl FavoriteList) Refresh(sourceName string, groups GroupList) FavoriteList {
	out := make(FavoriteList, len(fl))
	for i, f := range fl {
		out[i] = f
		if f.SourceName != sourceName {
			continue
		}
		for _, g := range groups {
			if g.Name != f.GroupName {
				continue
			}
			for _, c := range g.Channels {
				if c.Name == f.Channel.Name {
					out[i].Channel = c
					break
				}
			}
			break
		}
	}
	return out
}
