// SPDX-License-Identifier: MIT

package channel

// Item is the flat per-URL record produced by playlist parsers, before
// grouping into channels and groups.
type Item struct {
	GroupName     string `json:"groupName"`
	Name          string `json:"name"`
	EpgName       string `json:"epgName,omitempty"`
	URL           string `json:"url"`
	Logo          string `json:"logo,omitempty"`
	HTTPUserAgent string `json:"httpUserAgent,omitempty"`
	ManifestType  string `json:"manifestType,omitempty"`
	LicenseType   string `json:"licenseType,omitempty"`
	LicenseKey    string `json:"licenseKey,omitempty"`
}

// Resolver canonicalizes raw channel names. Satisfied by *alias.Resolver.
type Resolver interface {
	StandardName(name string) string
}

// GroupItems performs the two-level group-by that turns flat parse items into
// the domain grouping: items are grouped by raw channel name (first item's
// epg name and logo win, lines de-duplicated by URL), channels are grouped by
// group name. Encounter order is preserved on both levels.
func GroupItems(items []Item, resolve Resolver) GroupList {
	groupOrder := make([]string, 0)
	groups := make(map[string][]Item)
	for _, it := range items {
		if _, ok := groups[it.GroupName]; !ok {
			groupOrder = append(groupOrder, it.GroupName)
		}
		groups[it.GroupName] = append(groups[it.GroupName], it)
	}

	out := make(GroupList, 0, len(groupOrder))
	for _, groupName := range groupOrder {
		chanOrder := make([]string, 0)
		chans := make(map[string][]Item)
		for _, it := range groups[groupName] {
			if _, ok := chans[it.Name]; !ok {
				chanOrder = append(chanOrder, it.Name)
			}
			chans[it.Name] = append(chans[it.Name], it)
		}

		channels := make([]Channel, 0, len(chanOrder))
		for _, name := range chanOrder {
			bucket := chans[name]
			first := bucket[0]

			epgName := first.EpgName
			if epgName == "" {
				epgName = name
			}

			lines := make(Lines, 0, len(bucket))
			for _, it := range bucket {
				l := NewLine(it.URL)
				l.HTTPUserAgent = it.HTTPUserAgent
				l.ManifestType = it.ManifestType
				l.LicenseType = it.LicenseType
				l.LicenseKey = it.LicenseKey
				lines = append(lines, l)
			}

			channels = append(channels, Channel{
				Name:         name,
				StandardName: resolve.StandardName(name),
				EpgName:      resolve.StandardName(epgName),
				Lines:        lines.DedupByURL(),
				Logo:         first.Logo,
				Index:        -1,
			})
		}

		out = append(out, Group{Name: groupName, Channels: channels})
	}
	return out
}
