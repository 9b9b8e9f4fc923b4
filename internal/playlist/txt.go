// SPDX-License-Identifier: MIT

package playlist

import (
	"strings"

	"github.com/mytv-core/sourcekit/internal/channel"
)

// genreMarker tags group header lines in the txt format.
const genreMarker = "#genre#"

// TxtParser decodes CSV-ish grouped playlists: a group header line sets the
// current group, subsequent lines are "name,url" with optional "#"-delimited
// alternate URLs on the right-hand side.
type TxtParser struct{}

func (TxtParser) Supports(url, data string) bool {
	return strings.Contains(data, genreMarker)
}

func (TxtParser) Parse(data string) ([]channel.Item, error) {
	var items []channel.Item
	groupName := ""

	for _, line := range splitLines(data) {
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "//") {
			continue
		}

		if strings.Contains(line, genreMarker) {
			groupName = strings.TrimSpace(splitComma(line)[0])
			continue
		}

		parts := splitComma(line)
		if len(parts) < 2 {
			continue
		}

		group := groupName
		if group == "" {
			group = DefaultGroupName
		}
		name := strings.TrimSpace(parts[0])
		for _, url := range strings.Split(parts[1], "#") {
			items = append(items, channel.Item{
				GroupName: group,
				Name:      name,
				URL:       strings.TrimSpace(url),
			})
		}
	}

	return items, nil
}

// splitComma splits on both the ASCII and the fullwidth comma.
func splitComma(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "，", ","), ",")
}
