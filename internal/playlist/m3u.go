// SPDX-License-Identifier: MIT

package playlist

import (
	"regexp"
	"strings"

	"github.com/mytv-core/sourcekit/internal/channel"
)

// DefaultGroupName is assigned when a metadata line carries no group-title.
const DefaultGroupName = "其他"

var (
	tvgNameRe   = regexp.MustCompile(`tvg-name="(.*?)"`)
	groupRe     = regexp.MustCompile(`group-title="(.+?)"`)
	logoRe      = regexp.MustCompile(`tvg-logo="(.+?)"`)
	userAgentRe = regexp.MustCompile(`http-user-agent="(.+?)"`)
	xTvgURLRe   = regexp.MustCompile(`x-tvg-url="(.*?)"`)
	urlTvgRe    = regexp.MustCompile(`url-tvg="(.*?)"`)
)

const (
	propManifestType = "#KODIPROP:inputstream.adaptive.manifest_type"
	propLicenseType  = "#KODIPROP:inputstream.adaptive.license_type"
	propLicenseKey   = "#KODIPROP:inputstream.adaptive.license_key"
)

// M3UParser decodes tag-based playlists. A group-title holding multiple
// semicolon-separated names fans one metadata line out into one item per
// group; KODIPROP directives between the metadata line and the URL line
// apply to all pending items.
type M3UParser struct{}

func (M3UParser) Supports(url, data string) bool {
	return strings.HasPrefix(data, "#EXTM3U")
}

func (M3UParser) Parse(data string) ([]channel.Item, error) {
	var items []channel.Item
	var pending []channel.Item

	for _, line := range splitLines(data) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#EXTINF"):
			pending = parseExtinf(line)

		case strings.HasPrefix(line, propManifestType):
			for i := range pending {
				pending[i].ManifestType = lastSegment(line, "=")
			}
		case strings.HasPrefix(line, propLicenseType):
			for i := range pending {
				pending[i].LicenseType = lastSegment(line, "=")
			}
		case strings.HasPrefix(line, propLicenseKey):
			for i := range pending {
				pending[i].LicenseKey = lastSegment(line, "=")
			}

		case strings.HasPrefix(line, "#"):
			// header or unrelated directive

		default:
			url := strings.TrimSpace(line)
			for _, it := range pending {
				it.URL = url
				items = append(items, it)
			}
			pending = nil
		}
	}

	return items, nil
}

func parseExtinf(line string) []channel.Item {
	name := strings.TrimSpace(lastSegment(line, ","))

	epgName := name
	if m := tvgNameRe.FindStringSubmatch(line); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			epgName = v
		}
	}

	groupNames := []string{DefaultGroupName}
	if m := groupRe.FindStringSubmatch(line); m != nil {
		groupNames = groupNames[:0]
		for _, g := range strings.Split(m[1], ";") {
			groupNames = append(groupNames, strings.TrimSpace(g))
		}
	}

	var logo, userAgent string
	if m := logoRe.FindStringSubmatch(line); m != nil {
		logo = strings.TrimSpace(m[1])
	}
	if m := userAgentRe.FindStringSubmatch(line); m != nil {
		userAgent = strings.TrimSpace(m[1])
	}

	out := make([]channel.Item, 0, len(groupNames))
	for _, group := range groupNames {
		out = append(out, channel.Item{
			GroupName:     group,
			Name:          name,
			EpgName:       epgName,
			Logo:          logo,
			HTTPUserAgent: userAgent,
		})
	}
	return out
}

// EpgURL extracts the programme guide index URL from the header line.
// Either of the two attribute spellings may carry it; only the first
// comma-separated segment counts.
func (M3UParser) EpgURL(data string) string {
	for _, line := range splitLines(data) {
		if !strings.HasPrefix(line, "#EXTM3U") {
			continue
		}
		for _, re := range []*regexp.Regexp{xTvgURLRe, urlTvgRe} {
			if m := re.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(strings.Split(m[1], ",")[0])
			}
		}
		return ""
	}
	return ""
}

func splitLines(data string) []string {
	return strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
}

func lastSegment(s, sep string) string {
	parts := strings.Split(s, sep)
	return parts[len(parts)-1]
}
