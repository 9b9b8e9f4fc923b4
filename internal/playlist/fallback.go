// SPDX-License-Identifier: MIT

package playlist

import "github.com/mytv-core/sourcekit/internal/channel"

// DefaultParser matches any document and yields two diagnostic entries
// naming the supported formats, so an unrecognized source still renders as a
// browsable (if useless) playlist instead of an error.
type DefaultParser struct{}

func (DefaultParser) Supports(url, data string) bool {
	return true
}

func (DefaultParser) Parse(data string) ([]channel.Item, error) {
	return []channel.Item{
		{
			GroupName: "未知直播源格式",
			Name:      "支持m3u（以#EXTM3U开头）",
			URL:       "http://1.2.3.4",
		},
		{
			GroupName: "未知直播源格式",
			Name:      "支持txt（包含#genre#）",
			URL:       "http://1.2.3.4",
		},
	}, nil
}
