// SPDX-License-Identifier: MIT

// Package hybrid supplies web-player fallback lines for channels whose
// direct stream URLs are missing or unreliable.
package hybrid

import "github.com/mytv-core/sourcekit/internal/channel"

// LineProvider yields fallback lines for a canonical channel name.
type LineProvider interface {
	Lines(epgName string) channel.Lines
}

// Table maps canonical channel names to web-player page URLs.
type Table map[string][]string

// Lines returns the fallback lines for epgName, tagged for embedded-browser
// playback.
func (t Table) Lines(epgName string) channel.Lines {
	urls := t[epgName]
	out := make(channel.Lines, 0, len(urls))
	for _, u := range urls {
		out = append(out, channel.Line{URL: u, Hybrid: channel.HybridWebView})
	}
	return out
}

// None is an empty provider.
var None = Table{}

// Default returns the built-in web-player table for the national channels.
func Default() Table {
	return Table{
		"CCTV1":  {"https://tv.cctv.com/live/cctv1/", "https://yangshipin.cn/#/tv/home?pid=600001859"},
		"CCTV2":  {"https://tv.cctv.com/live/cctv2/", "https://yangshipin.cn/#/tv/home?pid=600001800"},
		"CCTV3":  {"https://tv.cctv.com/live/cctv3/"},
		"CCTV4":  {"https://tv.cctv.com/live/cctv4/", "https://yangshipin.cn/#/tv/home?pid=600001814"},
		"CCTV5":  {"https://tv.cctv.com/live/cctv5/", "https://yangshipin.cn/#/tv/home?pid=600001818"},
		"CCTV5+": {"https://tv.cctv.com/live/cctv5plus/"},
		"CCTV6":  {"https://tv.cctv.com/live/cctv6/"},
		"CCTV7":  {"https://tv.cctv.com/live/cctv7/"},
		"CCTV8":  {"https://tv.cctv.com/live/cctv8/"},
		"CCTV9":  {"https://tv.cctv.com/live/cctvjilu/"},
		"CCTV10": {"https://tv.cctv.com/live/cctv10/"},
		"CCTV11": {"https://tv.cctv.com/live/cctv11/"},
		"CCTV12": {"https://tv.cctv.com/live/cctv12/"},
		"CCTV13": {"https://tv.cctv.com/live/cctv13/"},
		"CCTV14": {"https://tv.cctv.com/live/cctvchild/"},
		"CCTV15": {"https://tv.cctv.com/live/cctv15/"},
		"CCTV16": {"https://tv.cctv.com/live/cctv16/"},
		"CCTV17": {"https://tv.cctv.com/live/cctv17/"},
		"湖南卫视":   {"https://www.mgtv.com/live/hunan"},
		"浙江卫视":   {"https://tv.cztv.com/live"},
	}
}
