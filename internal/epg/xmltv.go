// SPDX-License-Identifier: MIT

package epg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mytv-core/sourcekit/internal/channel"
)

// maxXMLSize caps guide documents; multi-day national guides stay well
// under this.
const maxXMLSize = 50 * 1024 * 1024

// xmltvTimeLayout matches "20240101120000 +0000".
const xmltvTimeLayout = "20060102150405 -0700"

type parseState int

const (
	stateIdle parseState = iota
	stateInChannel
)

type pendingChannel struct {
	id           string
	displayNames []string
	icon         string
}

type pendingProgramme struct {
	channelID string
	start     int64
	end       int64
	title     string
}

// ParseXMLTV event-parses a guide document without building a DOM, so
// multi-megabyte guides stay memory-bounded. Channels are kept only when at
// least one display name was captured; programmes are kept only when their
// channel attribute references an already-seen channel. Display names pass
// through the alias resolver, since guides and playlists rarely share a
// naming convention.
func ParseXMLTV(r io.Reader, resolve channel.Resolver) (List, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxXMLSize))
	// no entity expansion: guides are untrusted input
	dec.Entity = map[string]string{}
	dec.Strict = false

	state := stateIdle
	var cur *pendingChannel

	var channels []pendingChannel
	seen := map[string]struct{}{}
	var programmes []pendingProgramme

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xmltv: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "channel":
				cur = &pendingChannel{id: attr(t, "id")}
				state = stateInChannel

			case "display-name":
				if state != stateInChannel || cur == nil {
					continue
				}
				var name string
				if err := dec.DecodeElement(&name, &t); err != nil {
					continue
				}
				cur.displayNames = append(cur.displayNames, resolve.StandardName(name))

			case "icon":
				if state == stateInChannel && cur != nil {
					cur.icon = attr(t, "src")
				}
				if err := dec.Skip(); err != nil {
					continue
				}

			case "programme":
				id := attr(t, "channel")
				if _, ok := seen[id]; !ok {
					if err := dec.Skip(); err != nil {
						continue
					}
					continue
				}
				var body struct {
					Title string `xml:"title"`
				}
				start := parseXMLTVTime(attr(t, "start"))
				end := parseXMLTVTime(attr(t, "stop"))
				if err := dec.DecodeElement(&body, &t); err != nil {
					continue
				}
				programmes = append(programmes, pendingProgramme{
					channelID: id,
					start:     start,
					end:       end,
					title:     body.Title,
				})
			}

		case xml.EndElement:
			if t.Name.Local == "channel" && state == stateInChannel {
				if cur != nil && len(cur.displayNames) > 0 {
					channels = append(channels, *cur)
					seen[cur.id] = struct{}{}
				}
				cur = nil
				state = stateIdle
			}
		}
	}

	byChannel := make(map[string][]Programme, len(channels))
	for _, p := range programmes {
		byChannel[p.channelID] = append(byChannel[p.channelID], Programme{
			StartAt: p.start,
			EndAt:   p.end,
			Title:   p.title,
		})
	}
	// binary search over programmes requires start-time order
	for id := range byChannel {
		ps := byChannel[id]
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].StartAt < ps[j].StartAt })
	}

	out := make(List, 0, len(channels))
	for _, c := range channels {
		out = append(out, Epg{
			ChannelNames: c.displayNames,
			Logo:         c.icon,
			Programmes:   byChannel[c.id],
		})
	}
	return out, nil
}

// parseXMLTVTime resolves a guide timestamp to epoch milliseconds. Short or
// malformed strings resolve to 0 instead of failing the whole parse.
func parseXMLTVTime(s string) int64 {
	if len(s) < 14 {
		return 0
	}
	t, err := time.Parse(xmltvTimeLayout, s)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
