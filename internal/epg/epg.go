// SPDX-License-Identifier: MIT

// Package epg holds the programme-guide domain model and the streaming XMLTV
// parser feeding it.
package epg

import "time"

// Programme is a single scheduled broadcast. Times are epoch milliseconds.
type Programme struct {
	StartAt int64  `json:"startAt"`
	EndAt   int64  `json:"endAt"`
	Title   string `json:"title"`
}

// Epg is one guide channel: the names it answers to, an optional logo, and
// its programmes in start-time order. The ordering invariant is what makes
// Recent's binary search valid.
type Epg struct {
	ChannelNames []string    `json:"channelList"`
	Logo         string      `json:"logo,omitempty"`
	Programmes   []Programme `json:"programmeList"`
}

// Recent pairs the live programme with the immediately following one.
type Recent struct {
	Now  *Programme
	Next *Programme
}

// RecentProgramme binary-searches the sorted programme list for the
// programme whose [start,end) interval contains now, and returns it together
// with its successor. A schedule gap yields an empty result.
func (e Epg) RecentProgramme(now time.Time) Recent {
	ms := now.UnixMilli()
	lo, hi := 0, len(e.Programmes)
	for lo < hi {
		mid := (lo + hi) / 2
		p := e.Programmes[mid]
		switch {
		case ms < p.StartAt:
			hi = mid
		case ms >= p.EndAt:
			lo = mid + 1
		default:
			r := Recent{Now: &e.Programmes[mid]}
			if mid+1 < len(e.Programmes) {
				r.Next = &e.Programmes[mid+1]
			}
			return r
		}
	}
	return Recent{}
}

// List is an ordered guide collection, one entry per guide channel.
type List []Epg

// ProgrammeCount returns the total programme count across the list.
func (l List) ProgrammeCount() int {
	n := 0
	for _, e := range l {
		n += len(e.Programmes)
	}
	return n
}
