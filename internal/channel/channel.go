// SPDX-License-Identifier: MIT

package channel

import "fmt"

// Channel is a named group of playable lines. StandardName is the
// alias-resolved canonical name used for merge-grouping, EpgName the name
// used to join against the programme guide.
type Channel struct {
	Name         string `json:"name"`
	StandardName string `json:"standardName"`
	EpgName      string `json:"epgName"`
	Lines        Lines  `json:"lineList"`
	Logo         string `json:"logo,omitempty"`
	Index        int    `json:"index"`
}

// Same reports channel identity: raw name plus the full line set. Canonical
// name and logo deliberately do not participate, so enrichment passes never
// change what counts as "the same channel".
func (c Channel) Same(other Channel) bool {
	return c.Name == other.Name && c.Lines.Equal(other.Lines)
}

// No returns the 1-based display number, zero-padded to two digits.
func (c Channel) No() string {
	return fmt.Sprintf("%02d", c.Index+1)
}

// Group is a named, ordered channel list.
type Group struct {
	Name     string    `json:"name"`
	Channels []Channel `json:"channelList"`
}

// GroupList is the fully grouped playlist for one source.
type GroupList []Group

// Channels returns the flattened channel view across all groups.
func (gl GroupList) Channels() []Channel {
	var out []Channel
	for _, g := range gl {
		out = append(out, g.Channels...)
	}
	return out
}

// ChannelCount returns the total number of channels across all groups.
func (gl GroupList) ChannelCount() int {
	n := 0
	for _, g := range gl {
		n += len(g.Channels)
	}
	return n
}
