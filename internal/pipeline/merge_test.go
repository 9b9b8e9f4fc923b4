// SPDX-License-Identifier: MIT

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytv-core/sourcekit/internal/channel"
	"github.com/mytv-core/sourcekit/internal/config"
	"github.com/mytv-core/sourcekit/internal/epg"
	"github.com/mytv-core/sourcekit/internal/hybrid"
)

func TestMergeSimilar(t *testing.T) {
	groups := channel.GroupList{{
		Name: "央视",
		Channels: []channel.Channel{
			{Name: "CCTV-1", StandardName: "CCTV1", Lines: channel.Lines{{URL: "http://a/1"}, {URL: "http://a/2"}}},
			{Name: "CCTV1高清", StandardName: "CCTV1", Lines: channel.Lines{{URL: "http://a/2"}, {URL: "http://a/3"}}},
			{Name: "CCTV-2", StandardName: "CCTV2", Lines: channel.Lines{{URL: "http://b/1"}}},
		},
	}}

	merged := MergeSimilar(groups)
	require.Len(t, merged, 1)
	require.Len(t, merged[0].Channels, 2)

	cctv1 := merged[0].Channels[0]
	assert.Equal(t, "CCTV1", cctv1.Name, "merged channel takes the canonical name")
	require.Len(t, cctv1.Lines, 3, "lines concatenate and de-duplicate by URL")
	assert.Equal(t, "CCTV-1", cctv1.Lines[0].Name, "lines carry their origin channel name")
	assert.Equal(t, "CCTV1高清", cctv1.Lines[2].Name)

	cctv2 := merged[0].Channels[1]
	assert.Equal(t, "CCTV-2", cctv2.Name, "singleton channels pass through untouched")
	assert.Empty(t, cctv2.Lines[0].Name)
}

func TestApplyHybrid(t *testing.T) {
	provider := hybrid.Table{"CCTV1": {"https://web/cctv1"}}
	groups := channel.GroupList{{
		Name: "央视",
		Channels: []channel.Channel{
			{Name: "CCTV-1", EpgName: "CCTV1", Lines: channel.Lines{{URL: "http://a/1"}}},
			{Name: "无网页台", EpgName: "无网页台", Lines: channel.Lines{{URL: "http://b/1"}}},
		},
	}}

	t.Run("hybrid first prepends", func(t *testing.T) {
		out := ApplyHybrid(groups, provider, config.HybridHybridFirst)
		lines := out[0].Channels[0].Lines
		require.Len(t, lines, 2)
		assert.Equal(t, "https://web/cctv1", lines[0].URL)
		assert.True(t, lines[0].IsWebView())
		assert.Equal(t, "http://a/1", lines[1].URL)
	})

	t.Run("iptv first appends", func(t *testing.T) {
		out := ApplyHybrid(groups, provider, config.HybridIptvFirst)
		lines := out[0].Channels[0].Lines
		require.Len(t, lines, 2)
		assert.Equal(t, "http://a/1", lines[0].URL)
		assert.Equal(t, "https://web/cctv1", lines[1].URL)
	})

	t.Run("channels without fallback untouched", func(t *testing.T) {
		out := ApplyHybrid(groups, provider, config.HybridHybridFirst)
		assert.Len(t, out[0].Channels[1].Lines, 1)
	})

	t.Run("disable passes through", func(t *testing.T) {
		out := ApplyHybrid(groups, provider, config.HybridDisable)
		assert.Len(t, out[0].Channels[0].Lines, 1)
	})

	t.Run("source is not mutated", func(t *testing.T) {
		ApplyHybrid(groups, provider, config.HybridHybridFirst)
		assert.Len(t, groups[0].Channels[0].Lines, 1)
	})
}

func TestFilterEpg(t *testing.T) {
	list := epg.List{
		{ChannelNames: []string{"CCTV1"}},
		{ChannelNames: []string{"CCTV2"}},
		{ChannelNames: []string{"无关频道"}},
	}
	groups := channel.GroupList{{
		Name:     "央视",
		Channels: []channel.Channel{{Name: "CCTV-1", EpgName: "CCTV1"}},
	}}
	favorites := channel.FavoriteList{{Channel: channel.Channel{Name: "CCTV-2", EpgName: "CCTV2"}}}

	out := FilterEpg(list, groups, favorites)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"CCTV1"}, out[0].ChannelNames)
	assert.Equal(t, []string{"CCTV2"}, out[1].ChannelNames, "favorite channels keep their guide entries")

	assert.Empty(t, FilterEpg(nil, groups, favorites))
}

func TestMergeEpgLogos(t *testing.T) {
	groups := channel.GroupList{{
		Name: "央视",
		Channels: []channel.Channel{
			{Name: "CCTV-1", EpgName: "CCTV1"},
			{Name: "CCTV-2", EpgName: "CCTV2", Logo: "http://keep/2.png"},
		},
	}}

	t.Run("fills only missing logos", func(t *testing.T) {
		matcher := epg.NewMatcher(epg.List{
			{ChannelNames: []string{"CCTV1"}, Logo: "http://guide/1.png"},
			{ChannelNames: []string{"CCTV2"}, Logo: "http://guide/2.png"},
		})
		out := MergeEpgLogos(groups, matcher)
		assert.Equal(t, "http://guide/1.png", out[0].Channels[0].Logo)
		assert.Equal(t, "http://keep/2.png", out[0].Channels[1].Logo, "existing logos win")
	})

	t.Run("guide without logos leaves groups untouched", func(t *testing.T) {
		matcher := epg.NewMatcher(epg.List{{ChannelNames: []string{"CCTV1"}}})
		out := MergeEpgLogos(groups, matcher)
		assert.Empty(t, out[0].Channels[0].Logo)
	})
}
