// SPDX-License-Identifier: MIT

package epg

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityResolver struct{}

func (identityResolver) StandardName(name string) string { return name }

type upperResolver struct{}

func (upperResolver) StandardName(name string) string { return strings.ToUpper(name) }

const sampleXMLTV = `<?xml version="1.0" encoding="UTF-8"?>
<tv>
  <channel id="c1">
    <display-name>cctv1</display-name>
    <display-name>中央一台</display-name>
    <icon src="http://logo/1.png"/>
  </channel>
  <channel id="empty">
    <icon src="http://logo/x.png"/>
  </channel>
  <programme channel="c1" start="20240101130000 +0000" stop="20240101140000 +0000">
    <title>later</title>
  </programme>
  <programme channel="c1" start="20240101120000 +0000" stop="20240101130000 +0000">
    <title>noon news</title>
  </programme>
  <programme channel="ghost" start="20240101120000 +0000" stop="20240101130000 +0000">
    <title>orphan</title>
  </programme>
</tv>`

func TestParseXMLTV(t *testing.T) {
	list, err := ParseXMLTV(strings.NewReader(sampleXMLTV), upperResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1, "channels without display names and orphan programmes are dropped")

	e := list[0]
	assert.Equal(t, []string{"CCTV1", "中央一台"}, e.ChannelNames, "display names pass through the resolver")
	assert.Equal(t, "http://logo/1.png", e.Logo)

	require.Len(t, e.Programmes, 2)
	assert.Equal(t, "noon news", e.Programmes[0].Title, "programmes come out start-sorted")
	assert.Equal(t, int64(1704110400000), e.Programmes[0].StartAt)
	assert.Equal(t, int64(1704114000000), e.Programmes[0].EndAt)
	assert.Equal(t, "later", e.Programmes[1].Title)
}

func TestParseXMLTV_Empty(t *testing.T) {
	list, err := ParseXMLTV(strings.NewReader(`<tv></tv>`), identityResolver{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestParseXMLTVTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "with offset", in: "20240101120000 +0800", want: 1704081600000},
		{name: "utc", in: "20240101120000 +0000", want: 1704110400000},
		{name: "too short", in: "20240101", want: 0},
		{name: "garbage", in: "not-a-time-at-all", want: 0},
		{name: "empty", in: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseXMLTVTime(tt.in))
		})
	}
}

func TestPickFetcher(t *testing.T) {
	assert.IsType(t, XMLFetcher{}, PickFetcher("http://x/guide.xml"))
	assert.IsType(t, GzipFetcher{}, PickFetcher("http://x/guide.xml.gz"))
	assert.IsType(t, DefaultFetcher{}, PickFetcher("http://x/guide.php?id=1"))
}

func TestGzipFetcher_Open(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sampleXMLTV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	rc, err := GzipFetcher{}.Open(&buf)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleXMLTV, string(data))
}
