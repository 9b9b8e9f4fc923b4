// SPDX-License-Identifier: MIT

package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTxt = `央视频道,#genre#
CCTV-1,http://a/1#http://a/2
CCTV-2,http://a/3

// 注释行
#注释行
卫视频道，#genre#
湖南卫视，http://b/1
孤儿行没有逗号
`

func TestTxtParser_Parse(t *testing.T) {
	items, err := TxtParser{}.Parse(sampleTxt)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "央视频道", items[0].GroupName)
	assert.Equal(t, "CCTV-1", items[0].Name)
	assert.Equal(t, "http://a/1", items[0].URL)
	assert.Equal(t, "http://a/2", items[1].URL, "hash-delimited alternates fan out")
	assert.Equal(t, "CCTV-1", items[1].Name)

	assert.Equal(t, "http://a/3", items[2].URL)

	hntv := items[3]
	assert.Equal(t, "卫视频道", hntv.GroupName, "fullwidth comma accepted in headers")
	assert.Equal(t, "湖南卫视", hntv.Name)
	assert.Equal(t, "http://b/1", hntv.URL)
}

func TestTxtParser_NoHeaderFallsBackToDefaultGroup(t *testing.T) {
	items, err := TxtParser{}.Parse("漂流频道,http://x/1\n频道组,#genre#\n")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, DefaultGroupName, items[0].GroupName)
}

func TestTxtParser_Supports(t *testing.T) {
	assert.True(t, TxtParser{}.Supports("http://x/list.txt", sampleTxt))
	assert.False(t, TxtParser{}.Supports("http://x/list.txt", "name,http://a/1"))
}

func TestPick(t *testing.T) {
	assert.IsType(t, M3UParser{}, Pick("http://x", "#EXTM3U\n"))
	assert.IsType(t, TxtParser{}, Pick("http://x", sampleTxt))
	assert.IsType(t, DefaultParser{}, Pick("http://x", "<html>"))
}

func TestDefaultParser_DiagnosticEntries(t *testing.T) {
	items, err := DefaultParser{}.Parse("<html>")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "未知直播源格式", it.GroupName)
		assert.NotEmpty(t, it.URL)
	}
}
