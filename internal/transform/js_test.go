// SPDX-License-Identifier: MIT

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytv-core/sourcekit/internal/channel"
)

func TestJS_Apply(t *testing.T) {
	items := []channel.Item{
		{GroupName: "央视", Name: "CCTV-1", URL: "http://a/1"},
		{GroupName: "购物", Name: "购物台", URL: "http://a/2"},
	}

	script := `
function main(channelList) {
	return channelList
		.filter(function(it) { return it.groupName !== "购物"; })
		.map(function(it) { it.groupName = "精选"; return it; });
}`

	got, err := NewJS(script).Apply(items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "精选", got[0].GroupName)
	assert.Equal(t, "CCTV-1", got[0].Name)
	assert.Equal(t, "http://a/1", got[0].URL)
}

func TestJS_Apply_EmptyScriptIsNoop(t *testing.T) {
	items := []channel.Item{{Name: "CCTV-1", URL: "http://a/1"}}
	got, err := NewJS("").Apply(items)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestJS_Apply_ScriptErrors(t *testing.T) {
	items := []channel.Item{{Name: "CCTV-1", URL: "http://a/1"}}

	_, err := NewJS(`function main(list) { throw new Error("nope"); }`).Apply(items)
	assert.Error(t, err)

	_, err = NewJS(`this is not javascript`).Apply(items)
	assert.Error(t, err)

	_, err = NewJS(`function main(list) { return "not a list"; }`).Apply(items)
	assert.Error(t, err)
}
