// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestLoggerAnnotations(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "sourcekit-test"})

	logger := WithComponent("cache")
	logger.Warn().Str("path", "/tmp/x").Msg("create cache dir")

	src := WithSource("iptv", "main")
	src.Info().Msg("playlist loaded")

	ctxLogger := WithComponentFromContext(context.Background(), "cache")
	ctxLogger.Debug().Msg("cache slot refreshed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "cache", lines[0]["component"])
	assert.Equal(t, "sourcekit-test", lines[0]["service"])
	assert.Equal(t, "/tmp/x", lines[0]["path"])

	assert.Equal(t, "iptv", lines[1]["component"])
	assert.Equal(t, "main", lines[1]["source"])

	assert.Equal(t, "cache", lines[2]["component"])
	assert.Equal(t, "cache slot refreshed", lines[2]["message"])
}
