// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "sourcekit-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("#EXTM3U\n"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("sourcekit-test"))

	text, err := c.GetText(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n", text)

	_, err = c.GetText(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err), "non-2xx must classify as a network failure")
}

func TestClient_Get_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := NewClient(WithTimeout(time.Second)).GetText(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestClient_Get_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("group,#genre#\n"), 0o644))

	c := NewClient()

	text, err := c.GetText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "group,#genre#\n", text)

	text, err = c.GetText(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "group,#genre#\n", text)

	_, err = c.GetText(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.False(t, IsNetworkError(err), "a missing local file is terminal, not retryable")
}

func TestIsNetworkError(t *testing.T) {
	assert.True(t, IsNetworkError(ErrNetwork))
	assert.False(t, IsNetworkError(errors.New("other")))
	assert.False(t, IsNetworkError(nil))
}
