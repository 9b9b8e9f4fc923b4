// SPDX-License-Identifier: MIT

// Package cache wraps expensive refresh operations (network fetch, local
// parse) with a file-backed read-fresh-or-refetch cache. The freshness clock
// is the cache file's modification time; expiry is a caller-supplied
// predicate over it.
package cache

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mytv-core/sourcekit/internal/log"
)

// ExpiryFunc decides whether a cached artifact must be treated as absent.
// cached is nil in stream mode and for a missing file.
type ExpiryFunc func(lastModified time.Time, cached []byte) bool

// Store is one cache slot backed by a single file. Concurrent refreshes of
// the same slot are collapsed to one in-flight refresh; late callers share
// its result.
type Store struct {
	path      string
	deletable bool
	group     singleflight.Group
}

// NewStore creates a cache slot at path, creating parent directories as
// needed.
func NewStore(path string) *Store {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			logger := log.WithComponent("cache")
			logger.Warn().Err(err).Str("path", dir).Msg("create cache dir")
		}
	}
	return &Store{path: path, deletable: true}
}

// NewLocalStore wraps an existing user-owned file as a cache slot. The file
// is the cache, so Clear never deletes it.
func NewLocalStore(path string) *Store {
	return &Store{path: path, deletable: false}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// LastModified returns the backing file's mtime, or the zero time if it does
// not exist.
func (s *Store) LastModified() time.Time {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Bytes returns the cached payload, refreshing it first when expiry says the
// current copy is stale or no usable copy exists. A failing refresh
// propagates and leaves the previous artifact untouched.
func (s *Store) Bytes(ctx context.Context, expiry ExpiryFunc, refresh func(context.Context) ([]byte, error)) ([]byte, error) {
	v, err, _ := s.group.Do(s.path, func() (any, error) {
		data, _ := os.ReadFile(s.path)

		if expiry != nil && expiry(s.LastModified(), data) {
			data = nil
		}

		// a whitespace-only artifact counts as absent
		if len(bytes.TrimSpace(data)) == 0 {
			fresh, err := refresh(ctx)
			if err != nil {
				return nil, err
			}
			if err := s.write(fresh); err != nil {
				return nil, err
			}
			logger := log.WithComponentFromContext(ctx, "cache")
			logger.Debug().Str("path", s.path).Int("bytes", len(fresh)).Msg("cache slot refreshed")
			data = fresh
		}

		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Text is Bytes with a string payload.
func (s *Store) Text(ctx context.Context, expiry ExpiryFunc, refresh func(context.Context) (string, error)) (string, error) {
	data, err := s.Bytes(ctx, expiry, func(ctx context.Context) ([]byte, error) {
		v, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		return []byte(v), nil
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Stream returns a reader over the cached payload, refreshing it first when
// needed. The refresh body is drained into the cache file before the
// returned reader opens it, so a partial download never replaces a valid
// artifact.
func (s *Store) Stream(ctx context.Context, expiry ExpiryFunc, refresh func(context.Context) (io.ReadCloser, error)) (io.ReadCloser, error) {
	_, err, _ := s.group.Do(s.path, func() (any, error) {
		info, statErr := os.Stat(s.path)
		stale := statErr != nil || info.Size() == 0 ||
			(expiry != nil && expiry(s.LastModified(), nil))
		if !stale {
			return nil, nil
		}

		body, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := body.Close(); err != nil {
				logger := log.WithComponentFromContext(ctx, "cache")
				logger.Debug().Err(err).Msg("close refresh body")
			}
		}()
		return nil, s.writeFrom(body)
	})
	if err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

// Clear deletes the backing artifact. I/O failures are logged, never
// propagated; user-owned local files are left alone.
func (s *Store) Clear() {
	if !s.deletable {
		return
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger := log.WithComponent("cache")
		logger.Warn().Err(err).Str("path", s.path).Msg("clear cache")
	}
}

func (s *Store) write(data []byte) error {
	return s.writeWith(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (s *Store) writeFrom(r io.Reader) error {
	return s.writeWith(func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

// writeWith replaces the artifact atomically: a torn write must never
// clobber a previously valid cache file.
func (s *Store) writeWith(fill func(io.Writer) error) error {
	pending, err := renameio.NewPendingFile(s.path)
	if err != nil {
		return err
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger := log.WithComponent("cache")
			logger.Debug().Err(err).Msg("cleanup pending cache file")
		}
	}()

	if err := fill(pending); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}
