// SPDX-License-Identifier: MIT

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mytv-core/sourcekit/internal/cache"
	"github.com/mytv-core/sourcekit/internal/channel"
	"github.com/mytv-core/sourcekit/internal/epg"
	"github.com/mytv-core/sourcekit/internal/fetch"
	"github.com/mytv-core/sourcekit/internal/log"
)

// ErrEmptyEPG marks a structurally successful fetch/parse that yielded no
// guide entries. An empty guide is a failure requiring retry, not a valid
// empty result.
var ErrEmptyEPG = errors.New("programme guide is empty")

// EpgRepository loads one programme guide source into the guide model. The
// raw XML and the parsed result are cached separately so a same-day reload
// never re-parses; the structured slot expires on calendar-day change.
type EpgRepository struct {
	source   EpgSource
	client   *fetch.Client
	resolver channel.Resolver

	xml    *cache.Store
	parsed *cache.Store
	logger zerolog.Logger
}

// NewEpgRepository creates a repository for source, caching under dataDir.
func NewEpgRepository(dataDir string, source EpgSource, client *fetch.Client, resolver channel.Resolver) *EpgRepository {
	return &EpgRepository{
		source:   source,
		client:   client,
		resolver: resolver,
		xml:      cache.NewStore(filepath.Join(dataDir, source.CacheFileName("xml"))),
		parsed:   cache.NewStore(filepath.Join(dataDir, source.CacheFileName("json"))),
		logger:   log.WithSource("epg", source.Name),
	}
}

// EpgList returns the parsed guide, refreshing at most once per calendar
// day.
func (r *EpgRepository) EpgList(ctx context.Context) (epg.List, error) {
	data, err := r.parsed.Text(ctx, cache.CalendarDay(), r.refresh)
	if err != nil {
		r.logger.Error().Err(err).Msg("load programme guide failed")
		return nil, err
	}

	var list epg.List
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("decode cached guide: %w", err)
	}

	r.logger.Info().
		Int("channels", len(list)).
		Int("programmes", list.ProgrammeCount()).
		Msg("programme guide loaded")
	return list, nil
}

// refresh re-parses the guide document into the serialized model.
func (r *EpgRepository) refresh(ctx context.Context) (string, error) {
	stream, err := r.xmlStream(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			r.logger.Debug().Err(err).Msg("close guide stream")
		}
	}()

	list, err := epg.ParseXMLTV(stream, r.resolver)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", ErrEmptyEPG
	}

	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode guide: %w", err)
	}
	return string(data), nil
}

// xmlStream fetches the raw guide through its own cache slot, decompressing
// as the URL calls for.
func (r *EpgRepository) xmlStream(ctx context.Context) (io.ReadCloser, error) {
	return r.xml.Stream(ctx, cache.TTL(0), func(ctx context.Context) (io.ReadCloser, error) {
		r.logger.Debug().Str("url", r.source.URL).Msg("fetching programme guide")

		body, err := r.client.Get(ctx, r.source.URL)
		if err != nil {
			return nil, err
		}

		decoded, err := epg.PickFetcher(r.source.URL).Open(body)
		if err != nil {
			_ = body.Close()
			return nil, fmt.Errorf("%w: %v", fetch.ErrNetwork, err)
		}
		return compositeCloser{Reader: decoded, closers: []io.Closer{decoded, body}}, nil
	})
}

// ClearCache drops both cache layers for this source.
func (r *EpgRepository) ClearCache() {
	r.xml.Clear()
	r.parsed.Clear()
}

// ClearAllEpgCache sweeps the whole guide cache directory.
func ClearAllEpgCache(dataDir string) {
	clearDir(filepath.Join(dataDir, EpgCacheDir))
}

type compositeCloser struct {
	io.Reader
	closers []io.Closer
}

func (c compositeCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
