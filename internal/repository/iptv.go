// SPDX-License-Identifier: MIT

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mytv-core/sourcekit/internal/cache"
	"github.com/mytv-core/sourcekit/internal/channel"
	"github.com/mytv-core/sourcekit/internal/fetch"
	"github.com/mytv-core/sourcekit/internal/log"
	"github.com/mytv-core/sourcekit/internal/playlist"
	"github.com/mytv-core/sourcekit/internal/transform"
)

// IptvRepository loads one playlist source into the grouped channel model.
// Raw document and parsed result are cached in separate slots; a raw
// re-fetch always invalidates the derived parse.
type IptvRepository struct {
	source   IptvSource
	client   *fetch.Client
	resolver channel.Resolver
	strategy transform.Strategy

	raw    *cache.Store
	parsed *cache.Store
	logger zerolog.Logger
}

// NewIptvRepository creates a repository for source, caching under dataDir.
// For local sources the user's own file serves as the raw cache: it is never
// time-expired and never deleted.
func NewIptvRepository(dataDir string, source IptvSource, client *fetch.Client, resolver channel.Resolver) *IptvRepository {
	var raw *cache.Store
	if source.IsLocal {
		raw = cache.NewLocalStore(source.URL)
	} else {
		raw = cache.NewStore(filepath.Join(dataDir, source.CacheFileName("txt")))
	}

	return &IptvRepository{
		source:   source,
		client:   client,
		resolver: resolver,
		strategy: transform.NewJS(source.TransformJS),
		raw:      raw,
		parsed:   cache.NewStore(filepath.Join(dataDir, source.CacheFileName("json"))),
		logger:   log.WithSource("iptv", source.Name),
	}
}

// ChannelGroups returns the grouped channel list, serving the parsed cache
// unless its TTL elapsed or the raw layer has been re-fetched since the last
// parse.
func (r *IptvRepository) ChannelGroups(ctx context.Context, cacheTime time.Duration) (channel.GroupList, error) {
	ttl := cache.TTL(cacheTime)
	if r.source.IsLocal {
		ttl = cache.Never()
	}
	expiry := cache.Any(ttl, cache.ModifiedAfter(r.raw))

	data, err := r.parsed.Text(ctx, expiry, r.refresh)
	if err != nil {
		r.logger.Error().Err(err).Msg("load playlist failed")
		return nil, err
	}

	var groups channel.GroupList
	if err := json.Unmarshal([]byte(data), &groups); err != nil {
		return nil, fmt.Errorf("decode cached playlist: %w", err)
	}

	r.logger.Info().
		Int("groups", len(groups)).
		Int("channels", groups.ChannelCount()).
		Msg("playlist loaded")
	return groups, nil
}

// refresh re-parses the raw document into the serialized grouped model.
func (r *IptvRepository) refresh(ctx context.Context) (string, error) {
	raw, err := r.rawText(ctx, 0)
	if err != nil {
		return "", err
	}

	parser := playlist.Pick(r.source.URL, raw)
	items, err := parser.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse playlist: %w", err)
	}

	start := time.Now()
	if transformed, err := r.strategy.Apply(items); err != nil {
		// transform failures never abort the pipeline
		r.logger.Warn().Err(err).Msg("transform script failed, keeping untransformed items")
	} else {
		items = transformed
	}

	groups := channel.GroupItems(items, r.resolver)
	data, err := json.Marshal(groups)
	if err != nil {
		return "", fmt.Errorf("encode playlist: %w", err)
	}

	r.logger.Debug().Dur("elapsed", time.Since(start)).Msg("playlist parsed")
	return string(data), nil
}

// rawText fetches the raw playlist text through the raw cache slot. Local
// sources read straight from the user's file, never expiring by time.
func (r *IptvRepository) rawText(ctx context.Context, cacheTime time.Duration) (string, error) {
	expiry := cache.TTL(cacheTime)
	if r.source.IsLocal {
		expiry = cache.Never()
	}
	return r.raw.Text(ctx, expiry, func(ctx context.Context) (string, error) {
		r.logger.Debug().Str("url", r.source.URL).Msg("fetching playlist")
		return r.client.GetText(ctx, r.source.URL)
	})
}

// EpgURL extracts an embedded programme guide index URL from the raw
// playlist, best-effort. Any failure yields the empty string.
func (r *IptvRepository) EpgURL(ctx context.Context) string {
	raw, err := r.raw.Text(ctx, cache.Never(), func(ctx context.Context) (string, error) {
		return r.client.GetText(ctx, r.source.URL)
	})
	if err != nil {
		return ""
	}

	parser := playlist.Pick(r.source.URL, raw)
	if ep, ok := parser.(playlist.EpgURLer); ok {
		return ep.EpgURL(raw)
	}
	return ""
}

// ClearCache drops both cache layers for this source. The raw slot of a
// local source is the user's own file and survives.
func (r *IptvRepository) ClearCache() {
	r.raw.Clear()
	r.parsed.Clear()
}

// ClearAllIptvCache sweeps the whole playlist cache directory. I/O failures
// are logged, never propagated.
func ClearAllIptvCache(dataDir string) {
	clearDir(filepath.Join(dataDir, IptvCacheDir))
}

func clearDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logger := log.WithComponent("repository")
		logger.Warn().Err(err).Str("path", dir).Msg("clear cache dir")
	}
}
