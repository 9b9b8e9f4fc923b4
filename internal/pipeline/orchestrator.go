// SPDX-License-Identifier: MIT

// Package pipeline sequences the per-session source acquisition: alias
// refresh, channel load with retry, similar-channel merge, hybrid fallback
// lines, guide load and filtering, and guide-metadata merge.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/mytv-core/sourcekit/internal/alias"
	"github.com/mytv-core/sourcekit/internal/channel"
	"github.com/mytv-core/sourcekit/internal/config"
	"github.com/mytv-core/sourcekit/internal/epg"
	"github.com/mytv-core/sourcekit/internal/fetch"
	"github.com/mytv-core/sourcekit/internal/hybrid"
	"github.com/mytv-core/sourcekit/internal/log"
	"github.com/mytv-core/sourcekit/internal/repository"
)

// epgConcurrency bounds simultaneous guide fetch/parse operations across all
// sources; guides are the largest documents in the system.
const epgConcurrency = 5

// Result is one completed acquisition session.
type Result struct {
	Groups   channel.GroupList
	Filtered channel.GroupList
	Matcher  *epg.Matcher
}

// Orchestrator runs acquisition sessions. Construct with New and share one
// instance; the guide semaphore it carries is the global concurrency bound.
type Orchestrator struct {
	cfg      config.Settings
	resolver *alias.Resolver
	client   *fetch.Client
	hybrid   hybrid.LineProvider

	epgSem *semaphore.Weighted
	logger zerolog.Logger

	mu        sync.Mutex
	favorites channel.FavoriteList

	// OnStage, when set, receives coarse progress notifications.
	OnStage func(stage string)
}

// New wires an orchestrator from its collaborators.
func New(cfg config.Settings, resolver *alias.Resolver, client *fetch.Client, provider hybrid.LineProvider) *Orchestrator {
	if provider == nil {
		provider = hybrid.None
	}
	return &Orchestrator{
		cfg:      cfg,
		resolver: resolver,
		client:   client,
		hybrid:   provider,
		epgSem:   semaphore.NewWeighted(epgConcurrency),
		logger:   log.WithComponent("pipeline"),
	}
}

// SetFavorites replaces the pinned channel list consulted during guide
// filtering and refreshed after channel loads.
func (o *Orchestrator) SetFavorites(fl channel.FavoriteList) {
	o.mu.Lock()
	o.favorites = fl
	o.mu.Unlock()
}

// Favorites returns the current pinned channel list.
func (o *Orchestrator) Favorites() channel.FavoriteList {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.favorites
}

func (o *Orchestrator) stage(s string) {
	if o.OnStage != nil {
		o.OnStage(s)
	}
	o.logger.Debug().Str("stage", s).Msg("pipeline stage")
}

// Run executes one full acquisition session. A channel-load failure is
// terminal; a guide failure degrades to an empty guide.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	o.resolver.Refresh()

	iptvRepo := o.iptvRepository(o.currentSource())

	o.stage("load channels")
	groups, err := o.loadChannels(ctx, iptvRepo)
	if err != nil {
		return nil, err
	}

	if o.cfg.MergeSimilar {
		o.stage("merge similar channels")
		groups = MergeSimilar(groups)
	}

	if o.cfg.HybridMode != config.HybridDisable {
		o.stage("apply hybrid lines")
		groups = ApplyHybrid(groups, o.hybrid, o.cfg.HybridMode)
	}

	o.stage("load programme guide")
	list := o.loadEpg(ctx, iptvRepo, groups)
	list = FilterEpg(list, groups, o.Favorites())
	matcher := epg.NewMatcher(list)

	o.stage("merge guide metadata")
	groups = MergeEpgLogos(groups, matcher)

	o.SetFavorites(o.Favorites().Refresh(o.cfg.IptvSourceName, groups))

	return &Result{
		Groups:   groups,
		Filtered: o.filterHidden(groups),
		Matcher:  matcher,
	}, nil
}

func (o *Orchestrator) currentSource() repository.IptvSource {
	return repository.IptvSource{
		Name:        o.cfg.IptvSourceName,
		URL:         o.cfg.IptvSourceURL,
		IsLocal:     o.cfg.IptvIsLocal,
		TransformJS: o.cfg.TransformJS,
	}
}

func (o *Orchestrator) iptvRepository(src repository.IptvSource) *repository.IptvRepository {
	return repository.NewIptvRepository(o.cfg.DataDir, src, o.client, o.resolver)
}

// loadChannels fetches the grouped channel list, retrying transient network
// failures a bounded number of times with a fixed delay.
func (o *Orchestrator) loadChannels(ctx context.Context, repo *repository.IptvRepository) (channel.GroupList, error) {
	return retry(ctx, o.cfg.RetryCount, o.cfg.RetryInterval, fetch.IsNetworkError,
		func(ctx context.Context) (channel.GroupList, error) {
			return repo.ChannelGroups(ctx, o.cfg.CacheTime)
		})
}

// loadEpg fetches the programme guide for the session. Guide failures are
// never terminal: live viewing works without a guide, so the session
// degrades to an empty list.
func (o *Orchestrator) loadEpg(ctx context.Context, iptvRepo *repository.IptvRepository, groups channel.GroupList) epg.List {
	if !o.cfg.EpgEnabled {
		return nil
	}
	if hour := time.Now().Hour(); hour < o.cfg.EpgRefreshHour {
		o.logger.Info().Int("hour", hour).Int("threshold", o.cfg.EpgRefreshHour).
			Msg("before guide refresh threshold, skipping")
		return nil
	}

	source := o.epgSource(ctx, iptvRepo)
	if source.URL == "" {
		return nil
	}

	if err := o.epgSem.Acquire(ctx, 1); err != nil {
		return nil
	}
	defer o.epgSem.Release(1)

	repo := repository.NewEpgRepository(o.cfg.DataDir, source, o.client, o.resolver)
	list, err := retry(ctx, o.cfg.RetryCount, o.cfg.RetryInterval, retryableEpg,
		func(ctx context.Context) (epg.List, error) {
			return repo.EpgList(ctx)
		})
	if err != nil {
		o.logger.Warn().Err(err).Msg("guide unavailable, continuing without programme data")
		return nil
	}
	return list
}

// epgSource resolves the guide source, preferring an index URL embedded in
// the playlist when follow-iptv is enabled.
func (o *Orchestrator) epgSource(ctx context.Context, iptvRepo *repository.IptvRepository) repository.EpgSource {
	if o.cfg.EpgFollowIptv {
		if url := iptvRepo.EpgURL(ctx); url != "" {
			return repository.EpgSource{Name: o.cfg.IptvSourceName, URL: url}
		}
	}
	return repository.EpgSource{Name: o.cfg.EpgSourceName, URL: o.cfg.EpgSourceURL}
}

func (o *Orchestrator) filterHidden(groups channel.GroupList) channel.GroupList {
	out := make(channel.GroupList, 0, len(groups))
	for _, g := range groups {
		if !o.cfg.IsGroupHidden(g.Name) {
			out = append(out, g)
		}
	}
	return out
}

// RefreshOtherSources reloads channel lists for sources referenced by
// favorites other than the current one, refreshing their pinned snapshots.
// Individual source failures are logged and skipped.
func (o *Orchestrator) RefreshOtherSources(ctx context.Context, known []repository.IptvSource) {
	needed := map[string]struct{}{}
	for _, name := range o.Favorites().SourceNames() {
		if name != o.cfg.IptvSourceName {
			needed[name] = struct{}{}
		}
	}

	for _, src := range known {
		if _, ok := needed[src.Name]; !ok {
			continue
		}
		groups, err := o.iptvRepository(src).ChannelGroups(ctx, o.cfg.CacheTime)
		if err != nil {
			o.logger.Warn().Err(err).Str("source", src.Name).Msg("background source refresh failed")
			continue
		}
		o.SetFavorites(o.Favorites().Refresh(src.Name, groups))
	}
}

// ClearCache drops all cached artifacts and resets the alias memo.
func (o *Orchestrator) ClearCache() {
	repository.ClearAllIptvCache(o.cfg.DataDir)
	repository.ClearAllEpgCache(o.cfg.DataDir)
	o.resolver.Refresh()
}

func retryableEpg(err error) bool {
	return fetch.IsNetworkError(err) || errors.Is(err, repository.ErrEmptyEPG)
}

// retry runs op up to 1+attempts times, sleeping a fixed interval between
// attempts, re-attempting only errors the classifier accepts.
func retry[T any](ctx context.Context, attempts int, interval time.Duration, retryable func(error) bool, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(interval):
			}
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !retryable(err) {
			return zero, err
		}
		lastErr = err
	}
	return zero, lastErr
}
