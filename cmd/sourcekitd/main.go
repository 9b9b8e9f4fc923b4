// SPDX-License-Identifier: MIT

// Command sourcekitd runs the channel-source acquisition pipeline: an
// initial session at startup, then scheduled background refreshes.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mytv-core/sourcekit/internal/alias"
	"github.com/mytv-core/sourcekit/internal/config"
	"github.com/mytv-core/sourcekit/internal/fetch"
	"github.com/mytv-core/sourcekit/internal/hybrid"
	"github.com/mytv-core/sourcekit/internal/log"
	"github.com/mytv-core/sourcekit/internal/pipeline"
)

func main() {
	// optional; the environment itself is the source of truth
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log.Configure(log.Config{Level: cfg.LogLevel, Service: "sourcekitd"})
	logger := log.WithComponent("main")

	if cfg.IptvSourceURL == "" {
		logger.Fatal().Msg("SOURCEKIT_IPTV_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resolver := alias.NewResolver(cfg.AliasFile)
	client := fetch.NewClient(fetch.WithTimeout(cfg.FetchTimeout))
	orch := pipeline.New(cfg, resolver, client, hybrid.Default())
	orch.OnStage = func(stage string) {
		logger.Info().Str("stage", stage).Msg("pipeline progress")
	}

	go func() {
		if err := resolver.Watch(ctx); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("alias watcher stopped")
		}
	}()

	run := func() {
		result, err := orch.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("acquisition session failed")
			return
		}
		logger.Info().
			Int("groups", len(result.Groups)).
			Int("channels", result.Groups.ChannelCount()).
			Int("guide_channels", len(result.Matcher.List())).
			Msg("acquisition session complete")
	}

	run()

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.RefreshCron, run); err != nil {
		logger.Fatal().Err(err).Str("cron", cfg.RefreshCron).Msg("invalid refresh schedule")
	}
	sched.Start()
	defer sched.Stop()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
}
