// SPDX-License-Identifier: MIT

// Package config holds the environment-backed runtime settings.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// HybridMode selects how web-player fallback lines combine with direct
// stream lines.
type HybridMode string

const (
	HybridDisable     HybridMode = "disable"
	HybridIptvFirst   HybridMode = "iptv-first"
	HybridHybridFirst HybridMode = "hybrid-first"
)

// Settings is the runtime configuration. All fields map to SOURCEKIT_*
// environment variables.
type Settings struct {
	DataDir   string
	AliasFile string

	IptvSourceName string
	IptvSourceURL  string
	IptvIsLocal    bool
	TransformJS    string

	EpgEnabled     bool
	EpgSourceName  string
	EpgSourceURL   string
	EpgFollowIptv  bool
	EpgRefreshHour int

	CacheTime     time.Duration
	FetchTimeout  time.Duration
	RetryCount    int
	RetryInterval time.Duration

	MergeSimilar bool
	HybridMode   HybridMode
	HiddenGroups []string

	RefreshCron string
	LogLevel    string
}

// FromEnv reads settings from the environment, applying defaults.
func FromEnv() Settings {
	return Settings{
		DataDir:   envStr("SOURCEKIT_DATA_DIR", "data"),
		AliasFile: envStr("SOURCEKIT_ALIAS_FILE", "channel_name_alias.json"),

		IptvSourceName: envStr("SOURCEKIT_IPTV_NAME", "default"),
		IptvSourceURL:  envStr("SOURCEKIT_IPTV_URL", ""),
		IptvIsLocal:    envBool("SOURCEKIT_IPTV_LOCAL", false),
		TransformJS:    envStr("SOURCEKIT_IPTV_TRANSFORM_JS", ""),

		EpgEnabled:     envBool("SOURCEKIT_EPG_ENABLE", true),
		EpgSourceName:  envStr("SOURCEKIT_EPG_NAME", "default"),
		EpgSourceURL:   envStr("SOURCEKIT_EPG_URL", ""),
		EpgFollowIptv:  envBool("SOURCEKIT_EPG_FOLLOW_IPTV", false),
		EpgRefreshHour: envInt("SOURCEKIT_EPG_REFRESH_HOUR", 0),

		CacheTime:     envDuration("SOURCEKIT_CACHE_TIME", 24*time.Hour),
		FetchTimeout:  envDuration("SOURCEKIT_FETCH_TIMEOUT", 30*time.Second),
		RetryCount:    envInt("SOURCEKIT_RETRY_COUNT", 10),
		RetryInterval: envDuration("SOURCEKIT_RETRY_INTERVAL", 3*time.Second),

		MergeSimilar: envBool("SOURCEKIT_MERGE_SIMILAR", false),
		HybridMode:   parseHybridMode(envStr("SOURCEKIT_HYBRID_MODE", string(HybridDisable))),
		HiddenGroups: envList("SOURCEKIT_HIDDEN_GROUPS"),

		RefreshCron: envStr("SOURCEKIT_REFRESH_CRON", "0 0 * * *"),
		LogLevel:    envStr("SOURCEKIT_LOG_LEVEL", ""),
	}
}

// IsGroupHidden reports whether a channel group is excluded from the
// filtered view.
func (s Settings) IsGroupHidden(name string) bool {
	for _, g := range s.HiddenGroups {
		if g == name {
			return true
		}
	}
	return false
}

func parseHybridMode(v string) HybridMode {
	switch HybridMode(strings.ToLower(v)) {
	case HybridIptvFirst:
		return HybridIptvFirst
	case HybridHybridFirst:
		return HybridHybridFirst
	default:
		return HybridDisable
	}
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
