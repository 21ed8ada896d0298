// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent upstream. Crossref's polite
	// pool expects a contact address, e.g.
	// "photonics-trends/0.1 (mailto:contact@example.com)".
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrossrefConfig holds settings for the upstream Crossref client.
type CrossrefConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts for a failed page fetch
	// (default 4).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// BackoffBase is the base delay for exponential backoff between retries
	// (default 800ms).
	BackoffBase time.Duration `json:"backoff_base" yaml:"backoff_base"`

	// LiveCallInterval is the minimum spacing between consecutive live
	// upstream calls (default 1s). Cache hits are exempt.
	LiveCallInterval time.Duration `json:"live_call_interval" yaml:"live_call_interval"`
}

// CacheConfig holds settings for the response cache.
type CacheConfig struct {
	// Path is the SQLite database file path.
	Path string `json:"path" yaml:"path"`

	// TTL is how long a cached page stays fresh (default 24h). Stale entries
	// are treated as misses and overwritten on the next fetch.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// FetchConfig holds settings for the pagination orchestrator.
type FetchConfig struct {
	// MaxRecordsDefault caps collected records when a request does not set
	// its own cap (default 2000).
	MaxRecordsDefault int `json:"max_records_default" yaml:"max_records_default"`

	// RowsPerRequest is the page size sent upstream (default 200, Crossref
	// ceiling 1000).
	RowsPerRequest int `json:"rows_per_request" yaml:"rows_per_request"`

	// MaxPages caps pages per pagination run, guarding against a cursor that
	// never terminates (default 50).
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// AnalysisConfig holds settings for the analytics functions.
type AnalysisConfig struct {
	// LowCoverageThreshold flags coverage rates below this fraction with a
	// warning (default 0.25).
	LowCoverageThreshold float64 `json:"low_coverage_threshold" yaml:"low_coverage_threshold"`

	// LookbackYears is the recent window for emerging-topic growth (default 5).
	LookbackYears int `json:"lookback_years" yaml:"lookback_years"`

	// TopPublishers, TopJournals, TopInstitutions and TopCountries size the
	// respective rankings.
	TopPublishers   int `json:"top_publishers" yaml:"top_publishers"`
	TopJournals     int `json:"top_journals" yaml:"top_journals"`
	TopInstitutions int `json:"top_institutions" yaml:"top_institutions"`
	TopCountries    int `json:"top_countries" yaml:"top_countries"`
}

// GapConfig holds screening thresholds for the gap analysis.
type GapConfig struct {
	// MinTopicCAGR is the minimum overall growth for a topic to qualify as
	// an opportunity (default 0.08).
	MinTopicCAGR float64 `json:"min_topic_cagr" yaml:"min_topic_cagr"`

	// MaxTargetShare is the maximum target-publisher share for a topic to
	// still count as under-represented (default 0.12).
	MaxTargetShare float64 `json:"max_target_share" yaml:"max_target_share"`

	// MinTopicVolume is the minimum matched record count for a topic to be
	// considered at all (default 40).
	MinTopicVolume int `json:"min_topic_volume" yaml:"min_topic_volume"`
}

// EngineConfig groups all stage configurations for the analytics engine.
type EngineConfig struct {
	Crossref CrossrefConfig `json:"crossref" yaml:"crossref"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Gap      GapConfig      `json:"gap" yaml:"gap"`
}
