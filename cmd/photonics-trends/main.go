// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the photonics-trends CLI.
// Implements: prd001-ingestion, prd002-analytics (CLI surface).
// See docs/ARCHITECTURE § Command Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joels-spie/photonics-trends-app/internal/cache"
	"github.com/joels-spie/photonics-trends-app/internal/crossref"
	"github.com/joels-spie/photonics-trends-app/internal/engine"
	"github.com/joels-spie/photonics-trends-app/internal/output"
	"github.com/joels-spie/photonics-trends-app/internal/registry"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the photonics-trends CLI.
var rootCmd = &cobra.Command{
	Use:   "photonics-trends",
	Short: "Publication trend analytics over the Crossref corpus",
	Long: `photonics-trends analyzes scholarly publishing activity in photonics and
adjacent fields. It queries the Crossref works API through a local response
cache, matches records against a curated topic catalog, and computes trend,
market-share, institution, and opportunity metrics.

Each analysis is a subcommand: analyze, compare, emerging, gap, institutions,
and timetopub. The cache and warm subcommands manage the response cache.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./photonics-trends.yaml or ~/.config/photonics-trends/config.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "output results as JSON")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("photonics-trends")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "photonics-trends"))
		}
	}

	viper.SetEnvPrefix("PHOTONICS_TRENDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("catalog_dir", "config")
	viper.SetDefault("cache.path", "data/cache.db")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("crossref.timeout", "30s")
	viper.SetDefault("crossref.user_agent", "photonics-trends/"+version+" (mailto:trends@meshintelligence.example)")
	viper.SetDefault("crossref.max_retries", 4)
	viper.SetDefault("crossref.backoff_base", "800ms")
	viper.SetDefault("crossref.live_call_interval", "1s")
	viper.SetDefault("fetch.max_records_default", 2000)
	viper.SetDefault("fetch.rows_per_request", 200)
	viper.SetDefault("fetch.max_pages", 50)
	viper.SetDefault("analysis.low_coverage_threshold", 0.25)
	viper.SetDefault("analysis.lookback_years", 5)
	viper.SetDefault("analysis.top_publishers", 10)
	viper.SetDefault("analysis.top_journals", 15)
	viper.SetDefault("analysis.top_institutions", 15)
	viper.SetDefault("analysis.top_countries", 10)
	viper.SetDefault("gap.min_topic_cagr", 0.08)
	viper.SetDefault("gap.max_target_share", 0.12)
	viper.SetDefault("gap.min_topic_volume", 40)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the stage configuration from viper settings.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Crossref: types.CrossrefConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("crossref.timeout"),
				UserAgent: viper.GetString("crossref.user_agent"),
			},
			MaxRetries:       viper.GetInt("crossref.max_retries"),
			BackoffBase:      viper.GetDuration("crossref.backoff_base"),
			LiveCallInterval: viper.GetDuration("crossref.live_call_interval"),
		},
		Cache: types.CacheConfig{
			Path: viper.GetString("cache.path"),
			TTL:  viper.GetDuration("cache.ttl"),
		},
		Fetch: types.FetchConfig{
			MaxRecordsDefault: viper.GetInt("fetch.max_records_default"),
			RowsPerRequest:    viper.GetInt("fetch.rows_per_request"),
			MaxPages:          viper.GetInt("fetch.max_pages"),
		},
		Analysis: types.AnalysisConfig{
			LowCoverageThreshold: viper.GetFloat64("analysis.low_coverage_threshold"),
			LookbackYears:        viper.GetInt("analysis.lookback_years"),
			TopPublishers:        viper.GetInt("analysis.top_publishers"),
			TopJournals:          viper.GetInt("analysis.top_journals"),
			TopInstitutions:      viper.GetInt("analysis.top_institutions"),
			TopCountries:         viper.GetInt("analysis.top_countries"),
		},
		Gap: types.GapConfig{
			MinTopicCAGR:   viper.GetFloat64("gap.min_topic_cagr"),
			MaxTargetShare: viper.GetFloat64("gap.max_target_share"),
			MinTopicVolume: viper.GetInt("gap.min_topic_volume"),
		},
	}
}

// buildEngine wires the registry, cache, and upstream client into an engine.
// The returned store must be closed by the caller.
func buildEngine() (*engine.Engine, *cache.Store, error) {
	reg, err := registry.Load(viper.GetString("catalog_dir"))
	if err != nil {
		return nil, nil, err
	}

	cfg := engineConfig()
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	client := crossref.NewClient(store, cfg.Crossref)
	return engine.New(reg, client, cfg), store, nil
}

func outputCfg(cmd *cobra.Command) output.Config {
	asJSON, _ := cmd.Flags().GetBool("json")
	return output.Config{JSON: asJSON}
}

// addRequestFlags registers the flags shared by the per-topic analysis
// commands.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("topic", "", "topic key from the catalog (mutually exclusive with --query)")
	cmd.Flags().String("query", "", "ad-hoc free-text query (mutually exclusive with --topic)")
	cmd.Flags().String("from", defaultFrom(), "publication date range start (YYYY-MM-DD)")
	cmd.Flags().String("until", defaultUntil(), "publication date range end (YYYY-MM-DD)")
	cmd.Flags().String("doc-types", "", "document type filter (comma-separated, e.g. journal-article)")
	cmd.Flags().String("publishers", "", "publisher filter (comma-separated names or aliases)")
	cmd.Flags().String("containers", "", "container-title filter (comma-separated substrings)")
	cmd.Flags().String("prefixes", "", "DOI prefix filter (comma-separated, e.g. 10.1117)")
	cmd.Flags().Int("max-records", 0, "maximum records to collect (0 = configured default)")
	cmd.Flags().Bool("refresh", false, "bypass the response cache and re-fetch")
}

// requestFromFlags parses the shared flags into an engine request.
func requestFromFlags(cmd *cobra.Command) (engine.Request, error) {
	var req engine.Request
	var err error

	req.TopicKey, _ = cmd.Flags().GetString("topic")
	req.AdHocQuery, _ = cmd.Flags().GetString("query")

	from, _ := cmd.Flags().GetString("from")
	if req.FromDate, err = parseDate(from, "--from"); err != nil {
		return engine.Request{}, err
	}
	until, _ := cmd.Flags().GetString("until")
	if req.UntilDate, err = parseDate(until, "--until"); err != nil {
		return engine.Request{}, err
	}

	docTypes, _ := cmd.Flags().GetString("doc-types")
	req.DocTypes = splitList(docTypes)
	publishers, _ := cmd.Flags().GetString("publishers")
	req.Publishers = splitList(publishers)
	containers, _ := cmd.Flags().GetString("containers")
	req.ContainerTitles = splitList(containers)
	prefixes, _ := cmd.Flags().GetString("prefixes")
	req.DOIPrefixes = splitList(prefixes)

	req.MaxRecords, _ = cmd.Flags().GetInt("max-records")
	req.RefreshCache, _ = cmd.Flags().GetBool("refresh")
	return req, nil
}

func parseDate(value, flag string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultFrom() string {
	return fmt.Sprintf("%d-01-01", time.Now().Year()-5)
}

func defaultUntil() string {
	return time.Now().Format("2006-01-02")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
