// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders analysis results for the terminal, either as
// structured JSON or as rich human-readable tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joels-spie/photonics-trends-app/internal/cache"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// Config controls which output mode is active.
type Config struct {
	JSON bool // structured JSON instead of terminal tables
}

// FormatTopicAnalysis writes a topic or ad-hoc trend analysis.
func FormatTopicAnalysis(w io.Writer, res *types.TopicAnalysis, label string, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, res)
	}
	return formatTopicHuman(w, res, label)
}

// FormatComparison writes a publisher market-share comparison.
func FormatComparison(w io.Writer, res *types.PublisherComparison, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, res)
	}
	return formatComparisonHuman(w, res)
}

// FormatEmergingTopics writes the growth ranking over the topic catalog.
func FormatEmergingTopics(w io.Writer, res *types.EmergingTopicsResult, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, res)
	}
	return formatEmergingHuman(w, res)
}

// FormatGapAnalysis writes the opportunity ranking for a target publisher.
func FormatGapAnalysis(w io.Writer, res *types.GapAnalysisResult, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, res)
	}
	return formatGapHuman(w, res)
}

// FormatInstitutions writes the institution and country rankings.
func FormatInstitutions(w io.Writer, res *types.InstitutionsResult, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, res)
	}
	return formatInstitutionsHuman(w, res)
}

// FormatTimeToPub writes the editorial-lag statistics.
func FormatTimeToPub(w io.Writer, res *types.TimeToPubResult, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, res)
	}
	return formatTimeToPubHuman(w, res)
}

// FormatCacheStats writes response-cache statistics.
func FormatCacheStats(w io.Writer, stats cache.StoreStats, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, stats)
	}
	return formatCacheStatsHuman(w, stats)
}

// FormatCatalog writes the configured topic and publisher catalogs.
func FormatCatalog(w io.Writer, topics []types.TopicDefinition, publishers []types.PublisherDefinition, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, map[string]any{
			"topics":     topics,
			"publishers": publishers,
		})
	}
	return formatCatalogHuman(w, topics, publishers)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
