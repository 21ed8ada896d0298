// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// GapAnalysis finds growing topics where the target publisher is
// under-represented. Topics are screened by minimum volume and growth and by
// maximum target share; survivors score
//
//	opportunity = overall_growth * (1 - target_share)
//
// so high growth with a thin target presence ranks highest.
func GapAnalysis(recordsByTopic map[string][]types.RawRecord, topics []types.TopicDefinition, targetPublisher string, lookbackYears int, cfg types.GapConfig) types.GapAnalysis {
	if lookbackYears <= 0 {
		lookbackYears = 5
	}
	target := strings.ToLower(targetPublisher)

	var opportunities []types.Opportunity
	for _, topic := range topics {
		records, ok := recordsByTopic[topic.Key]
		if !ok {
			continue
		}
		if len(records) < cfg.MinTopicVolume {
			continue
		}

		perYear := PerYear(records)
		growth := CAGR(perYear)
		if growth == nil || *growth < cfg.MinTopicCAGR {
			continue
		}

		share := targetShare(records, target, perYear, lookbackYears)
		if share > cfg.MaxTargetShare {
			continue
		}

		opportunities = append(opportunities, types.Opportunity{
			TopicKey:         topic.Key,
			TopicName:        topic.Name,
			OverallGrowth:    *growth,
			TargetShare:      share,
			TopicVolume:      len(records),
			OpportunityScore: *growth * (1 - share),
			Explanation: fmt.Sprintf("High growth (%.1f%%) with low %s share (%.1f%%).",
				*growth*100, targetPublisher, share*100),
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].OpportunityScore != opportunities[j].OpportunityScore {
			return opportunities[i].OpportunityScore > opportunities[j].OpportunityScore
		}
		return opportunities[i].TopicKey < opportunities[j].TopicKey
	})

	return types.GapAnalysis{TargetPublisher: targetPublisher, Opportunities: opportunities}
}

// targetShare is the target publisher's fraction of the topic's volume in
// the most recent lookback window.
func targetShare(records []types.RawRecord, target string, perYear map[int]int, lookbackYears int) float64 {
	if len(perYear) == 0 {
		return 0
	}
	years := sortedYears(perYear)
	cutoff := years[len(years)-1] - lookbackYears + 1

	var total, targetCount int
	for _, r := range records {
		if r.Published.IsZero() || r.Published.Year() < cutoff {
			continue
		}
		total++
		if target != "" && strings.Contains(strings.ToLower(r.Publisher), target) {
			targetCount++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(targetCount) / float64(total)
}
