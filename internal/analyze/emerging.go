// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"sort"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// EmergingTopics ranks topics by growth over the recent lookback window,
// descending, ties broken by total volume descending. Topics with fewer than
// two recent years of data cannot show growth and are skipped.
func EmergingTopics(recordsByTopic map[string][]types.RawRecord, topics []types.TopicDefinition, lookbackYears int) types.EmergingTopics {
	if lookbackYears <= 0 {
		lookbackYears = 5
	}

	var ranked []types.TopicTrend
	for _, topic := range topics {
		records, ok := recordsByTopic[topic.Key]
		if !ok {
			continue
		}
		perYear := PerYear(records)
		if len(perYear) == 0 {
			continue
		}

		recent := recentWindow(perYear, lookbackYears)
		if len(recent) < 2 {
			continue
		}

		var volume int
		for _, c := range perYear {
			volume += c
		}
		sparkline := make([]int, 0, len(recent))
		for _, y := range sortedYears(recent) {
			sparkline = append(sparkline, recent[y])
		}

		ranked = append(ranked, types.TopicTrend{
			TopicKey:    topic.Key,
			TopicName:   topic.Name,
			TotalVolume: volume,
			GrowthRate:  CAGR(recent),
			Sparkline:   sparkline,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		gi, gj := growthOrNegInf(ranked[i].GrowthRate), growthOrNegInf(ranked[j].GrowthRate)
		if gi != gj {
			return gi > gj
		}
		return ranked[i].TotalVolume > ranked[j].TotalVolume
	})

	return types.EmergingTopics{RankedTopics: ranked}
}

// recentWindow keeps the last lookbackYears years of the per-year mapping,
// anchored at the most recent year with data.
func recentWindow(perYear map[int]int, lookbackYears int) map[int]int {
	years := sortedYears(perYear)
	cutoff := years[len(years)-1] - lookbackYears + 1
	recent := make(map[int]int)
	for y, c := range perYear {
		if y >= cutoff {
			recent[y] = c
		}
	}
	return recent
}

// growthOrNegInf orders topics with undefined growth after all defined ones.
func growthOrNegInf(g *float64) float64 {
	if g == nil {
		return -999
	}
	return *g
}
