// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"math"
	"sort"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// PerYear groups records by publication year. Records without a publication
// date carry no year and are excluded from this view.
func PerYear(records []types.RawRecord) map[int]int {
	out := make(map[int]int)
	for _, r := range records {
		if r.Published.IsZero() {
			continue
		}
		out[r.Published.Year()]++
	}
	return out
}

// YearlySeries turns a per-year mapping into an ascending series with
// year-over-year growth. YoY is nil for the first year and after a zero year.
func YearlySeries(perYear map[int]int) []types.TrendPoint {
	years := sortedYears(perYear)
	series := make([]types.TrendPoint, 0, len(years))
	for i, y := range years {
		point := types.TrendPoint{Year: y, Count: perYear[y]}
		if i > 0 {
			if prev := perYear[years[i-1]]; prev > 0 {
				yoy := float64(point.Count-prev) / float64(prev)
				point.YoY = &yoy
			}
		}
		series = append(series, point)
	}
	return series
}

// CAGR computes the compound annual growth rate between the first and last
// non-zero years: (v1/v0)^(1/(y1-y0)) - 1. It is absent (nil) when fewer
// than two non-zero years exist.
func CAGR(perYear map[int]int) *float64 {
	var nonZero []int
	for y, c := range perYear {
		if c > 0 {
			nonZero = append(nonZero, y)
		}
	}
	if len(nonZero) < 2 {
		return nil
	}
	sort.Ints(nonZero)

	y0, y1 := nonZero[0], nonZero[len(nonZero)-1]
	if y1 == y0 {
		return nil
	}
	v0, v1 := float64(perYear[y0]), float64(perYear[y1])
	rate := math.Pow(v1/v0, 1/float64(y1-y0)) - 1
	return &rate
}

// Overview assembles the trend payload for one record set: per-year counts,
// the YoY series, overall CAGR, and a top-publisher breakdown.
func Overview(records []types.RawRecord, cfg types.AnalysisConfig) types.Overview {
	perYear := PerYear(records)

	byPublisher := make(map[string]map[int]int)
	for _, r := range records {
		if r.Published.IsZero() {
			continue
		}
		name := displayName(r.Publisher)
		if byPublisher[name] == nil {
			byPublisher[name] = make(map[int]int)
		}
		byPublisher[name][r.Published.Year()]++
	}

	topN := cfg.TopPublishers
	if topN <= 0 {
		topN = 10
	}
	var top []types.PublisherBreakdown
	for _, nc := range rankCounts(totalCounts(byPublisher), topN) {
		top = append(top, types.PublisherBreakdown{
			Name:    nc.name,
			Count:   nc.count,
			CAGR:    CAGR(byPublisher[nc.name]),
			PerYear: byPublisher[nc.name],
		})
	}

	return types.Overview{
		PerYear:       perYear,
		YearlyGrowth:  YearlySeries(perYear),
		CAGR:          CAGR(perYear),
		TopPublishers: top,
	}
}

// displayName substitutes "Unknown" for missing names so groupings stay visible.
func displayName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

func sortedYears(perYear map[int]int) []int {
	years := make([]int, 0, len(perYear))
	for y := range perYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

type nameCount struct {
	name  string
	count int
}

func totalCounts(byName map[string]map[int]int) map[string]int {
	totals := make(map[string]int, len(byName))
	for name, years := range byName {
		for _, c := range years {
			totals[name] += c
		}
	}
	return totals
}

// rankCounts sorts names descending by count, ties broken by name, and
// returns the top n.
func rankCounts(counts map[string]int, n int) []nameCount {
	ranked := make([]nameCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, nameCount{name: name, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
