// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"strings"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// Compare computes per-year volumes and market shares for the requested
// publishers. Shares divide by the per-year total across ALL matched
// records, not just the requested subset, so they represent share of the
// full matched universe and need not sum to 1.
func Compare(records []types.RawRecord, publishers []string) types.Comparison {
	totals := PerYear(records)

	perPublisher := make(map[string]map[int]int, len(publishers))
	for _, name := range publishers {
		perPublisher[name] = make(map[int]int)
	}

	for _, r := range records {
		if r.Published.IsZero() {
			continue
		}
		recPub := strings.ToLower(r.Publisher)
		for _, name := range publishers {
			if strings.Contains(recPub, strings.ToLower(name)) {
				perPublisher[name][r.Published.Year()]++
			}
		}
	}

	shares := make(map[string]map[int]float64, len(publishers))
	growth := make(map[string]*float64, len(publishers))
	for name, years := range perPublisher {
		shares[name] = make(map[int]float64, len(years))
		for y, c := range years {
			if total := totals[y]; total > 0 {
				shares[name][y] = float64(c) / float64(total)
			}
		}
		growth[name] = CAGR(years)
	}

	return types.Comparison{
		PerPublisherPerYear: perPublisher,
		MarketShare:         shares,
		Growth:              growth,
	}
}

// PublisherMatches reports whether an upstream publisher name matches one of
// the selected names (case-insensitive substring; upstream naming drifts).
// An empty selection matches everything.
func PublisherMatches(recordPublisher string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	recPub := strings.ToLower(recordPublisher)
	for _, name := range selected {
		if name != "" && strings.Contains(recPub, strings.ToLower(name)) {
			return true
		}
	}
	return false
}
