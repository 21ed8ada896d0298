// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze computes trend and competitive-intelligence metrics over
// matched record sets. Every function is pure: records in, payload out, no
// I/O anywhere.
// Implements: prd002-analytics;
//
//	docs/ARCHITECTURE § Analytics Engine.
package analyze

import "github.com/joels-spie/photonics-trends-app/pkg/types"

// Coverage reports how much of the optional metadata the record set actually
// carries. An empty set yields 0.0 rates, not a division fault.
func Coverage(records []types.RawRecord) types.Coverage {
	total := len(records)
	if total == 0 {
		return types.Coverage{}
	}

	var abstract, affiliation, accepted, issued int
	for _, r := range records {
		if r.Abstract != "" {
			abstract++
		}
		if r.HasAffiliation() {
			affiliation++
		}
		if !r.Accepted.IsZero() {
			accepted++
		}
		if !r.Published.IsZero() {
			issued++
		}
	}

	n := float64(total)
	return types.Coverage{
		TotalRecords:     total,
		AbstractRate:     float64(abstract) / n,
		AffiliationRate:  float64(affiliation) / n,
		AcceptedDateRate: float64(accepted) / n,
		IssuedDateRate:   float64(issued) / n,
	}
}
