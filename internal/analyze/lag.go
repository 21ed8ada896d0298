// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"time"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// maxLagDays discards implausible date pairs (negative lags and multi-decade
// outliers come from dirty upstream metadata, not real editorial pipelines).
const maxLagDays = 5000

// TimeToPublication measures the created→published and accepted→published
// lags in days. Records lacking either date of a pair are excluded from that
// pair's mean only; each pair reports its own coverage over the full set.
func TimeToPublication(records []types.RawRecord) types.LagStats {
	var c2p, a2p []int
	c2pYear := make(map[int][]int)
	a2pYear := make(map[int][]int)

	for _, r := range records {
		if r.Published.IsZero() {
			continue
		}
		year := r.Published.Year()
		if !r.Created.IsZero() {
			if lag, ok := lagDays(r.Created, r.Published); ok {
				c2p = append(c2p, lag)
				c2pYear[year] = append(c2pYear[year], lag)
			}
		}
		if !r.Accepted.IsZero() {
			if lag, ok := lagDays(r.Accepted, r.Published); ok {
				a2p = append(a2p, lag)
				a2pYear[year] = append(a2pYear[year], lag)
			}
		}
	}

	stats := types.LagStats{
		CreatedToPublishedDays:  mean(c2p),
		AcceptedToPublishedDays: mean(a2p),
		CreatedTrend:            yearlyMeans(c2pYear),
		AcceptedTrend:           yearlyMeans(a2pYear),
	}
	if n := len(records); n > 0 {
		stats.CreatedToPublishedRate = float64(len(c2p)) / float64(n)
		stats.AcceptedToPublishedRate = float64(len(a2p)) / float64(n)
	}
	return stats
}

func lagDays(start, end time.Time) (int, bool) {
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 || days > maxLagDays {
		return 0, false
	}
	return days, true
}

func mean(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	m := float64(sum) / float64(len(values))
	return &m
}

func yearlyMeans(byYear map[int][]int) map[int]float64 {
	out := make(map[int]float64, len(byYear))
	for y, values := range byYear {
		if m := mean(values); m != nil {
			out[y] = *m
		}
	}
	return out
}
