// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch drives cursor pagination against the upstream API through
// the response cache and merges pages into one deduplicated record set.
// Implements: prd001-ingestion (Fetch Orchestrator);
//
//	docs/ARCHITECTURE § Fetch Orchestrator.
package fetch

import (
	"context"

	"github.com/joels-spie/photonics-trends-app/internal/cache"
	"github.com/joels-spie/photonics-trends-app/internal/crossref"
	"github.com/joels-spie/photonics-trends-app/internal/query"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// defaultMaxPages bounds one pagination run when the config does not.
const defaultMaxPages = 50

// PageSource supplies one page per query spec. The Crossref client is the
// production implementation; tests substitute fixtures.
type PageSource interface {
	GetPage(ctx context.Context, spec query.Spec, refresh bool, stats *crossref.Stats) (cache.Entry, bool, error)
}

// Collect walks cursors from spec until the record cap, the end of results,
// or the page ceiling, deduplicating by DOI (first occurrence wins).
//
// A page that still fails after the client's retries ends the walk early:
// the records gathered so far are returned and the truncation is recorded as
// a warning. Partial results beat total failure, but the caller must be able
// to see the cut.
func Collect(ctx context.Context, src PageSource, spec query.Spec, refresh bool, cfg types.FetchConfig, stats *crossref.Stats) []types.RawRecord {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var records []types.RawRecord
	seen := make(map[string]bool)
	current := spec

	for page := 0; ; page++ {
		if page >= maxPages {
			stats.Warn("page ceiling (%d) reached before exhausting results; record set may be incomplete", maxPages)
			break
		}

		entry, _, err := src.GetPage(ctx, current, refresh, stats)
		if err != nil {
			stats.Warn("page fetch failed after retries (%v); returning %d records collected so far", err, len(records))
			break
		}
		if len(entry.Records) == 0 {
			break
		}

		full := false
		for _, rec := range entry.Records {
			if rec.DOI != "" {
				if seen[rec.DOI] {
					continue
				}
				seen[rec.DOI] = true
			}
			records = append(records, rec)
			if len(records) >= spec.MaxRecords {
				full = true
				break
			}
		}
		if full {
			break
		}

		// Crossref signals end-of-results by omitting or repeating the cursor.
		if entry.NextCursor == "" || entry.NextCursor == current.Cursor {
			break
		}
		current = current.WithCursor(entry.NextCursor)
	}

	if len(records) > spec.MaxRecords {
		records = records[:spec.MaxRecords]
	}
	return records
}
