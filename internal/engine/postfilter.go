// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"strings"

	"github.com/joels-spie/photonics-trends-app/internal/analyze"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// filterSets are the request-level filters re-applied locally. Crossref only
// accepts one value per filter class upstream, so the full sets must be
// enforced here.
type filterSets struct {
	docTypes   []string
	publishers []string
	prefixes   []string
	containers []string
}

// postFilter drops records that violate any requested filter set. Empty sets
// pass everything.
func postFilter(records []types.RawRecord, f filterSets) []types.RawRecord {
	docTypes := lowerSet(f.docTypes)
	prefixes := lowerSet(f.prefixes)
	containers := lowerSlice(f.containers)

	out := make([]types.RawRecord, 0, len(records))
	for _, rec := range records {
		if len(docTypes) > 0 && !docTypes[strings.ToLower(rec.Type)] {
			continue
		}
		if len(f.publishers) > 0 && !analyze.PublisherMatches(rec.Publisher, f.publishers) {
			continue
		}
		if len(prefixes) > 0 && !matchesPrefix(rec.DOI, prefixes) {
			continue
		}
		if len(containers) > 0 && !matchesContainer(rec.ContainerTitle, containers) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesPrefix(doi string, prefixes map[string]bool) bool {
	doi = strings.ToLower(doi)
	for prefix := range prefixes {
		if strings.HasPrefix(doi, prefix+"/") || strings.HasPrefix(doi, prefix) {
			return true
		}
	}
	return false
}

func matchesContainer(container string, terms []string) bool {
	container = strings.ToLower(container)
	for _, term := range terms {
		if strings.Contains(container, term) {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out[v] = true
		}
	}
	return out
}

func lowerSlice(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
