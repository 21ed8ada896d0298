// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"regexp"
	"strings"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// Journals ranks venues by record count, ties broken by name, and reports
// each venue's publisher and per-year series.
func Journals(records []types.RawRecord, topN int) types.JournalIntelligence {
	if topN <= 0 {
		topN = 15
	}

	counts := make(map[string]int)
	publishers := make(map[string]string)
	perYear := make(map[string]map[int]int)

	for _, r := range records {
		journal := displayName(r.ContainerTitle)
		counts[journal]++
		publishers[journal] = displayName(r.Publisher)
		if !r.Published.IsZero() {
			if perYear[journal] == nil {
				perYear[journal] = make(map[int]int)
			}
			perYear[journal][r.Published.Year()]++
		}
	}

	var top []types.JournalBreakdown
	for _, nc := range rankCounts(counts, topN) {
		top = append(top, types.JournalBreakdown{
			Journal:   nc.name,
			Publisher: publishers[nc.name],
			Count:     nc.count,
			PerYear:   perYear[nc.name],
		})
	}
	return types.JournalIntelligence{TopJournals: top}
}

var nonWord = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeInstitution folds an affiliation name into a grouping key so
// spelling variants ("MIT." vs "MIT") count together.
func normalizeInstitution(name string) string {
	folded := nonWord.ReplaceAllString(strings.ToLower(name), " ")
	return strings.Join(strings.Fields(folded), " ")
}

// extractCountry guesses the country from an affiliation's trailing
// comma-separated segment. Heuristic only; affiliation strings are free text.
func extractCountry(affiliation string) string {
	var parts []string
	for _, p := range strings.Split(affiliation, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return ""
	}
	last := parts[len(parts)-1]
	if len(last) == 2 || len(last) == 3 || len(strings.Fields(last)) <= 3 {
		return last
	}
	return ""
}

// InstitutionRanking ranks institutions by each record's first-listed
// affiliation and rolls countries up from every affiliation string.
func InstitutionRanking(records []types.RawRecord, topInstitutions, topCountries int) types.Institutions {
	if topInstitutions <= 0 {
		topInstitutions = 20
	}
	if topCountries <= 0 {
		topCountries = 20
	}

	counts := make(map[string]int)
	canonical := make(map[string]string)
	countries := make(map[string]int)

	for _, r := range records {
		if first := r.FirstAffiliation(); first != "" {
			key := normalizeInstitution(first)
			if key != "" {
				if _, ok := canonical[key]; !ok {
					canonical[key] = strings.TrimSpace(first)
				}
				counts[key]++
			}
		}
		for _, author := range r.Authors {
			for _, aff := range author.Affiliations {
				if country := extractCountry(aff); country != "" {
					countries[country]++
				}
			}
		}
	}

	var top []types.InstitutionCount
	for _, nc := range rankCounts(counts, topInstitutions) {
		top = append(top, types.InstitutionCount{Institution: canonical[nc.name], Count: nc.count})
	}
	var rollups []types.CountryCount
	for _, nc := range rankCounts(countries, topCountries) {
		rollups = append(rollups, types.CountryCount{Country: nc.name, Count: nc.count})
	}

	return types.Institutions{TopInstitutions: top, CountryRollups: rollups}
}
