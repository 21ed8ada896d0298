// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"testing"
	"time"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

func journalRec(journal, publisher string, year int) types.RawRecord {
	return types.RawRecord{
		ContainerTitle: journal,
		Publisher:      publisher,
		Published:      time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestJournalsRanking(t *testing.T) {
	records := []types.RawRecord{
		journalRec("Optics Express", "Optica Publishing Group", 2022),
		journalRec("Optics Express", "Optica Publishing Group", 2023),
		journalRec("Optics Express", "Optica Publishing Group", 2023),
		journalRec("Proc. SPIE", "SPIE", 2023),
		journalRec("Proc. SPIE", "SPIE", 2023),
		journalRec("Nanophotonics", "Wiley", 2023),
	}

	result := Journals(records, 2)

	if len(result.TopJournals) != 2 {
		t.Fatalf("top journals = %d, want 2", len(result.TopJournals))
	}
	first := result.TopJournals[0]
	if first.Journal != "Optics Express" || first.Count != 3 {
		t.Errorf("first = %+v", first)
	}
	if first.Publisher != "Optica Publishing Group" {
		t.Errorf("publisher = %q", first.Publisher)
	}
	if first.PerYear[2023] != 2 {
		t.Errorf("per-year = %v", first.PerYear)
	}
	if result.TopJournals[1].Journal != "Proc. SPIE" {
		t.Errorf("second = %+v", result.TopJournals[1])
	}
}

func TestJournalsMissingVenueGroupsAsUnknown(t *testing.T) {
	records := []types.RawRecord{
		journalRec("", "SPIE", 2023),
		journalRec("", "SPIE", 2023),
	}
	result := Journals(records, 5)
	if len(result.TopJournals) != 1 || result.TopJournals[0].Journal != "Unknown" {
		t.Errorf("TopJournals = %+v", result.TopJournals)
	}
}

func TestNormalizeInstitution(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MIT", "mit"},
		{"M.I.T.", "m i t"},
		{"University  of   Oxford", "university of oxford"},
		{"ETH Zürich", "eth z rich"},
	}
	for _, tt := range tests {
		if got := normalizeInstitution(tt.in); got != tt.want {
			t.Errorf("normalizeInstitution(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractCountry(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{name: "trailing country", in: "MIT, Cambridge, USA", want: "USA"},
		{name: "two-letter code", in: "ETH, Zurich, CH", want: "CH"},
		{name: "multi-word country", in: "Oxford, United Kingdom", want: "United Kingdom"},
		{name: "no comma", in: "Standalone Institute", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCountry(tt.in); got != tt.want {
				t.Errorf("extractCountry(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInstitutionRanking(t *testing.T) {
	withAff := func(affs ...string) types.RawRecord {
		return types.RawRecord{
			Published: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Authors:   []types.Author{{Name: "A", Affiliations: affs}},
		}
	}

	records := []types.RawRecord{
		withAff("MIT, Cambridge, USA"),
		withAff("MIT., Cambridge, USA"), // spelling variant of the same institution
		withAff("Stanford University, USA"),
		{Published: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}, // no affiliation
	}

	result := InstitutionRanking(records, 10, 10)

	if len(result.TopInstitutions) != 2 {
		t.Fatalf("institutions = %+v, want variants folded into 2", result.TopInstitutions)
	}
	if result.TopInstitutions[0].Count != 2 {
		t.Errorf("top institution count = %d, want 2", result.TopInstitutions[0].Count)
	}
	if len(result.CountryRollups) != 1 || result.CountryRollups[0].Country != "USA" {
		t.Fatalf("countries = %+v", result.CountryRollups)
	}
	if result.CountryRollups[0].Count != 3 {
		t.Errorf("USA mentions = %d, want 3", result.CountryRollups[0].Count)
	}
}

func TestInstitutionRankingFirstAffiliationOnly(t *testing.T) {
	// Ranking counts each record once via its first-listed affiliation; the
	// country rollup still sees every affiliation string.
	rec := types.RawRecord{
		Published: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Authors: []types.Author{
			{Name: "A", Affiliations: []string{"MIT, Cambridge, USA"}},
			{Name: "B", Affiliations: []string{"Tsinghua University, Beijing, China"}},
		},
	}

	result := InstitutionRanking([]types.RawRecord{rec}, 10, 10)

	if len(result.TopInstitutions) != 1 {
		t.Fatalf("institutions = %+v, want first affiliation only", result.TopInstitutions)
	}
	if len(result.CountryRollups) != 2 {
		t.Errorf("countries = %+v, want both rolled up", result.CountryRollups)
	}
}
