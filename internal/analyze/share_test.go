// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"math"
	"testing"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

func TestCompareSharesAgainstFullUniverse(t *testing.T) {
	// 2022 universe: 4 records, SPIE has 1 of them.
	records := []types.RawRecord{
		recIn(2022, "SPIE"),
		recIn(2022, "IEEE"),
		recIn(2022, "Elsevier BV"),
		recIn(2022, "Wiley"),
		recIn(2023, "SPIE"),
		recIn(2023, "IEEE"),
	}

	cmp := Compare(records, []string{"SPIE", "IEEE"})

	if got := cmp.PerPublisherPerYear["SPIE"][2022]; got != 1 {
		t.Errorf("SPIE 2022 count = %d, want 1", got)
	}
	if got := cmp.MarketShare["SPIE"][2022]; math.Abs(got-0.25) > 1e-9 {
		t.Errorf("SPIE 2022 share = %v, want 0.25 of the full universe", got)
	}
	if got := cmp.MarketShare["SPIE"][2023]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("SPIE 2023 share = %v, want 0.5", got)
	}

	// Requested-subset shares need not sum to 1; here they sum to 0.5 in 2022.
	sum := cmp.MarketShare["SPIE"][2022] + cmp.MarketShare["IEEE"][2022]
	if math.Abs(sum-0.5) > 1e-9 {
		t.Errorf("2022 subset share sum = %v, want 0.5", sum)
	}
}

func TestCompareShareBounds(t *testing.T) {
	records := []types.RawRecord{
		recIn(2021, "SPIE"), recIn(2021, "SPIE"),
		recIn(2022, "SPIE"), recIn(2022, "IEEE"),
	}
	cmp := Compare(records, []string{"SPIE", "IEEE", "MDPI AG"})

	for name, years := range cmp.MarketShare {
		for y, share := range years {
			if share < 0 || share > 1 {
				t.Errorf("%s %d share = %v, out of [0,1]", name, y, share)
			}
		}
	}
	// Absent publisher has no per-year entries but still appears in the maps.
	if _, ok := cmp.PerPublisherPerYear["MDPI AG"]; !ok {
		t.Error("requested publisher missing from comparison")
	}
}

func TestCompareNameMatchingIsSubstring(t *testing.T) {
	records := []types.RawRecord{recIn(2022, "SPIE-Intl Soc Optical Eng")}
	cmp := Compare(records, []string{"SPIE"})

	if got := cmp.PerPublisherPerYear["SPIE"][2022]; got != 1 {
		t.Errorf("count = %d; upstream name variants must match by substring", got)
	}
}

func TestPublisherMatches(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		selected []string
		want     bool
	}{
		{name: "empty selection matches all", record: "Anything", selected: nil, want: true},
		{name: "case-insensitive", record: "spie", selected: []string{"SPIE"}, want: true},
		{name: "substring variant", record: "SPIE-Intl Soc Optical Eng", selected: []string{"SPIE"}, want: true},
		{name: "no match", record: "Elsevier BV", selected: []string{"SPIE", "IEEE"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublisherMatches(tt.record, tt.selected); got != tt.want {
				t.Errorf("PublisherMatches(%q, %v) = %v", tt.record, tt.selected, got)
			}
		})
	}
}
