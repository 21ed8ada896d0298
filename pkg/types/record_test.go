// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestHasAffiliation(t *testing.T) {
	tests := []struct {
		name string
		rec  RawRecord
		want bool
	}{
		{name: "no authors", rec: RawRecord{}, want: false},
		{
			name: "authors without affiliations",
			rec:  RawRecord{Authors: []Author{{Name: "A"}, {Name: "B"}}},
			want: false,
		},
		{
			name: "later author affiliated",
			rec: RawRecord{Authors: []Author{
				{Name: "A"},
				{Name: "B", Affiliations: []string{"MIT, USA"}},
			}},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.HasAffiliation(); got != tt.want {
				t.Errorf("HasAffiliation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstAffiliation(t *testing.T) {
	rec := RawRecord{Authors: []Author{
		{Name: "A"},
		{Name: "B", Affiliations: []string{"MIT, USA", "CERN, Switzerland"}},
		{Name: "C", Affiliations: []string{"Oxford, UK"}},
	}}
	if got := rec.FirstAffiliation(); got != "MIT, USA" {
		t.Errorf("FirstAffiliation = %q, want first-listed across authors", got)
	}
	if got := (RawRecord{}).FirstAffiliation(); got != "" {
		t.Errorf("FirstAffiliation on empty record = %q", got)
	}
}
