// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"math"
	"testing"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

var lidarTopic = &types.TopicDefinition{
	Key:              "lidar",
	Name:             "LiDAR and Optical Sensing",
	Keywords:         []string{"lidar", "optical phased array"},
	Synonyms:         []string{"laser ranging"},
	NegativeKeywords: []string{"atmospheric aerosol"},
}

func TestScore(t *testing.T) {
	m := New(lidarTopic)

	tests := []struct {
		name        string
		text        string
		wantMatched bool
		wantScore   float64
	}{
		{
			name:        "single keyword hit",
			text:        "A compact LiDAR sensor for robotics.",
			wantMatched: true,
			wantScore:   2.0,
		},
		{
			name:        "keyword and synonym",
			text:        "Laser ranging with a solid-state lidar module.",
			wantMatched: true,
			wantScore:   4.0,
		},
		{
			name:        "case insensitive phrase",
			text:        "An OPTICAL PHASED ARRAY beam steerer.",
			wantMatched: true,
			wantScore:   2.0,
		},
		{
			// One negative hit vetoes the record regardless of positives.
			name:        "negative keyword vetoes",
			text:        "Lidar retrievals of atmospheric aerosol layers.",
			wantMatched: false,
			wantScore:   2.0 - 2.5,
		},
		{
			// "lidar" inside "validated" is not a word boundary match.
			name:        "substring inside a word",
			text:        "The model was validated against holdout data.",
			wantMatched: false,
			wantScore:   0,
		},
		{
			name:        "no hits",
			text:        "Graphene transistor fabrication.",
			wantMatched: false,
			wantScore:   0,
		},
		{
			name:        "term at string edge",
			text:        "lidar",
			wantMatched: true,
			wantScore:   2.0,
		},
		{
			name:        "term bounded by punctuation",
			text:        "Applications (lidar, radar) are discussed.",
			wantMatched: true,
			wantScore:   2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Score(tt.text)
			if res.Matched != tt.wantMatched {
				t.Errorf("Matched = %v, want %v", res.Matched, tt.wantMatched)
			}
			if math.Abs(res.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", res.Score, tt.wantScore)
			}
		})
	}
}

func TestRecordText(t *testing.T) {
	rec := types.RawRecord{
		Title:          "Beam steering",
		Abstract:       "An optical phased array.",
		ContainerTitle: "Optics Express",
	}
	got := RecordText(rec)
	want := "Beam steering An optical phased array. Optics Express"
	if got != want {
		t.Errorf("RecordText = %q, want %q", got, want)
	}

	// Absent fields leave no double spaces behind.
	rec.Abstract = ""
	if got := RecordText(rec); got != "Beam steering Optics Express" {
		t.Errorf("RecordText without abstract = %q", got)
	}
}

func TestFilterTopicMode(t *testing.T) {
	records := []types.RawRecord{
		{DOI: "10.1/a", Title: "Solid-state lidar design"},
		{DOI: "10.1/b", Title: "Lidar observation of atmospheric aerosol plumes"},
		{DOI: "10.1/c", Title: "Unrelated microfluidics work"},
	}

	matched, summary := Filter(records, lidarTopic, "")

	if len(matched) != 1 || matched[0].DOI != "10.1/a" {
		t.Fatalf("matched = %v, want only 10.1/a", matched)
	}
	if summary.Mode != "topic" || summary.Matched != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if math.Abs(summary.AvgScore-2.0) > 1e-9 {
		t.Errorf("AvgScore = %v, want 2.0", summary.AvgScore)
	}
}

func TestFilterAdHocPassThrough(t *testing.T) {
	records := []types.RawRecord{
		{DOI: "10.1/a", Title: "Anything at all"},
		{DOI: "10.1/b", Title: "Still anything"},
	}

	matched, summary := Filter(records, nil, "free text query")

	if len(matched) != 2 {
		t.Fatalf("ad-hoc mode must keep all records, got %d", len(matched))
	}
	if summary.Mode != "ad_hoc" {
		t.Errorf("Mode = %q, want ad_hoc", summary.Mode)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	matched, summary := Filter(nil, lidarTopic, "")
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty", matched)
	}
	if summary.AvgScore != 0 {
		t.Errorf("AvgScore = %v, want 0 for empty set", summary.AvgScore)
	}
}
