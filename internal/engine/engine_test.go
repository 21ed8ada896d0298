// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joels-spie/photonics-trends-app/internal/cache"
	"github.com/joels-spie/photonics-trends-app/internal/crossref"
	"github.com/joels-spie/photonics-trends-app/internal/query"
	"github.com/joels-spie/photonics-trends-app/internal/registry"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// scriptedSource replays canned pages per cursor and mimics the client's
// stats accounting: first serve of a fingerprint counts live, repeats count
// cached.
type scriptedSource struct {
	pages  map[string]cache.Entry
	errAt  string
	served map[string]bool
	specs  []query.Spec
}

func newScriptedSource(pages map[string]cache.Entry) *scriptedSource {
	return &scriptedSource{pages: pages, served: make(map[string]bool)}
}

func (s *scriptedSource) GetPage(ctx context.Context, spec query.Spec, refresh bool, stats *crossref.Stats) (cache.Entry, bool, error) {
	s.specs = append(s.specs, spec)
	if s.errAt != "" && spec.Cursor == s.errAt {
		return cache.Entry{}, false, &crossref.FetchError{Status: 503, Err: fmt.Errorf("upstream down")}
	}

	key := spec.Fingerprint()
	cached := s.served[key] && !refresh
	s.served[key] = true
	if cached {
		stats.CachedResponses++
	} else {
		stats.LiveResponses++
		stats.LastAPICallAt = time.Now().UTC()
	}
	return s.pages[spec.Cursor], cached, nil
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		[]types.TopicDefinition{
			{
				Key:              "lidar",
				Name:             "LiDAR",
				Keywords:         []string{"lidar"},
				NegativeKeywords: []string{"atmospheric aerosol"},
			},
		},
		[]types.PublisherDefinition{
			{Name: "SPIE", Aliases: []string{"SPIE-Intl"}, Prefixes: []string{"10.1117"}},
			{Name: "IEEE", Prefixes: []string{"10.1109"}},
		},
	)
	require.NoError(t, err)
	return reg
}

func testConfig() types.EngineConfig {
	return types.EngineConfig{
		Fetch: types.FetchConfig{
			MaxRecordsDefault: 100,
			RowsPerRequest:    50,
			MaxPages:          10,
		},
		Analysis: types.AnalysisConfig{LookbackYears: 5},
		Gap: types.GapConfig{
			MinTopicCAGR:   0.05,
			MaxTargetShare: 0.5,
			MinTopicVolume: 1,
		},
	}
}

func lidarRec(doi, title string, year int, publisher string) types.RawRecord {
	return types.RawRecord{
		DOI:       doi,
		Title:     title,
		Publisher: publisher,
		Type:      "journal-article",
		Published: time.Date(year, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func baseRequest() Request {
	return Request{
		TopicKey:  "lidar",
		FromDate:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		UntilDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestAnalyzeTopicEndToEnd(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {
			Records: []types.RawRecord{
				lidarRec("10.1117/1", "Solid-state lidar design", 2022, "SPIE"),
				lidarRec("10.1117/2", "Lidar study of atmospheric aerosol layers", 2022, "SPIE"),
				lidarRec("10.1109/3", "Automotive lidar perception", 2023, "IEEE"),
				lidarRec("10.1109/4", "Unrelated power electronics", 2023, "IEEE"),
			},
		},
	})
	eng := New(testRegistry(t), src, testConfig())

	res, err := eng.AnalyzeTopic(context.Background(), baseRequest())
	require.NoError(t, err)

	// The negative-keyword record and the off-topic record are both excluded.
	assert.Equal(t, 2, res.RecordCount)
	assert.Equal(t, 1, res.Overview.PerYear[2022])
	assert.Equal(t, 1, res.Overview.PerYear[2023])
	assert.Equal(t, 1, res.Meta.LiveResponses)
	assert.Equal(t, 0, res.Meta.CachedResponses)
	assert.NotNil(t, res.Meta.Warnings, "warnings must serialize as [], not null")
}

func TestAnalyzeTopicCachedSecondRun(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {Records: []types.RawRecord{lidarRec("10.1117/1", "lidar", 2022, "SPIE")}},
	})
	eng := New(testRegistry(t), src, testConfig())

	_, err := eng.AnalyzeTopic(context.Background(), baseRequest())
	require.NoError(t, err)

	res, err := eng.AnalyzeTopic(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Meta.LiveResponses)
	assert.Equal(t, 1, res.Meta.CachedResponses)
	assert.True(t, res.Meta.LastAPICallAt.IsZero(), "fully cached run made no API call")
}

func TestAnalyzeTopicUnknownKey(t *testing.T) {
	eng := New(testRegistry(t), newScriptedSource(nil), testConfig())

	req := baseRequest()
	req.TopicKey = "nonexistent"
	_, err := eng.AnalyzeTopic(context.Background(), req)
	require.Error(t, err)
	assert.True(t, query.IsInputError(err))
}

func TestAnalyzeTopicPartialResults(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {
			Records:    []types.RawRecord{lidarRec("10.1117/1", "lidar one", 2022, "SPIE")},
			NextCursor: "c2",
		},
	})
	src.errAt = "c2"
	eng := New(testRegistry(t), src, testConfig())

	res, err := eng.AnalyzeTopic(context.Background(), baseRequest())
	require.NoError(t, err, "a failing page degrades to partial results, not an error")
	assert.Equal(t, 1, res.RecordCount)
	require.NotEmpty(t, res.Meta.Warnings)
	assert.Contains(t, res.Meta.Warnings[0], "fetch failed")
}

func TestAnalyzeTopicLowCoverageWarning(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {Records: []types.RawRecord{lidarRec("10.1117/1", "lidar", 2022, "SPIE")}},
	})
	cfg := testConfig()
	cfg.Analysis.LowCoverageThreshold = 0.25

	eng := New(testRegistry(t), src, cfg)
	res, err := eng.AnalyzeTopic(context.Background(), baseRequest())
	require.NoError(t, err)

	var sawAbstract bool
	for _, w := range res.Meta.Warnings {
		if strings.Contains(w, "abstract") {
			sawAbstract = true
		}
	}
	assert.True(t, sawAbstract, "abstract-free set must carry a low-coverage warning: %v", res.Meta.Warnings)
}

func TestPostFilterAppliesFullSets(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {
			Records: []types.RawRecord{
				lidarRec("10.1117/1", "lidar alpha", 2022, "SPIE"),
				lidarRec("10.1109/2", "lidar beta", 2022, "IEEE"),
				lidarRec("10.5555/3", "lidar gamma", 2022, "Eccentric Press"),
			},
		},
	})
	eng := New(testRegistry(t), src, testConfig())

	req := baseRequest()
	req.Publishers = []string{"SPIE", "IEEE"}
	res, err := eng.AnalyzeTopic(context.Background(), req)
	require.NoError(t, err)

	// Upstream only honors one filter member; the engine enforces the full set.
	assert.Equal(t, 2, res.RecordCount)
}

func TestComparePublishersFetchesUnfilteredUniverse(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {
			Records: []types.RawRecord{
				lidarRec("10.1117/1", "lidar a", 2022, "SPIE"),
				lidarRec("10.1109/2", "lidar b", 2022, "IEEE"),
				lidarRec("10.1016/3", "lidar c", 2022, "Elsevier BV"),
				lidarRec("10.1016/4", "lidar d", 2022, "Elsevier BV"),
			},
		},
	})
	eng := New(testRegistry(t), src, testConfig())

	req := baseRequest()
	req.Publishers = []string{"SPIE-Intl"}
	res, err := eng.ComparePublishers(context.Background(), req)
	require.NoError(t, err)

	// The fetch spec must not narrow the universe to the requested publishers.
	require.NotEmpty(t, src.specs)
	assert.Empty(t, src.specs[0].Publishers)
	assert.Empty(t, src.specs[0].Prefixes)

	// Share divides by the full universe (4 records in 2022); the alias
	// resolves to the canonical SPIE name.
	assert.Equal(t, 4, res.RecordCount)
	assert.InDelta(t, 0.25, res.Comparison.MarketShare["SPIE"][2022], 1e-9)
}

func TestComparePublishersRequiresSelection(t *testing.T) {
	eng := New(testRegistry(t), newScriptedSource(nil), testConfig())

	_, err := eng.ComparePublishers(context.Background(), baseRequest())
	require.Error(t, err)
	assert.True(t, query.IsInputError(err))
}

func TestEmergingTopicsAcrossCatalog(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {
			Records: []types.RawRecord{
				lidarRec("10.1117/1", "lidar 2021", 2021, "SPIE"),
				lidarRec("10.1117/2", "lidar 2023 a", 2023, "SPIE"),
				lidarRec("10.1117/3", "lidar 2023 b", 2023, "SPIE"),
			},
		},
	})
	eng := New(testRegistry(t), src, testConfig())

	res, err := eng.EmergingTopics(context.Background(), EmergingRequest{
		FromDate:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		UntilDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, res.Result.RankedTopics, 1)
	assert.Equal(t, "lidar", res.Result.RankedTopics[0].TopicKey)
	assert.Equal(t, 3, res.Result.RankedTopics[0].TotalVolume)
}

func TestGapAnalysisRequiresTarget(t *testing.T) {
	eng := New(testRegistry(t), newScriptedSource(nil), testConfig())

	_, err := eng.GapAnalysis(context.Background(), EmergingRequest{
		FromDate:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		UntilDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}, "")
	require.Error(t, err)
	assert.True(t, query.IsInputError(err))
}

func TestGapAnalysisEndToEnd(t *testing.T) {
	src := newScriptedSource(map[string]cache.Entry{
		"*": {
			Records: []types.RawRecord{
				lidarRec("10.1016/1", "lidar 2020", 2020, "Elsevier BV"),
				lidarRec("10.1016/2", "lidar 2023 a", 2023, "Elsevier BV"),
				lidarRec("10.1016/3", "lidar 2023 b", 2023, "Elsevier BV"),
				lidarRec("10.1117/4", "lidar 2023 c", 2023, "SPIE"),
			},
		},
	})
	eng := New(testRegistry(t), src, testConfig())

	res, err := eng.GapAnalysis(context.Background(), EmergingRequest{
		FromDate:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		UntilDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}, "SPIE")
	require.NoError(t, err)

	require.Len(t, res.Result.Opportunities, 1)
	opp := res.Result.Opportunities[0]
	assert.Equal(t, "lidar", opp.TopicKey)
	assert.InDelta(t, 0.25, opp.TargetShare, 1e-9)
	assert.Greater(t, opp.OpportunityScore, 0.0)
}
