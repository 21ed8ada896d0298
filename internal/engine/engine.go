// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs the fetch-then-analyze pipeline behind each dashboard
// action: build query, collect pages through the cache, match, post-filter,
// compute metrics, assemble the annotated result.
// Implements: prd002-analytics (operations);
//
//	docs/ARCHITECTURE § Engine.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/joels-spie/photonics-trends-app/internal/crossref"
	"github.com/joels-spie/photonics-trends-app/internal/fetch"
	"github.com/joels-spie/photonics-trends-app/internal/match"
	"github.com/joels-spie/photonics-trends-app/internal/query"
	"github.com/joels-spie/photonics-trends-app/internal/registry"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// emergingTopicCap bounds per-topic collection during catalog-wide scans so
// a scan over many topics stays affordable.
const emergingTopicCap = 1200

// Engine wires the registry, the cache-through client, and the analytics
// functions into per-endpoint operations. One Stats accumulator is created
// per operation call, so concurrent requests never share counters.
type Engine struct {
	registry *registry.Registry
	source   fetch.PageSource
	cfg      types.EngineConfig
}

// New builds an engine over an already-loaded registry and page source.
func New(reg *registry.Registry, source fetch.PageSource, cfg types.EngineConfig) *Engine {
	return &Engine{registry: reg, source: source, cfg: cfg}
}

// Request is one parsed analysis request, as handed over by the transport
// layer. Exactly one of TopicKey and AdHocQuery must be set.
type Request struct {
	TopicKey        string
	AdHocQuery      string
	FromDate        time.Time
	UntilDate       time.Time
	DocTypes        []string
	Publishers      []string
	ContainerTitles []string
	DOIPrefixes     []string
	MaxRecords      int
	RefreshCache    bool
}

// EmergingRequest drives the catalog-wide operations (emerging topics, gap
// analysis), which run the full pipeline once per configured topic.
type EmergingRequest struct {
	FromDate           time.Time
	UntilDate          time.Time
	LookbackYears      int
	MaxRecordsPerTopic int
	RefreshCache       bool
}

// fetchResult carries everything one pipeline pass produced.
type fetchResult struct {
	records    []types.RawRecord
	topic      *types.TopicDefinition
	publishers []string
}

// run executes one fetch-match pass for req, accumulating into stats.
func (e *Engine) run(ctx context.Context, req Request, stats *crossref.Stats) (fetchResult, error) {
	var topic *types.TopicDefinition
	if req.TopicKey != "" {
		if topic = e.registry.Topic(req.TopicKey); topic == nil {
			return fetchResult{}, query.InputErrorf("unknown topic key %q", req.TopicKey)
		}
	}

	names, prefixes := e.registry.ResolvePublishers(req.Publishers)
	prefixes = mergePrefixes(prefixes, req.DOIPrefixes)

	maxRecords := req.MaxRecords
	if maxRecords <= 0 {
		maxRecords = e.cfg.Fetch.MaxRecordsDefault
	}

	spec, err := query.Build(query.Params{
		Topic:           topic,
		AdHocQuery:      req.AdHocQuery,
		FromDate:        req.FromDate,
		UntilDate:       req.UntilDate,
		DocTypes:        req.DocTypes,
		Publishers:      names,
		Prefixes:        prefixes,
		ContainerTitles: req.ContainerTitles,
		MaxRecords:      maxRecords,
		Rows:            e.cfg.Fetch.RowsPerRequest,
	})
	if err != nil {
		return fetchResult{}, err
	}

	records := fetch.Collect(ctx, e.source, spec, req.RefreshCache, e.cfg.Fetch, stats)
	records = postFilter(records, filterSets{
		docTypes:   req.DocTypes,
		publishers: names,
		prefixes:   prefixes,
		containers: req.ContainerTitles,
	})
	matched, _ := match.Filter(records, topic, req.AdHocQuery)

	return fetchResult{records: matched, topic: topic, publishers: names}, nil
}

// collectByTopic runs the pipeline once per catalog topic, sharing one Stats.
func (e *Engine) collectByTopic(ctx context.Context, req EmergingRequest, stats *crossref.Stats) (map[string][]types.RawRecord, error) {
	perTopic := req.MaxRecordsPerTopic
	if perTopic <= 0 {
		perTopic = e.cfg.Fetch.MaxRecordsDefault
		if perTopic > emergingTopicCap {
			perTopic = emergingTopicCap
		}
	}

	byTopic := make(map[string][]types.RawRecord)
	for _, topic := range e.registry.Topics() {
		res, err := e.run(ctx, Request{
			TopicKey:     topic.Key,
			FromDate:     req.FromDate,
			UntilDate:    req.UntilDate,
			MaxRecords:   perTopic,
			RefreshCache: req.RefreshCache,
		}, stats)
		if err != nil {
			return nil, err
		}
		byTopic[topic.Key] = res.records
	}
	return byTopic, nil
}

func (e *Engine) lookback(requested int) int {
	if requested > 0 {
		return requested
	}
	if e.cfg.Analysis.LookbackYears > 0 {
		return e.cfg.Analysis.LookbackYears
	}
	return 5
}

// meta snapshots the request's fetch accounting into result meta.
func (e *Engine) meta(stats *crossref.Stats) types.Meta {
	warnings := stats.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return types.Meta{
		GeneratedAt:     time.Now().UTC(),
		CachedResponses: stats.CachedResponses,
		LiveResponses:   stats.LiveResponses,
		LastAPICallAt:   stats.LastAPICallAt,
		Warnings:        warnings,
	}
}

func mergePrefixes(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, p := range append(append([]string(nil), a...), b...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
