// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"

	"github.com/joels-spie/photonics-trends-app/internal/analyze"
	"github.com/joels-spie/photonics-trends-app/internal/crossref"
	"github.com/joels-spie/photonics-trends-app/internal/query"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// AnalyzeTopic runs the trend analysis for one topic or ad-hoc query.
func (e *Engine) AnalyzeTopic(ctx context.Context, req Request) (*types.TopicAnalysis, error) {
	stats := &crossref.Stats{}
	res, err := e.run(ctx, req, stats)
	if err != nil {
		return nil, err
	}

	cov := analyze.Coverage(res.records)
	e.warnLowCoverage(stats, "abstract", cov.AbstractRate, "topic relevance may be undercounted")
	e.warnLowCoverage(stats, "affiliation", cov.AffiliationRate, "institution rankings may be incomplete")

	overview := analyze.Overview(res.records, e.cfg.Analysis)
	if overview.CAGR == nil && len(res.records) > 0 {
		stats.Warn("growth rate undefined: fewer than two non-zero publication years")
	}

	return &types.TopicAnalysis{
		RecordCount: len(res.records),
		Coverage:    cov,
		Overview:    overview,
		Journals:    analyze.Journals(res.records, e.cfg.Analysis.TopJournals),
		Meta:        e.meta(stats),
	}, nil
}

// ComparePublishers computes per-year volumes and market shares for the
// requested publisher set against the full matched universe.
func (e *Engine) ComparePublishers(ctx context.Context, req Request) (*types.PublisherComparison, error) {
	if len(req.Publishers) == 0 {
		return nil, query.InputErrorf("publisher comparison needs at least one publisher")
	}

	stats := &crossref.Stats{}

	// The comparison divides by the per-year totals of the full matched
	// universe, so the fetch must not be narrowed to the requested set.
	unfiltered := req
	unfiltered.Publishers = nil
	unfiltered.DOIPrefixes = nil
	res, err := e.run(ctx, unfiltered, stats)
	if err != nil {
		return nil, err
	}

	names, _ := e.registry.ResolvePublishers(req.Publishers)

	return &types.PublisherComparison{
		RecordCount: len(res.records),
		Coverage:    analyze.Coverage(res.records),
		Comparison:  analyze.Compare(res.records, names),
		Meta:        e.meta(stats),
	}, nil
}

// EmergingTopics ranks every configured topic by recent growth.
func (e *Engine) EmergingTopics(ctx context.Context, req EmergingRequest) (*types.EmergingTopicsResult, error) {
	stats := &crossref.Stats{}
	byTopic, err := e.collectByTopic(ctx, req, stats)
	if err != nil {
		return nil, err
	}

	result := analyze.EmergingTopics(byTopic, e.registry.Topics(), e.lookback(req.LookbackYears))
	return &types.EmergingTopicsResult{Result: result, Meta: e.meta(stats)}, nil
}

// GapAnalysis scores each configured topic for opportunity relative to the
// target publisher.
func (e *Engine) GapAnalysis(ctx context.Context, req EmergingRequest, targetPublisher string) (*types.GapAnalysisResult, error) {
	if targetPublisher == "" {
		return nil, query.InputErrorf("gap analysis needs a target publisher")
	}

	stats := &crossref.Stats{}
	byTopic, err := e.collectByTopic(ctx, req, stats)
	if err != nil {
		return nil, err
	}

	result := analyze.GapAnalysis(byTopic, e.registry.Topics(), targetPublisher, e.lookback(req.LookbackYears), e.cfg.Gap)
	return &types.GapAnalysisResult{Result: result, Meta: e.meta(stats)}, nil
}

// Institutions ranks institutions and countries for one topic or ad-hoc query.
func (e *Engine) Institutions(ctx context.Context, req Request) (*types.InstitutionsResult, error) {
	stats := &crossref.Stats{}
	res, err := e.run(ctx, req, stats)
	if err != nil {
		return nil, err
	}

	cov := analyze.Coverage(res.records)
	e.warnLowCoverage(stats, "affiliation", cov.AffiliationRate, "institution trends are best-effort only")

	return &types.InstitutionsResult{
		RecordCount:  len(res.records),
		Coverage:     cov,
		Institutions: analyze.InstitutionRanking(res.records, e.cfg.Analysis.TopInstitutions, e.cfg.Analysis.TopCountries),
		Meta:         e.meta(stats),
	}, nil
}

// TimeToPublication measures editorial lag for one topic or ad-hoc query.
func (e *Engine) TimeToPublication(ctx context.Context, req Request) (*types.TimeToPubResult, error) {
	stats := &crossref.Stats{}
	res, err := e.run(ctx, req, stats)
	if err != nil {
		return nil, err
	}

	cov := analyze.Coverage(res.records)
	e.warnLowCoverage(stats, "accepted-date", cov.AcceptedDateRate, "accepted-to-published lag may be unstable")

	return &types.TimeToPubResult{
		RecordCount:       len(res.records),
		Coverage:          cov,
		TimeToPublication: analyze.TimeToPublication(res.records),
		Meta:              e.meta(stats),
	}, nil
}

func (e *Engine) warnLowCoverage(stats *crossref.Stats, field string, rate float64, consequence string) {
	threshold := e.cfg.Analysis.LowCoverageThreshold
	if threshold <= 0 {
		return
	}
	if rate < threshold {
		stats.Warn("low %s coverage (%.0f%%); %s", field, rate*100, consequence)
	}
}
