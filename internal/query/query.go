// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds validated upstream query specifications from topic
// definitions or ad-hoc text.
// Implements: prd001-ingestion (Query Builder);
//
//	docs/ARCHITECTURE § Query Builder.
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// maxPageRows is the documented Crossref per-page ceiling.
const maxPageRows = 1000

// defaultRows is the page size used when a request does not set one.
const defaultRows = 200

// firstCursor is the opaque token that starts a Crossref deep-page walk.
const firstCursor = "*"

// InputError marks an invalid request shape. It is the only error class that
// aborts a request outright; everything downstream degrades into warnings.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// InputErrorf builds an InputError. Exposed for callers that validate
// request shapes of their own before building a spec.
func InputErrorf(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// Spec is one upstream query specification. Immutable once built; never
// persisted beyond the cache key derived from it.
type Spec struct {
	QueryText       string
	FromDate        time.Time
	UntilDate       time.Time
	DocTypes        []string
	Publishers      []string
	Prefixes        []string
	ContainerTitles []string
	MaxRecords      int
	Rows            int
	Cursor          string
}

// WithCursor returns a copy of the spec pointing at the given page. The
// cursor participates in the fingerprint, so each page caches independently.
func (s Spec) WithCursor(cursor string) Spec {
	s.Cursor = cursor
	return s
}

// Params are the inputs to Build. Exactly one of Topic and AdHocQuery must be
// set.
type Params struct {
	Topic           *types.TopicDefinition
	AdHocQuery      string
	FromDate        time.Time
	UntilDate       time.Time
	DocTypes        []string
	Publishers      []string
	Prefixes        []string
	ContainerTitles []string
	MaxRecords      int
	Rows            int
}

// Build validates params and produces a Spec positioned at the first page.
//
// For a topic, the query text is the OR-disjunction of its keywords and
// synonyms; negative keywords stay local to the matcher because upstream
// full-text search is permissive and exclusion must be guaranteed here.
// Ad-hoc text is passed through verbatim.
func Build(p Params) (Spec, error) {
	hasTopic := p.Topic != nil
	hasAdHoc := strings.TrimSpace(p.AdHocQuery) != ""

	switch {
	case hasTopic && hasAdHoc:
		return Spec{}, InputErrorf("supply either a topic or an ad-hoc query, not both")
	case !hasTopic && !hasAdHoc:
		return Spec{}, InputErrorf("supply a topic or an ad-hoc query")
	}

	if p.FromDate.IsZero() || p.UntilDate.IsZero() {
		return Spec{}, InputErrorf("both from and until dates are required")
	}
	if p.FromDate.After(p.UntilDate) {
		return Spec{}, InputErrorf("from date %s is after until date %s",
			p.FromDate.Format("2006-01-02"), p.UntilDate.Format("2006-01-02"))
	}
	if p.MaxRecords <= 0 {
		return Spec{}, InputErrorf("max records must be positive, got %d", p.MaxRecords)
	}

	queryText := p.AdHocQuery
	if hasTopic {
		queryText = DisjunctionQuery(p.Topic)
		if queryText == "" {
			return Spec{}, InputErrorf("topic %q has no keywords or synonyms", p.Topic.Key)
		}
	}

	rows := p.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	if rows > maxPageRows {
		rows = maxPageRows
	}
	if rows > p.MaxRecords {
		rows = p.MaxRecords
	}

	return Spec{
		QueryText:       queryText,
		FromDate:        p.FromDate,
		UntilDate:       p.UntilDate,
		DocTypes:        append([]string(nil), p.DocTypes...),
		Publishers:      append([]string(nil), p.Publishers...),
		Prefixes:        append([]string(nil), p.Prefixes...),
		ContainerTitles: append([]string(nil), p.ContainerTitles...),
		MaxRecords:      p.MaxRecords,
		Rows:            rows,
		Cursor:          firstCursor,
	}, nil
}

// DisjunctionQuery joins a topic's keywords and synonyms with OR, quoting
// multi-word terms. Negative keywords never appear in the result.
func DisjunctionQuery(topic *types.TopicDefinition) string {
	terms := make([]string, 0, len(topic.Keywords)+len(topic.Synonyms))
	for _, t := range append(append([]string(nil), topic.Keywords...), topic.Synonyms...) {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.ContainsAny(t, " \t") {
			t = `"` + t + `"`
		}
		terms = append(terms, t)
	}
	return strings.Join(terms, " OR ")
}
