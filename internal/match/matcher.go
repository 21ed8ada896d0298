// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores fetched records against topic definitions. Pure and
// deterministic: no network or cache access.
// Implements: prd001-ingestion (Topic Matcher);
//
//	docs/ARCHITECTURE § Topic Matcher.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// Scoring weights. Negative hits are penalized harder than positive hits are
// rewarded, so the reported score drops fast for off-topic records.
const (
	positiveWeight = 2.0
	negativeWeight = 2.5
)

// Result is the matcher's verdict for one record.
type Result struct {
	Matched      bool
	Score        float64
	PositiveHits int
	NegativeHits int
}

// Matcher scores record text against one topic definition. Comparison is
// case-insensitive; terms match as whole-word substrings only, so "lidar"
// does not match "validated".
type Matcher struct {
	topic     *types.TopicDefinition
	positives []string
	negatives []string
}

// New builds a matcher for topic. Keywords and synonyms are treated alike.
func New(topic *types.TopicDefinition) *Matcher {
	m := &Matcher{topic: topic}
	for _, t := range append(append([]string(nil), topic.Keywords...), topic.Synonyms...) {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			m.positives = append(m.positives, t)
		}
	}
	for _, t := range topic.NegativeKeywords {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			m.negatives = append(m.negatives, t)
		}
	}
	return m
}

// Score evaluates one haystack. A record matches when at least one keyword
// or synonym hits and no negative keyword does.
func (m *Matcher) Score(text string) Result {
	haystack := strings.ToLower(text)

	var pos, neg int
	for _, term := range m.positives {
		if containsWholeWord(haystack, term) {
			pos++
		}
	}
	for _, term := range m.negatives {
		if containsWholeWord(haystack, term) {
			neg++
		}
	}

	return Result{
		Matched:      pos > 0 && neg == 0,
		Score:        positiveWeight*float64(pos) - negativeWeight*float64(neg),
		PositiveHits: pos,
		NegativeHits: neg,
	}
}

// Record scores one record and returns the derived MatchedRecord.
func (m *Matcher) Record(rec types.RawRecord) types.MatchedRecord {
	res := m.Score(RecordText(rec))
	return types.MatchedRecord{
		RawRecord: rec,
		TopicKey:  m.topic.Key,
		Matched:   res.Matched,
		Score:     res.Score,
	}
}

// RecordText builds the haystack for one record: title, abstract when
// present, and container title.
func RecordText(rec types.RawRecord) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{rec.Title, rec.Abstract, rec.ContainerTitle} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Summary describes one filter pass.
type Summary struct {
	// Mode is "topic", "ad_hoc", or "none".
	Mode string

	// Matched is the number of surviving records.
	Matched int

	// AvgScore is the mean score over matched records (topic mode only).
	AvgScore float64
}

// Filter keeps the records relevant to the request. Topic mode re-scores
// every record locally; ad-hoc mode keeps everything, because the upstream
// free-text query itself was the filter.
func Filter(records []types.RawRecord, topic *types.TopicDefinition, adHocQuery string) ([]types.RawRecord, Summary) {
	if topic == nil {
		mode := "none"
		if strings.TrimSpace(adHocQuery) != "" {
			mode = "ad_hoc"
		}
		return records, Summary{Mode: mode, Matched: len(records)}
	}

	m := New(topic)
	var matched []types.RawRecord
	var total float64
	for _, rec := range records {
		res := m.Score(RecordText(rec))
		if res.Matched {
			matched = append(matched, rec)
			total += res.Score
		}
	}

	avg := 0.0
	if len(matched) > 0 {
		avg = total / float64(len(matched))
	}
	return matched, Summary{Mode: "topic", Matched: len(matched), AvgScore: avg}
}

// containsWholeWord reports whether phrase occurs in haystack bounded by
// non-word characters (or the string edges) on both sides.
func containsWholeWord(haystack, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(haystack[start:], phrase)
		if i < 0 {
			return false
		}
		i += start

		boundedLeft := i == 0
		if !boundedLeft {
			r, _ := utf8.DecodeLastRuneInString(haystack[:i])
			boundedLeft = !isWordRune(r)
		}
		boundedRight := i+len(phrase) == len(haystack)
		if !boundedRight {
			r, _ := utf8.DecodeRuneInString(haystack[i+len(phrase):])
			boundedRight = !isWordRune(r)
		}
		if boundedLeft && boundedRight {
			return true
		}
		start = i + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
