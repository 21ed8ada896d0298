// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// canonicalSpec is the stable serialization form behind the fingerprint.
// Field order is fixed by the struct, set members are sorted, dates use
// YYYY-MM-DD, and the query text is whitespace-collapsed and case-folded,
// so logically identical specs always hash the same.
type canonicalSpec struct {
	Query      string   `json:"query"`
	From       string   `json:"from"`
	Until      string   `json:"until"`
	DocTypes   []string `json:"doc_types"`
	Publishers []string `json:"publishers"`
	Prefixes   []string `json:"prefixes"`
	Containers []string `json:"containers"`
	Cursor     string   `json:"cursor"`
}

// Fingerprint returns the deterministic cache key for this spec: the SHA-256
// hex digest of its canonical form. Successive cursors of the same logical
// query produce distinct fingerprints.
func (s Spec) Fingerprint() string {
	c := canonicalSpec{
		Query:      strings.ToLower(strings.Join(strings.Fields(s.QueryText), " ")),
		From:       s.FromDate.Format("2006-01-02"),
		Until:      s.UntilDate.Format("2006-01-02"),
		DocTypes:   canonicalSet(s.DocTypes),
		Publishers: canonicalSet(s.Publishers),
		Prefixes:   canonicalSet(s.Prefixes),
		Containers: canonicalSet(s.ContainerTitles),
		Cursor:     s.Cursor,
	}

	raw, err := json.Marshal(c)
	if err != nil {
		// canonicalSpec contains only strings and slices; Marshal cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// canonicalSet lowercases, trims, dedupes and sorts set members.
func canonicalSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
