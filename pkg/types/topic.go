// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the photonics-trends
// analytics engine.
// Implements: prd001-ingestion (RawRecord, TopicDefinition);
//
//	prd002-analytics (Coverage, Overview, result payloads).
//
// See docs/ARCHITECTURE.md § Data Structures.
package types

// TopicDefinition describes one configured research topic. Definitions are
// loaded once from the topic catalog and are read-only for the process
// lifetime; keyword comparison is case-insensitive.
type TopicDefinition struct {
	// Key is the stable, unique topic identifier (e.g. "silicon_photonics").
	Key string `json:"key" yaml:"key"`

	// Name is the human-readable topic name.
	Name string `json:"name" yaml:"name"`

	// Keywords are the primary match terms.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Synonyms are additional match terms treated the same as keywords.
	Synonyms []string `json:"synonyms" yaml:"synonyms"`

	// NegativeKeywords disqualify a record when present. They are applied
	// locally during matching and are never sent upstream.
	NegativeKeywords []string `json:"negative_keywords" yaml:"negative_keywords"`
}

// PublisherDefinition describes one configured publisher, with alias spellings
// and DOI-prefix hints used for filtering.
type PublisherDefinition struct {
	// Name is the canonical display form (e.g. "SPIE").
	Name string `json:"name" yaml:"name"`

	// Aliases are alternative spellings seen in upstream metadata.
	Aliases []string `json:"aliases" yaml:"aliases"`

	// Prefixes are DOI prefixes registered to this publisher (e.g. "10.1117").
	Prefixes []string `json:"prefixes" yaml:"prefixes"`
}
