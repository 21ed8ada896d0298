// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Author holds one author entry from an upstream record. Affiliations are
// kept in source order; either list may be empty.
type Author struct {
	// Name is the author display name.
	Name string `json:"name" yaml:"name"`

	// Affiliations lists affiliation names in source order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// RawRecord is the normalized representation of one upstream bibliographic
// item. Upstream metadata is incomplete and inconsistently shaped, so every
// field not guaranteed present is an explicit optional: empty strings and
// zero time.Time values mean "not provided". Records are immutable once
// fetched.
type RawRecord struct {
	// DOI is the record identifier, unique within a result set.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the work title.
	Title string `json:"title" yaml:"title"`

	// Publisher is the publisher name as reported upstream.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Type is the upstream document type (e.g. "journal-article").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// ContainerTitle is the journal or venue name.
	ContainerTitle string `json:"container_title,omitempty" yaml:"container_title,omitempty"`

	// Abstract is the work abstract with markup stripped. Often absent.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Published is the publication date (issued, then online, then print,
	// then created, whichever upstream provides first).
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// Created is the record creation (deposit) date.
	Created time.Time `json:"created,omitempty" yaml:"created,omitempty"`

	// Accepted is the editorial acceptance date. Rarely populated.
	Accepted time.Time `json:"accepted,omitempty" yaml:"accepted,omitempty"`

	// Authors lists authors in source order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// HasAffiliation reports whether any author carries at least one affiliation.
func (r RawRecord) HasAffiliation() bool {
	for _, a := range r.Authors {
		if len(a.Affiliations) > 0 {
			return true
		}
	}
	return false
}

// FirstAffiliation returns the first-listed affiliation name across the
// record's authors, or "" when none is present.
func (r RawRecord) FirstAffiliation() string {
	for _, a := range r.Authors {
		if len(a.Affiliations) > 0 {
			return a.Affiliations[0]
		}
	}
	return ""
}

// MatchedRecord pairs a RawRecord with the matcher's decision for one topic.
// Derived per analysis call, never persisted.
type MatchedRecord struct {
	RawRecord

	// TopicKey is the topic the record was scored against, or "" for ad-hoc
	// queries.
	TopicKey string `json:"topic_key,omitempty" yaml:"topic_key,omitempty"`

	// Matched reports the match decision.
	Matched bool `json:"matched" yaml:"matched"`

	// Score is the weighted keyword score behind the decision.
	Score float64 `json:"score" yaml:"score"`
}
