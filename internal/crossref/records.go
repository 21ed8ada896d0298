// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// Crossref /works JSON structures. Only the fields the engine consumes are
// declared; everything else in the payload is ignored.
type worksResponse struct {
	Status  string       `json:"status"`
	Message worksMessage `json:"message"`
}

type worksMessage struct {
	TotalResults int        `json:"total-results"`
	NextCursor   string     `json:"next-cursor"`
	Items        []workItem `json:"items"`
}

type workItem struct {
	DOI             string       `json:"DOI"`
	Title           []string     `json:"title"`
	Publisher       string       `json:"publisher"`
	Type            string       `json:"type"`
	ContainerTitle  []string     `json:"container-title"`
	Abstract        string       `json:"abstract"`
	Issued          partedDate   `json:"issued"`
	PublishedOnline partedDate   `json:"published-online"`
	PublishedPrint  partedDate   `json:"published-print"`
	Created         partedDate   `json:"created"`
	Deposited       partedDate   `json:"deposited"`
	Accepted        partedDate   `json:"accepted"`
	Author          []workAuthor `json:"author"`
}

type partedDate struct {
	DateParts [][]int `json:"date-parts"`
}

type workAuthor struct {
	Given       string            `json:"given"`
	Family      string            `json:"family"`
	Affiliation []workAffiliation `json:"affiliation"`
}

type workAffiliation struct {
	Name string `json:"name"`
}

// jatsTag matches JATS/XML markup embedded in Crossref abstracts.
var jatsTag = regexp.MustCompile(`<[^>]+>`)

// normalizeItems converts a page of Crossref items into RawRecords.
func normalizeItems(items []workItem) []types.RawRecord {
	records := make([]types.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, normalizeItem(item))
	}
	return records
}

// normalizeItem maps one Crossref work onto the engine's record shape.
// Crossref publication dates arrive as [year, month, day] triples with the
// month and day frequently missing; absent components default to 1. The
// published date falls back through issued, online, print, and created,
// matching how complete each field tends to be in practice.
func normalizeItem(item workItem) types.RawRecord {
	rec := types.RawRecord{
		DOI:            strings.ToLower(strings.TrimSpace(item.DOI)),
		Title:          strings.TrimSpace(strings.Join(item.Title, " ")),
		Publisher:      strings.TrimSpace(item.Publisher),
		Type:           item.Type,
		ContainerTitle: firstNonEmpty(item.ContainerTitle),
		Abstract:       stripAbstract(item.Abstract),
		Published:      firstDate(item.Issued, item.PublishedOnline, item.PublishedPrint, item.Created),
		Created:        firstDate(item.Created, item.Deposited),
		Accepted:       firstDate(item.Accepted),
	}

	for _, a := range item.Author {
		author := types.Author{Name: strings.TrimSpace(a.Given + " " + a.Family)}
		for _, aff := range a.Affiliation {
			if name := strings.TrimSpace(aff.Name); name != "" {
				author.Affiliations = append(author.Affiliations, name)
			}
		}
		rec.Authors = append(rec.Authors, author)
	}
	return rec
}

// stripAbstract removes JATS markup and entity escapes from an abstract.
func stripAbstract(value string) string {
	if value == "" {
		return ""
	}
	plain := jatsTag.ReplaceAllString(html.UnescapeString(value), " ")
	return strings.Join(strings.Fields(plain), " ")
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstDate returns the first parseable date among the given sections.
func firstDate(sections ...partedDate) time.Time {
	for _, section := range sections {
		if t, ok := dateFromParts(section); ok {
			return t
		}
	}
	return time.Time{}
}

func dateFromParts(section partedDate) (time.Time, bool) {
	if len(section.DateParts) == 0 || len(section.DateParts[0]) == 0 {
		return time.Time{}, false
	}
	parts := section.DateParts[0]
	year := parts[0]
	if year <= 0 {
		return time.Time{}, false
	}
	month, day := 1, 1
	if len(parts) > 1 && parts[1] >= 1 && parts[1] <= 12 {
		month = parts[1]
	}
	if len(parts) > 2 && parts[2] >= 1 && parts[2] <= 31 {
		day = parts[2]
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
