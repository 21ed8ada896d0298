// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Meta describes how a result was produced: how many upstream pages were
// served from cache versus fetched live, when the engine last touched the
// network, and any degradations encountered along the way. Warnings never
// indicate failure; a result carrying warnings is still usable.
type Meta struct {
	// GeneratedAt is when the result object was assembled.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// CachedResponses counts pages served from the response cache.
	CachedResponses int `json:"cached_responses" yaml:"cached_responses"`

	// LiveResponses counts pages fetched from the upstream API.
	LiveResponses int `json:"live_responses" yaml:"live_responses"`

	// LastAPICallAt is the time of the most recent live call. Zero when the
	// whole request was served from cache.
	LastAPICallAt time.Time `json:"last_api_call_at,omitempty" yaml:"last_api_call_at,omitempty"`

	// Warnings lists degradations in occurrence order: low coverage,
	// undefined growth rates, truncated record sets.
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// Coverage reports which optional fields the matched record set actually
// carries. Each rate is a fraction in [0,1]; an empty set yields 0.0 across
// the board.
type Coverage struct {
	TotalRecords     int     `json:"total_records" yaml:"total_records"`
	AbstractRate     float64 `json:"abstract_rate" yaml:"abstract_rate"`
	AffiliationRate  float64 `json:"affiliation_rate" yaml:"affiliation_rate"`
	AcceptedDateRate float64 `json:"accepted_date_rate" yaml:"accepted_date_rate"`
	IssuedDateRate   float64 `json:"issued_date_rate" yaml:"issued_date_rate"`
}

// TrendPoint is one year in a publication trend series. YoY is nil for the
// first year and for years following a zero-count year.
type TrendPoint struct {
	Year  int      `json:"year" yaml:"year"`
	Count int      `json:"count" yaml:"count"`
	YoY   *float64 `json:"yoy,omitempty" yaml:"yoy,omitempty"`
}

// PublisherBreakdown summarizes one publisher's output within a record set.
type PublisherBreakdown struct {
	Name    string      `json:"name" yaml:"name"`
	Count   int         `json:"count" yaml:"count"`
	CAGR    *float64    `json:"cagr,omitempty" yaml:"cagr,omitempty"`
	PerYear map[int]int `json:"per_year" yaml:"per_year"`
}

// JournalBreakdown summarizes one journal's output within a record set.
type JournalBreakdown struct {
	Journal   string      `json:"journal" yaml:"journal"`
	Publisher string      `json:"publisher" yaml:"publisher"`
	Count     int         `json:"count" yaml:"count"`
	PerYear   map[int]int `json:"per_year" yaml:"per_year"`
}

// Overview is the trend payload for a single topic or ad-hoc query. CAGR is
// nil when fewer than two non-zero years exist.
type Overview struct {
	PerYear       map[int]int          `json:"per_year" yaml:"per_year"`
	YearlyGrowth  []TrendPoint         `json:"yearly_growth" yaml:"yearly_growth"`
	CAGR          *float64             `json:"cagr,omitempty" yaml:"cagr,omitempty"`
	TopPublishers []PublisherBreakdown `json:"top_publishers" yaml:"top_publishers"`
}

// Comparison is the market-share payload. Shares are fractions of the full
// matched universe per year, so values across the requested publisher subset
// need not sum to 1.
type Comparison struct {
	PerPublisherPerYear map[string]map[int]int     `json:"per_publisher_per_year" yaml:"per_publisher_per_year"`
	MarketShare         map[string]map[int]float64 `json:"market_share" yaml:"market_share"`
	Growth              map[string]*float64        `json:"growth" yaml:"growth"`
}

// InstitutionCount is one row of the institution ranking.
type InstitutionCount struct {
	Institution string `json:"institution" yaml:"institution"`
	Count       int    `json:"count" yaml:"count"`
}

// CountryCount is one row of the country rollup derived from affiliations.
type CountryCount struct {
	Country string `json:"country" yaml:"country"`
	Count   int    `json:"count" yaml:"count"`
}

// Institutions is the institution-ranking payload.
type Institutions struct {
	TopInstitutions []InstitutionCount `json:"top_institutions" yaml:"top_institutions"`
	CountryRollups  []CountryCount     `json:"country_rollups" yaml:"country_rollups"`
}

// JournalIntelligence is the journal-ranking payload.
type JournalIntelligence struct {
	TopJournals []JournalBreakdown `json:"top_journals" yaml:"top_journals"`
}

// LagStats is the time-to-publication payload. Means are nil when no record
// carries the required date pair; rates report each pair's own coverage over
// the full record set.
type LagStats struct {
	CreatedToPublishedDays  *float64        `json:"created_to_published_days,omitempty" yaml:"created_to_published_days,omitempty"`
	AcceptedToPublishedDays *float64        `json:"accepted_to_published_days,omitempty" yaml:"accepted_to_published_days,omitempty"`
	CreatedToPublishedRate  float64         `json:"created_to_published_rate" yaml:"created_to_published_rate"`
	AcceptedToPublishedRate float64         `json:"accepted_to_published_rate" yaml:"accepted_to_published_rate"`
	CreatedTrend            map[int]float64 `json:"created_trend" yaml:"created_trend"`
	AcceptedTrend           map[int]float64 `json:"accepted_trend" yaml:"accepted_trend"`
}

// TopicTrend is one row of the emerging-topics ranking.
type TopicTrend struct {
	TopicKey    string   `json:"topic_key" yaml:"topic_key"`
	TopicName   string   `json:"topic_name" yaml:"topic_name"`
	TotalVolume int      `json:"total_volume" yaml:"total_volume"`
	GrowthRate  *float64 `json:"growth_rate,omitempty" yaml:"growth_rate,omitempty"`
	Sparkline   []int    `json:"sparkline" yaml:"sparkline"`
}

// EmergingTopics ranks topics by recent growth, ties broken by volume.
type EmergingTopics struct {
	RankedTopics []TopicTrend `json:"ranked_topics" yaml:"ranked_topics"`
}

// Opportunity is one row of the gap analysis: a growing topic where the
// target publisher is under-represented.
type Opportunity struct {
	TopicKey         string  `json:"topic_key" yaml:"topic_key"`
	TopicName        string  `json:"topic_name" yaml:"topic_name"`
	OverallGrowth    float64 `json:"overall_growth" yaml:"overall_growth"`
	TargetShare      float64 `json:"target_share" yaml:"target_share"`
	TopicVolume      int     `json:"topic_volume" yaml:"topic_volume"`
	OpportunityScore float64 `json:"opportunity_score" yaml:"opportunity_score"`
	Explanation      string  `json:"explanation" yaml:"explanation"`
}

// GapAnalysis is the competitive-gap payload for one target publisher.
type GapAnalysis struct {
	TargetPublisher string        `json:"target_publisher" yaml:"target_publisher"`
	Opportunities   []Opportunity `json:"opportunities" yaml:"opportunities"`
}

// TopicAnalysis is the full result of the topic/ad-hoc analysis operation.
type TopicAnalysis struct {
	RecordCount int                 `json:"record_count" yaml:"record_count"`
	Coverage    Coverage            `json:"coverage" yaml:"coverage"`
	Overview    Overview            `json:"overview" yaml:"overview"`
	Journals    JournalIntelligence `json:"journals" yaml:"journals"`
	Meta        Meta                `json:"meta" yaml:"meta"`
}

// PublisherComparison is the full result of the publisher-comparison operation.
type PublisherComparison struct {
	RecordCount int        `json:"record_count" yaml:"record_count"`
	Coverage    Coverage   `json:"coverage" yaml:"coverage"`
	Comparison  Comparison `json:"comparison" yaml:"comparison"`
	Meta        Meta       `json:"meta" yaml:"meta"`
}

// EmergingTopicsResult is the full result of the emerging-topics operation.
type EmergingTopicsResult struct {
	Result EmergingTopics `json:"result" yaml:"result"`
	Meta   Meta           `json:"meta" yaml:"meta"`
}

// GapAnalysisResult is the full result of the gap-analysis operation.
type GapAnalysisResult struct {
	Result GapAnalysis `json:"result" yaml:"result"`
	Meta   Meta        `json:"meta" yaml:"meta"`
}

// InstitutionsResult is the full result of the institution-ranking operation.
type InstitutionsResult struct {
	RecordCount  int          `json:"record_count" yaml:"record_count"`
	Coverage     Coverage     `json:"coverage" yaml:"coverage"`
	Institutions Institutions `json:"institutions" yaml:"institutions"`
	Meta         Meta         `json:"meta" yaml:"meta"`
}

// TimeToPubResult is the full result of the publication-lag operation.
type TimeToPubResult struct {
	RecordCount       int      `json:"record_count" yaml:"record_count"`
	Coverage          Coverage `json:"coverage" yaml:"coverage"`
	TimeToPublication LagStats `json:"time_to_publication" yaml:"time_to_publication"`
	Meta              Meta     `json:"meta" yaml:"meta"`
}
