// internal/models/brand.go
package models

// BrandDefinition is one tracked brand plus the case-insensitive keywords
// used to match it. The roster is immutable after configuration and safely
// shared across pipeline runs.
type BrandDefinition struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Subject  bool     `json:"subject,omitempty"`
}

// Sentiment classification labels derived from the blended score.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentScore is a bounded polarity in [-1, 1] plus its three-way label.
type SentimentScore struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Market position labels, coarse volume/sentiment classifications per brand.
const (
	PositionMarketLeader     = "market_leader"
	PositionStrongCompetitor = "strong_competitor"
	PositionChallenged       = "challenged"
	PositionEmerging         = "emerging"
	PositionNiche            = "niche"
)

// SamplePost is a representative matched record kept for inspection.
type SamplePost struct {
	Text      string  `json:"text"`
	Sentiment float64 `json:"sentiment"`
	Source    string  `json:"source"`
}

// EngagementTotals accumulates raw interaction counts for one brand.
type EngagementTotals struct {
	Likes    int `json:"total_likes"`
	Comments int `json:"total_comments"`
	Shares   int `json:"total_shares"`
}

// BrandAggregate is the per-brand accumulator for a single pipeline run.
// It is created empty at run start, mutated once per matching record, then
// finalized and treated as read-only by the ranker.
type BrandAggregate struct {
	Brand            BrandDefinition
	MentionCount     int
	SentimentScores  []float64
	PositiveCount    int
	NegativeCount    int
	NeutralCount     int
	Engagement       EngagementTotals
	EngagementScores []float64
	SamplePosts      []SamplePost

	// Derived at finalize time.
	AvgSentiment   float64
	AvgEngagement  float64
	MarketPosition string
}
