// internal/models/report.go
package models

// BrandAnalysis is the rendered per-brand block of the final report.
// Field names match the dashboard consumers; sentiment values are rounded to
// 3 decimal places and engagement/percentage values to 1.
type BrandAnalysis struct {
	Mentions          int               `json:"mentions"`
	PositiveSentiment int               `json:"positive_sentiment"`
	NegativeSentiment int               `json:"negative_sentiment"`
	NeutralSentiment  int               `json:"neutral_sentiment"`
	AvgSentimentScore float64           `json:"avg_sentiment_score"`
	EngagementMetrics EngagementMetrics `json:"engagement_metrics"`
	SamplePosts       []SamplePost      `json:"sample_posts"`
	MarketPosition    string            `json:"market_position"`
}

type EngagementMetrics struct {
	TotalLikes    int     `json:"total_likes"`
	TotalComments int     `json:"total_comments"`
	TotalShares   int     `json:"total_shares"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// MentionLeader is one market_leaders entry.
type MentionLeader struct {
	Brand    string `json:"brand"`
	Mentions int    `json:"mentions"`
}

// SentimentLeader is one sentiment_winners entry.
type SentimentLeader struct {
	Brand        string  `json:"brand"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

// EngagementLeader is one engagement_leaders entry.
type EngagementLeader struct {
	Brand         string  `json:"brand"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// Opportunity is one entry of the fixed three-item opportunity list.
type Opportunity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// SubjectPosition summarizes the subject brand against the top market leader.
// Gap fields are present only when at least one market leader exists.
type SubjectPosition struct {
	Mentions           int      `json:"mentions"`
	AvgSentiment       float64  `json:"avg_sentiment"`
	MarketPosition     string   `json:"market_position"`
	PositiveMentionPct float64  `json:"positive_mention_pct"`
	AvgEngagement      float64  `json:"avg_engagement"`
	MentionGap         *int     `json:"mention_gap,omitempty"`
	SentimentGap       *float64 `json:"sentiment_gap,omitempty"`
}

// CompetitiveInsights holds the ranked leaderboards and derived guidance.
type CompetitiveInsights struct {
	MarketLeaders     []MentionLeader    `json:"market_leaders"`
	SentimentWinners  []SentimentLeader  `json:"sentiment_winners"`
	EngagementLeaders []EngagementLeader `json:"engagement_leaders"`
	Opportunities     []Opportunity      `json:"opportunities"`
	CrooksPosition    SubjectPosition    `json:"crooks_position"`
}

// CompetitiveReport is the immutable output of one pipeline run.
type CompetitiveReport struct {
	RunID               string                   `json:"run_id"`
	GeneratedAt         string                   `json:"generated_at"`
	TotalPostsAnalyzed  int                      `json:"total_posts_analyzed"`
	BrandsAnalyzed      int                      `json:"brands_analyzed"`
	FilesScanned        int                      `json:"files_scanned"`
	FilesSkipped        int                      `json:"files_skipped"`
	LinesSkipped        int                      `json:"lines_skipped"`
	BrandAnalysis       map[string]BrandAnalysis `json:"brand_analysis"`
	CompetitiveInsights CompetitiveInsights      `json:"competitive_insights"`
}

// PipelineRun is the persisted bookkeeping row for one report generation.
type PipelineRun struct {
	ID           string `json:"id"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at"`
	TotalPosts   int    `json:"total_posts"`
	FilesScanned int    `json:"files_scanned"`
	FilesSkipped int    `json:"files_skipped"`
	LinesSkipped int    `json:"lines_skipped"`
}
