// internal/intel/aggregate/aggregate_test.go
package aggregate

import (
	"strings"
	"testing"

	"brand-intel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() []models.BrandDefinition {
	return []models.BrandDefinition{
		{Name: "Crooks & Castles", Keywords: []string{"crooks"}, Subject: true},
		{Name: "Supreme", Keywords: []string{"supreme"}},
	}
}

// ==========================
// Accumulation Tests
// ==========================

func TestAdd_EngagementWeighting(t *testing.T) {
	acc := NewAccumulator(testRoster(), DefaultWeights())

	record := &models.PostRecord{
		Text:     "Supreme dropped the best hoodie ever!!",
		Likes:    100,
		Comments: 10,
		Shares:   5,
		Source:   "exports/ig_posts.jsonl",
	}
	acc.Add(1, record, models.SentimentScore{Score: 0.8, Label: models.SentimentPositive})

	aggs := acc.Finalize()
	supreme := aggs[1]

	assert.Equal(t, 1, supreme.MentionCount)
	require.Len(t, supreme.EngagementScores, 1)
	assert.Equal(t, 135.0, supreme.EngagementScores[0]) // 100 + 2*10 + 3*5
	assert.Equal(t, 1, supreme.PositiveCount)
	assert.Equal(t, 100, supreme.Engagement.Likes)
	assert.Equal(t, 10, supreme.Engagement.Comments)
	assert.Equal(t, 5, supreme.Engagement.Shares)
}

func TestAdd_SentimentBuckets(t *testing.T) {
	acc := NewAccumulator(testRoster(), DefaultWeights())
	record := &models.PostRecord{Text: "whatever"}

	acc.Add(0, record, models.SentimentScore{Score: 0.5, Label: models.SentimentPositive})
	acc.Add(0, record, models.SentimentScore{Score: -0.5, Label: models.SentimentNegative})
	acc.Add(0, record, models.SentimentScore{Score: 0.0, Label: models.SentimentNeutral})

	agg := acc.Finalize()[0]
	assert.Equal(t, 3, agg.MentionCount)
	assert.Equal(t, 1, agg.PositiveCount)
	assert.Equal(t, 1, agg.NegativeCount)
	assert.Equal(t, 1, agg.NeutralCount)
	assert.InDelta(t, 0.0, agg.AvgSentiment, 1e-9)
}

func TestAdd_SampleCapAndTruncation(t *testing.T) {
	acc := NewAccumulator(testRoster(), DefaultWeights())

	long := strings.Repeat("x", 500)
	for i := 0; i < 5; i++ {
		acc.Add(0, &models.PostRecord{Text: long, Source: "dump.csv"}, models.SentimentScore{Label: models.SentimentNeutral})
	}

	agg := acc.Finalize()[0]
	require.Len(t, agg.SamplePosts, 3)
	for _, sample := range agg.SamplePosts {
		assert.Len(t, sample.Text, 200)
		assert.Equal(t, "dump.csv", sample.Source)
	}
}

func TestFinalize_ZeroMentions(t *testing.T) {
	acc := NewAccumulator(testRoster(), DefaultWeights())

	aggs := acc.Finalize()
	for _, agg := range aggs {
		assert.Equal(t, 0, agg.MentionCount)
		assert.Equal(t, 0.0, agg.AvgSentiment)
		assert.Equal(t, 0.0, agg.AvgEngagement)
		assert.Equal(t, models.PositionNiche, agg.MarketPosition)
	}
}

func TestFinalize_Idempotent(t *testing.T) {
	acc := NewAccumulator(testRoster(), DefaultWeights())
	acc.Add(0, &models.PostRecord{Likes: 10}, models.SentimentScore{Score: 0.4, Label: models.SentimentPositive})

	first := acc.Finalize()
	second := acc.Finalize()
	assert.Equal(t, first, second)
}

// ==========================
// Market Position Tests
// ==========================

func TestMarketPosition_Boundaries(t *testing.T) {
	tests := []struct {
		mentions  int
		sentiment float64
		expected  string
	}{
		{10, 0.31, models.PositionMarketLeader},
		{10, 0.3, models.PositionStrongCompetitor}, // leader needs > 0.3
		{10, 0.01, models.PositionStrongCompetitor},
		{10, 0.0, models.PositionChallenged},
		{10, -0.5, models.PositionChallenged},
		{9, 0.9, models.PositionEmerging},
		{5, -0.9, models.PositionEmerging},
		{4, 0.9, models.PositionNiche},
		{0, 0.0, models.PositionNiche},
	}

	for _, tt := range tests {
		got := MarketPosition(tt.mentions, tt.sentiment)
		assert.Equal(t, tt.expected, got, "mentions=%d sentiment=%v", tt.mentions, tt.sentiment)
	}
}

func TestWeights_Score(t *testing.T) {
	w := Weights{Likes: 1, Comments: 2, Shares: 3}
	record := &models.PostRecord{Likes: 100, Comments: 10, Shares: 5}

	assert.Equal(t, 135.0, w.Score(record))
}
