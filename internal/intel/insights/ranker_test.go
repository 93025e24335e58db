// internal/intel/insights/ranker_test.go
package insights

import (
	"testing"

	"brand-intel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brandAgg(name string, mentions int, sentiment, engagement float64) *models.BrandAggregate {
	return &models.BrandAggregate{
		Brand:          models.BrandDefinition{Name: name},
		MentionCount:   mentions,
		AvgSentiment:   sentiment,
		AvgEngagement:  engagement,
		MarketPosition: "niche",
	}
}

func subjectDef() models.BrandDefinition {
	return models.BrandDefinition{Name: "Crooks & Castles", Subject: true}
}

// ==========================
// Leaderboard Tests
// ==========================

func TestRank_LeaderboardOrdering(t *testing.T) {
	aggs := []*models.BrandAggregate{
		brandAgg("Crooks & Castles", 2, 0.1, 50),
		brandAgg("Supreme", 20, 0.2, 300),
		brandAgg("Stussy", 8, 0.6, 100),
		brandAgg("BAPE", 15, -0.1, 500),
		brandAgg("Palace", 12, 0.4, 80),
	}

	got := Rank(aggs, subjectDef())

	require.Len(t, got.MarketLeaders, 3)
	assert.Equal(t, "Supreme", got.MarketLeaders[0].Brand)
	assert.Equal(t, "BAPE", got.MarketLeaders[1].Brand)
	assert.Equal(t, "Palace", got.MarketLeaders[2].Brand)

	require.Len(t, got.SentimentWinners, 3)
	assert.Equal(t, "Stussy", got.SentimentWinners[0].Brand)
	assert.Equal(t, "Palace", got.SentimentWinners[1].Brand)
	assert.Equal(t, "Supreme", got.SentimentWinners[2].Brand)

	require.Len(t, got.EngagementLeaders, 3)
	assert.Equal(t, "BAPE", got.EngagementLeaders[0].Brand)
	assert.Equal(t, "Supreme", got.EngagementLeaders[1].Brand)
	assert.Equal(t, "Stussy", got.EngagementLeaders[2].Brand)
}

func TestRank_ExcludesZeroMentionBrands(t *testing.T) {
	aggs := []*models.BrandAggregate{
		brandAgg("Crooks & Castles", 0, 0, 0),
		brandAgg("Supreme", 3, 0.9, 900),
		brandAgg("Stussy", 0, 0.99, 999),
	}

	got := Rank(aggs, subjectDef())

	require.Len(t, got.MarketLeaders, 1)
	assert.Equal(t, "Supreme", got.MarketLeaders[0].Brand)
	require.Len(t, got.SentimentWinners, 1)
	require.Len(t, got.EngagementLeaders, 1)
}

func TestRank_TieKeepsRosterOrder(t *testing.T) {
	// Stussy appears before BAPE in the roster, so it wins the tie.
	aggs := []*models.BrandAggregate{
		brandAgg("Stussy", 7, 0.5, 100),
		brandAgg("BAPE", 7, 0.5, 100),
	}

	got := Rank(aggs, subjectDef())

	require.Len(t, got.MarketLeaders, 2)
	assert.Equal(t, "Stussy", got.MarketLeaders[0].Brand)
	assert.Equal(t, "BAPE", got.MarketLeaders[1].Brand)
	assert.Equal(t, "Stussy", got.SentimentWinners[0].Brand)
	assert.Equal(t, "Stussy", got.EngagementLeaders[0].Brand)
}

// ==========================
// Subject Position Tests
// ==========================

func TestRank_SubjectGaps(t *testing.T) {
	aggs := []*models.BrandAggregate{
		&models.BrandAggregate{
			Brand:          subjectDef(),
			MentionCount:   4,
			PositiveCount:  2,
			AvgSentiment:   0.25,
			AvgEngagement:  40.0,
			MarketPosition: models.PositionNiche,
		},
		brandAgg("Supreme", 20, 0.45, 300),
	}

	got := Rank(aggs, subjectDef())
	pos := got.CrooksPosition

	assert.Equal(t, 4, pos.Mentions)
	assert.Equal(t, 0.25, pos.AvgSentiment)
	assert.Equal(t, models.PositionNiche, pos.MarketPosition)
	assert.Equal(t, 50.0, pos.PositiveMentionPct)
	assert.Equal(t, 40.0, pos.AvgEngagement)

	require.NotNil(t, pos.MentionGap)
	assert.Equal(t, 16, *pos.MentionGap)
	require.NotNil(t, pos.SentimentGap)
	assert.InDelta(t, 0.2, *pos.SentimentGap, 1e-9)
}

func TestRank_NoLeadersNoGaps(t *testing.T) {
	aggs := []*models.BrandAggregate{
		&models.BrandAggregate{Brand: subjectDef(), MarketPosition: models.PositionNiche},
	}

	got := Rank(aggs, subjectDef())
	pos := got.CrooksPosition

	assert.Nil(t, pos.MentionGap)
	assert.Nil(t, pos.SentimentGap)
	assert.Equal(t, 0, pos.Mentions)
	assert.Equal(t, 0.0, pos.PositiveMentionPct)
}

// ==========================
// Opportunity Tests
// ==========================

func TestRank_OpportunityShape(t *testing.T) {
	aggs := []*models.BrandAggregate{
		&models.BrandAggregate{Brand: subjectDef(), MentionCount: 12, AvgSentiment: 0.2, MarketPosition: models.PositionStrongCompetitor},
		brandAgg("Supreme", 20, 0.45, 300),
	}

	got := Rank(aggs, subjectDef())

	require.Len(t, got.Opportunities, 3)
	assert.Equal(t, "sentiment_leadership", got.Opportunities[0].Type)
	assert.Equal(t, "mention_volume", got.Opportunities[1].Type)
	assert.Equal(t, "engagement_optimization", got.Opportunities[2].Type)

	// Subject has positive sentiment and >= 10 mentions: nothing urgent.
	assert.Equal(t, PriorityMedium, got.Opportunities[0].Priority)
	assert.Equal(t, PriorityMedium, got.Opportunities[1].Priority)
	assert.Equal(t, PriorityMedium, got.Opportunities[2].Priority)

	assert.Contains(t, got.Opportunities[1].Description, "Supreme")
}

func TestRank_OpportunityPriorities(t *testing.T) {
	aggs := []*models.BrandAggregate{
		&models.BrandAggregate{Brand: subjectDef(), MentionCount: 3, AvgSentiment: -0.2, MarketPosition: models.PositionNiche},
		brandAgg("Supreme", 20, 0.45, 300),
	}

	got := Rank(aggs, subjectDef())

	assert.Equal(t, PriorityHigh, got.Opportunities[0].Priority) // negative sentiment
	assert.Equal(t, PriorityHigh, got.Opportunities[1].Priority) // under 10 mentions
	assert.Equal(t, PriorityMedium, got.Opportunities[2].Priority)
}

func TestRank_EmptyAggregates(t *testing.T) {
	got := Rank(nil, subjectDef())

	assert.Empty(t, got.MarketLeaders)
	assert.Empty(t, got.SentimentWinners)
	assert.Empty(t, got.EngagementLeaders)
	require.Len(t, got.Opportunities, 3)
	assert.Equal(t, models.PositionNiche, got.CrooksPosition.MarketPosition)
}

// ==========================
// Rounding Tests
// ==========================

func TestRounding(t *testing.T) {
	assert.Equal(t, 0.123, Round3(0.12345))
	assert.Equal(t, -0.124, Round3(-0.1235))
	assert.Equal(t, 45.7, Round1(45.68))
	assert.Equal(t, 0.0, Round1(0.04))
}
