// internal/intel/aggregate/aggregate.go
package aggregate

import (
	"brand-intel/internal/models"
)

// Market-position thresholds. The ordinal policy (volume first, then
// sentiment band) feeds comparable dashboard output and must stay stable.
const (
	establishedMentions  = 10
	emergingMentions     = 5
	leaderSentimentFloor = 0.3
)

const (
	maxSamplePosts   = 3
	sampleExcerptLen = 200
)

// Weights are the per-interaction multipliers of the engagement score.
// Defaults follow the product heuristic: shares signal more intent than
// comments, comments more than likes.
type Weights struct {
	Likes    float64
	Comments float64
	Shares   float64
}

// DefaultWeights returns the 1/2/3 engagement weighting.
func DefaultWeights() Weights {
	return Weights{Likes: 1, Comments: 2, Shares: 3}
}

// Score computes the weighted engagement score of one record.
func (w Weights) Score(record *models.PostRecord) float64 {
	return w.Likes*float64(record.Likes) +
		w.Comments*float64(record.Comments) +
		w.Shares*float64(record.Shares)
}

// Accumulator builds one BrandAggregate per roster brand over a single
// pipeline run. It is owned by that run; concurrent runs each construct
// their own.
type Accumulator struct {
	weights    Weights
	aggregates []*models.BrandAggregate
	finalized  bool
}

// NewAccumulator creates empty aggregates for every roster brand, preserving
// roster insertion order.
func NewAccumulator(roster []models.BrandDefinition, weights Weights) *Accumulator {
	aggregates := make([]*models.BrandAggregate, len(roster))
	for i, b := range roster {
		aggregates[i] = &models.BrandAggregate{Brand: b}
	}
	return &Accumulator{weights: weights, aggregates: aggregates}
}

// Add records one matched (brand, record, sentiment) triple into the brand's
// aggregate. The sentiment score is computed once per record by the caller
// and shared across every brand the record matches.
func (a *Accumulator) Add(brandIdx int, record *models.PostRecord, score models.SentimentScore) {
	agg := a.aggregates[brandIdx]

	agg.MentionCount++
	agg.SentimentScores = append(agg.SentimentScores, score.Score)

	switch score.Label {
	case models.SentimentPositive:
		agg.PositiveCount++
	case models.SentimentNegative:
		agg.NegativeCount++
	default:
		agg.NeutralCount++
	}

	agg.Engagement.Likes += record.Likes
	agg.Engagement.Comments += record.Comments
	agg.Engagement.Shares += record.Shares
	agg.EngagementScores = append(agg.EngagementScores, a.weights.Score(record))

	if len(agg.SamplePosts) < maxSamplePosts {
		agg.SamplePosts = append(agg.SamplePosts, models.SamplePost{
			Text:      excerpt(record.Text, sampleExcerptLen),
			Sentiment: score.Score,
			Source:    record.Source,
		})
	}
}

// Finalize computes the per-brand averages and market positions and returns
// the aggregates in roster order. The aggregates are read-only afterwards.
func (a *Accumulator) Finalize() []*models.BrandAggregate {
	if a.finalized {
		return a.aggregates
	}
	for _, agg := range a.aggregates {
		agg.AvgSentiment = mean(agg.SentimentScores)
		agg.AvgEngagement = mean(agg.EngagementScores)
		agg.MarketPosition = MarketPosition(agg.MentionCount, agg.AvgSentiment)
	}
	a.finalized = true
	return a.aggregates
}

// MarketPosition classifies a brand from its mention volume and average
// sentiment. Pure function of its inputs.
func MarketPosition(mentions int, avgSentiment float64) string {
	switch {
	case mentions >= establishedMentions && avgSentiment > leaderSentimentFloor:
		return models.PositionMarketLeader
	case mentions >= establishedMentions && avgSentiment > 0.0:
		return models.PositionStrongCompetitor
	case mentions >= establishedMentions:
		return models.PositionChallenged
	case mentions >= emergingMentions:
		return models.PositionEmerging
	default:
		return models.PositionNiche
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
