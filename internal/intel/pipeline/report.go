// internal/intel/pipeline/report.go
package pipeline

import (
	"time"

	"brand-intel/internal/intel/aggregate"
	"brand-intel/internal/intel/brand"
	"brand-intel/internal/intel/insights"
	"brand-intel/internal/models"
)

// renderReport shapes finalized aggregates and ranked insights into the
// dashboard report. Sentiment values round to 3 decimal places, engagement
// and percentage values to 1.
func renderReport(
	runID string,
	started time.Time,
	stats runStats,
	aggregates []*models.BrandAggregate,
	ranked models.CompetitiveInsights,
) *models.CompetitiveReport {
	analysis := make(map[string]models.BrandAnalysis, len(aggregates))
	for _, agg := range aggregates {
		samples := agg.SamplePosts
		if samples == nil {
			samples = []models.SamplePost{}
		}
		analysis[agg.Brand.Name] = models.BrandAnalysis{
			Mentions:          agg.MentionCount,
			PositiveSentiment: agg.PositiveCount,
			NegativeSentiment: agg.NegativeCount,
			NeutralSentiment:  agg.NeutralCount,
			AvgSentimentScore: insights.Round3(agg.AvgSentiment),
			EngagementMetrics: models.EngagementMetrics{
				TotalLikes:    agg.Engagement.Likes,
				TotalComments: agg.Engagement.Comments,
				TotalShares:   agg.Engagement.Shares,
				AvgEngagement: insights.Round1(agg.AvgEngagement),
			},
			SamplePosts:    samples,
			MarketPosition: agg.MarketPosition,
		}
	}

	return &models.CompetitiveReport{
		RunID:               runID,
		GeneratedAt:         started.UTC().Format(time.RFC3339),
		TotalPostsAnalyzed:  stats.totalPosts,
		BrandsAnalyzed:      len(aggregates),
		FilesScanned:        stats.filesScanned,
		FilesSkipped:        stats.filesSkipped,
		LinesSkipped:        stats.linesSkipped,
		BrandAnalysis:       analysis,
		CompetitiveInsights: ranked,
	}
}

// defaultReport is the all-zero report returned when a run is recovered from
// a panic. Every roster brand appears as niche with empty metrics, so
// consumers never see a half-written payload.
func defaultReport(runID string, roster []models.BrandDefinition, weights aggregate.Weights) *models.CompetitiveReport {
	aggregates := aggregate.NewAccumulator(roster, weights).Finalize()
	ranked := insights.Rank(aggregates, brand.Subject(roster))
	return renderReport(runID, time.Now(), runStats{}, aggregates, ranked)
}
