// internal/intel/insights/ranker.go
package insights

import (
	"fmt"
	"math"
	"sort"

	"brand-intel/internal/models"
)

// maxLeaders caps every leaderboard. Dashboards render exactly three slots.
const maxLeaders = 3

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

const (
	highPriorityMentionFloor = 10
)

// Rank turns finalized per-brand aggregates into the competitive insight
// block: three leaderboards, the subject brand's position with gap analysis,
// and the fixed opportunity list. Ties on any sort key keep roster insertion
// order, which is why every sort here is stable.
func Rank(aggregates []*models.BrandAggregate, subject models.BrandDefinition) models.CompetitiveInsights {
	mentioned := withMentions(aggregates)

	byMentions := topBy(mentioned, func(a, b *models.BrandAggregate) bool {
		return a.MentionCount > b.MentionCount
	})
	bySentiment := topBy(mentioned, func(a, b *models.BrandAggregate) bool {
		return a.AvgSentiment > b.AvgSentiment
	})
	byEngagement := topBy(mentioned, func(a, b *models.BrandAggregate) bool {
		return a.AvgEngagement > b.AvgEngagement
	})

	marketLeaders := make([]models.MentionLeader, 0, len(byMentions))
	for _, agg := range byMentions {
		marketLeaders = append(marketLeaders, models.MentionLeader{
			Brand:    agg.Brand.Name,
			Mentions: agg.MentionCount,
		})
	}

	sentimentWinners := make([]models.SentimentLeader, 0, len(bySentiment))
	for _, agg := range bySentiment {
		sentimentWinners = append(sentimentWinners, models.SentimentLeader{
			Brand:        agg.Brand.Name,
			AvgSentiment: Round3(agg.AvgSentiment),
		})
	}

	engagementLeaders := make([]models.EngagementLeader, 0, len(byEngagement))
	for _, agg := range byEngagement {
		engagementLeaders = append(engagementLeaders, models.EngagementLeader{
			Brand:         agg.Brand.Name,
			AvgEngagement: Round1(agg.AvgEngagement),
		})
	}

	subjectAgg := findBrand(aggregates, subject.Name)

	return models.CompetitiveInsights{
		MarketLeaders:     marketLeaders,
		SentimentWinners:  sentimentWinners,
		EngagementLeaders: engagementLeaders,
		Opportunities:     opportunities(subjectAgg, byMentions, bySentiment, byEngagement),
		CrooksPosition:    subjectPosition(subjectAgg, byMentions),
	}
}

// withMentions filters out zero-mention brands; they never appear on a
// leaderboard.
func withMentions(aggregates []*models.BrandAggregate) []*models.BrandAggregate {
	out := make([]*models.BrandAggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		if agg.MentionCount > 0 {
			out = append(out, agg)
		}
	}
	return out
}

func topBy(aggregates []*models.BrandAggregate, less func(a, b *models.BrandAggregate) bool) []*models.BrandAggregate {
	ranked := make([]*models.BrandAggregate, len(aggregates))
	copy(ranked, aggregates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})
	if len(ranked) > maxLeaders {
		ranked = ranked[:maxLeaders]
	}
	return ranked
}

func findBrand(aggregates []*models.BrandAggregate, name string) *models.BrandAggregate {
	for _, agg := range aggregates {
		if agg.Brand.Name == name {
			return agg
		}
	}
	return &models.BrandAggregate{Brand: models.BrandDefinition{Name: name}, MarketPosition: models.PositionNiche}
}

// subjectPosition summarizes the subject brand and, when a market leader
// exists, how far behind it the subject sits.
func subjectPosition(subject *models.BrandAggregate, byMentions []*models.BrandAggregate) models.SubjectPosition {
	pos := models.SubjectPosition{
		Mentions:           subject.MentionCount,
		AvgSentiment:       Round3(subject.AvgSentiment),
		MarketPosition:     subject.MarketPosition,
		PositiveMentionPct: Round1(positivePct(subject)),
		AvgEngagement:      Round1(subject.AvgEngagement),
	}

	if len(byMentions) > 0 {
		top := byMentions[0]
		mentionGap := top.MentionCount - subject.MentionCount
		sentimentGap := Round3(top.AvgSentiment - subject.AvgSentiment)
		pos.MentionGap = &mentionGap
		pos.SentimentGap = &sentimentGap
	}

	return pos
}

func positivePct(agg *models.BrandAggregate) float64 {
	denom := agg.MentionCount
	if denom < 1 {
		denom = 1
	}
	return float64(agg.PositiveCount) / float64(denom) * 100.0
}

// opportunities is the fixed-shape guidance list: sentiment leadership,
// mention volume, engagement optimization — always exactly three entries.
func opportunities(subject *models.BrandAggregate, byMentions, bySentiment, byEngagement []*models.BrandAggregate) []models.Opportunity {
	sentimentPriority := PriorityMedium
	if subject.AvgSentiment < 0 {
		sentimentPriority = PriorityHigh
	}
	sentimentDesc := fmt.Sprintf("Average sentiment sits at %.3f with no rated competitor to chase; protect it as volume grows", subject.AvgSentiment)
	if len(bySentiment) > 0 {
		top := bySentiment[0]
		sentimentDesc = fmt.Sprintf("Average sentiment sits at %.3f vs %.3f for %s; close the gap through community engagement and quality messaging",
			subject.AvgSentiment, top.AvgSentiment, top.Brand.Name)
	}

	volumePriority := PriorityMedium
	if subject.MentionCount < highPriorityMentionFloor {
		volumePriority = PriorityHigh
	}
	volumeDesc := fmt.Sprintf("Only %d tracked mentions this period; increase drop frequency and collab visibility to grow share of voice", subject.MentionCount)
	if len(byMentions) > 0 {
		top := byMentions[0]
		volumeDesc = fmt.Sprintf("%d tracked mentions vs %d for %s; increase drop frequency and collab visibility to grow share of voice",
			subject.MentionCount, top.MentionCount, top.Brand.Name)
	}

	engagementDesc := fmt.Sprintf("Average engagement per mention is %.1f; test content formats that convert likes into comments and shares", subject.AvgEngagement)
	if len(byEngagement) > 0 {
		top := byEngagement[0]
		engagementDesc = fmt.Sprintf("Average engagement per mention is %.1f vs %.1f for %s; test content formats that convert likes into comments and shares",
			subject.AvgEngagement, top.AvgEngagement, top.Brand.Name)
	}

	return []models.Opportunity{
		{Type: "sentiment_leadership", Description: sentimentDesc, Priority: sentimentPriority},
		{Type: "mention_volume", Description: volumeDesc, Priority: volumePriority},
		{Type: "engagement_optimization", Description: engagementDesc, Priority: PriorityMedium},
	}
}

// Round3 rounds to 3 decimal places, the report convention for sentiment.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round1 rounds to 1 decimal place, the report convention for engagement and
// percentage values.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
