// internal/intel/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brand-intel/internal/common/errors"
	"brand-intel/internal/common/logger"
	"brand-intel/internal/common/metrics"
	"brand-intel/internal/intel/aggregate"
	"brand-intel/internal/intel/brand"
	"brand-intel/internal/intel/insights"
	"brand-intel/internal/intel/normalize"
	"brand-intel/internal/intel/sentiment"
	"brand-intel/internal/models"
)

// mentionExcerptLen bounds the text stored per indexed mention.
const mentionExcerptLen = 200

// MentionSink receives every matched (brand, record) pair of a run. Index
// failures must not fail the run; the pipeline logs and moves on.
type MentionSink interface {
	IndexMentions(ctx context.Context, mentions []models.Mention) error
}

// Pipeline runs the full corpus scan: normalize every upload, match records
// against the brand roster, score sentiment once per record, aggregate
// per-brand, and render the ranked competitive report. A Pipeline is safe to
// reuse across runs; each Run builds its own accumulator.
type Pipeline struct {
	matcher *brand.Matcher
	weights aggregate.Weights
	corpus  CorpusProvider
	sink    MentionSink
	logger  logger.Logger
}

func New(roster []models.BrandDefinition, weights aggregate.Weights, corpus CorpusProvider, log logger.Logger) *Pipeline {
	return &Pipeline{
		matcher: brand.NewMatcher(roster),
		weights: weights,
		corpus:  corpus,
		logger:  log,
	}
}

// WithMentionSink attaches an optional search-index sink.
func (p *Pipeline) WithMentionSink(sink MentionSink) *Pipeline {
	p.sink = sink
	return p
}

type runStats struct {
	totalPosts   int
	filesScanned int
	filesSkipped int
	linesSkipped int
}

// Run executes one pipeline pass and returns the finished report.
//
// A panic anywhere in the scan is recovered: the caller still gets a
// well-formed all-zero report plus a REPORT_GENERATION_FAILED error, so a
// bad upload can never take the worker down.
func (p *Pipeline) Run(ctx context.Context) (report *models.CompetitiveReport, err error) {
	runID := uuid.New().String()
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline run panicked", map[string]interface{}{
				"run_id": runID,
				"panic":  fmt.Sprintf("%v", r),
			})
			metrics.PipelineRuns.WithLabelValues("panic").Inc()
			report = defaultReport(runID, p.matcher.Roster(), p.weights)
			err = errors.NewReportGenerationFailedError(fmt.Errorf("recovered from panic: %v", r))
		}
	}()

	files, err := p.corpus.Enumerate(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, errors.NewFileUnreadableError("uploads", err)
	}

	roster := p.matcher.Roster()
	acc := aggregate.NewAccumulator(roster, p.weights)

	var stats runStats
	var mentions []models.Mention

	for _, file := range files {
		if ctx.Err() != nil {
			metrics.PipelineRuns.WithLabelValues("cancelled").Inc()
			return nil, ctx.Err()
		}

		result := normalize.Normalize(file)
		if result.Skipped() {
			stats.filesSkipped++
			metrics.FilesSkipped.WithLabelValues(string(result.Skip)).Inc()
			p.logger.Warn("skipping upload file", map[string]interface{}{
				"run_id": runID,
				"file":   result.File,
				"reason": string(result.Skip),
			})
			continue
		}

		stats.filesScanned++
		stats.linesSkipped += result.LinesSkipped
		if result.LinesSkipped > 0 {
			metrics.LinesSkipped.Add(float64(result.LinesSkipped))
		}

		for i := range result.Records {
			record := &result.Records[i]
			stats.totalPosts++
			metrics.RecordsScanned.Inc()

			matched := p.matcher.Match(record)
			if len(matched) == 0 {
				continue
			}

			// One sentiment score per record, shared by every brand it matched.
			score := sentiment.Score(record.Text)
			for _, brandIdx := range matched {
				acc.Add(brandIdx, record, score)
				mentions = append(mentions, models.Mention{
					RunID:     runID,
					Brand:     roster[brandIdx].Name,
					Excerpt:   excerpt(record.Text, mentionExcerptLen),
					Sentiment: score.Score,
					Label:     score.Label,
					Platform:  record.Platform,
					Date:      record.Date,
					Source:    record.Source,
				})
			}
		}
	}

	aggregates := acc.Finalize()
	ranked := insights.Rank(aggregates, brand.Subject(roster))
	report = renderReport(runID, started, stats, aggregates, ranked)

	if p.sink != nil && len(mentions) > 0 {
		if sinkErr := p.sink.IndexMentions(ctx, mentions); sinkErr != nil {
			p.logger.Warn("mention indexing failed", map[string]interface{}{
				"run_id":   runID,
				"mentions": len(mentions),
				"error":    sinkErr.Error(),
			})
		}
	}

	metrics.PipelineRuns.WithLabelValues("success").Inc()
	metrics.PipelineDuration.Observe(time.Since(started).Seconds())

	p.logger.Info("pipeline run finished", map[string]interface{}{
		"run_id":        runID,
		"total_posts":   stats.totalPosts,
		"files_scanned": stats.filesScanned,
		"files_skipped": stats.filesSkipped,
		"lines_skipped": stats.linesSkipped,
		"duration_ms":   time.Since(started).Milliseconds(),
	})

	return report, nil
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
