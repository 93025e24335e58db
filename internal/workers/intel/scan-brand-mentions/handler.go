// internal/workers/intel/scan-brand-mentions/handler.go
package scanbrandmentions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"brand-intel/internal/common/logger"
	"brand-intel/internal/common/metrics"
	"brand-intel/internal/intel/brand"
	"brand-intel/internal/intel/normalize"
	"brand-intel/internal/intel/pipeline"
	"brand-intel/internal/models"
)

const (
	TaskType = "scan-brand-mentions"
)

// Handler counts per-brand mentions without building a full report. It backs
// the quick-look path: inline payloads from the process, or the shared
// uploads directory when the job carries no files.
type Handler struct {
	config  *Config
	matcher *brand.Matcher
	corpus  pipeline.CorpusProvider
	logger  logger.Logger
}

func NewHandler(config *Config, roster []models.BrandDefinition, corpus pipeline.CorpusProvider, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		matcher: brand.NewMatcher(roster),
		corpus:  corpus,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "MENTION_SCAN_FAILED", err.Error())
		return nil
	}

	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	files, err := h.sourceFiles(ctx, input)
	if err != nil {
		return nil, err
	}

	roster := h.matcher.Roster()
	output := &Output{Mentions: make(map[string]int, len(roster))}
	for _, b := range roster {
		output.Mentions[b.Name] = 0
	}

	for _, file := range files {
		result := normalize.Normalize(file)
		if result.Skipped() {
			output.FilesSkipped++
			h.logger.Warn("skipping file", map[string]interface{}{
				"file":   result.File,
				"reason": string(result.Skip),
			})
			continue
		}

		output.FilesScanned++
		output.LinesSkipped += result.LinesSkipped

		for i := range result.Records {
			record := &result.Records[i]
			output.TotalRecords++
			for _, brandIdx := range h.matcher.Match(record) {
				output.Mentions[roster[brandIdx].Name]++
			}
		}
	}

	return output, nil
}

func (h *Handler) sourceFiles(ctx context.Context, input *Input) ([]models.SourceFile, error) {
	if len(input.Files) == 0 {
		return h.corpus.Enumerate(ctx)
	}

	files := make([]models.SourceFile, 0, len(input.Files))
	for _, f := range input.Files {
		files = append(files, models.SourceFile{
			Name:   f.Name,
			Data:   []byte(f.Content),
			Format: normalize.DetectFormat(f.Name, models.SourceFormat(f.Format)),
		})
	}
	return files, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

// Execute exposes the core logic for direct invocation in tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
