// internal/workers/intel/analyze-sentiment/handler.go
package analyzesentiment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"brand-intel/internal/common/logger"
	"brand-intel/internal/common/metrics"
	"brand-intel/internal/intel/sentiment"
)

const (
	TaskType = "analyze-sentiment"
)

// Handler scores free text on demand, outside a full pipeline run. Process
// designers use it to branch on the tone of a single post or comment.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "SENTIMENT_ANALYSIS_FAILED", err.Error())
		return nil
	}

	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	// Batch mode: score every text, summarize with the first.
	if len(input.Texts) > 0 {
		results := make([]Result, 0, len(input.Texts))
		for _, text := range input.Texts {
			score := sentiment.Score(text)
			results = append(results, Result{
				Text:  text,
				Score: score.Score,
				Label: score.Label,
			})
		}
		return &Output{
			Score:   results[0].Score,
			Label:   results[0].Label,
			Results: results,
		}, nil
	}

	// Empty text is valid input and scores exactly neutral.
	score := sentiment.Score(input.Text)
	return &Output{
		Score: score.Score,
		Label: score.Label,
	}, nil
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
