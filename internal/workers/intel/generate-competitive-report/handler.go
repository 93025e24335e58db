// internal/workers/intel/generate-competitive-report/handler.go
package generatecompetitivereport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"brand-intel/internal/common/errors"
	"brand-intel/internal/common/logger"
	"brand-intel/internal/common/metrics"
	"brand-intel/internal/intel/pipeline"
	"brand-intel/internal/models"
	"brand-intel/internal/repository"
)

const (
	TaskType = "generate-competitive-report"
)

// RunStore and Notifier are the optional side effects of a finished run.
// Either may be nil; the report itself never depends on them.
type RunStore interface {
	SaveRun(ctx context.Context, report *models.CompetitiveReport, startedAt, finishedAt time.Time) error
}

type Notifier interface {
	NotifyRunCompleted(ctx context.Context, report *models.CompetitiveReport) error
}

type Handler struct {
	config   *Config
	pipeline *pipeline.Pipeline
	runs     RunStore
	cache    *repository.ReportCache
	notifier Notifier
	errh     *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, p *pipeline.Pipeline, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		pipeline: p,
		errh:     errors.NewErrorHandler(scoped),
		logger:   scoped,
	}
}

// WithRunStore attaches run-history persistence.
func (h *Handler) WithRunStore(runs RunStore) *Handler {
	h.runs = runs
	return h
}

// WithReportCache attaches the latest-report cache.
func (h *Handler) WithReportCache(cache *repository.ReportCache) *Handler {
	h.cache = cache
	return h
}

// WithNotifier attaches run-completion notifications.
func (h *Handler) WithNotifier(n Notifier) *Handler {
	h.notifier = n
	return h
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
		code := string(errors.ErrCodeReportGenerationFailed)
		if stdErr, ok := err.(*errors.StandardError); ok {
			code = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		h.errh.HandleJobError(ctx, client, job, err)
		return nil
	}

	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	started := time.Now()

	report, err := h.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}
	finished := time.Now()

	// Side effects are best-effort; the report has already been built.
	if h.runs != nil {
		if err := h.runs.SaveRun(ctx, report, started, finished); err != nil {
			h.logger.Warn("failed to persist run history", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
		}
	}
	if h.cache != nil {
		if err := h.cache.Store(ctx, report); err != nil {
			h.logger.Warn("failed to cache report", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
		}
	}
	if h.notifier != nil {
		if err := h.notifier.NotifyRunCompleted(ctx, report); err != nil {
			h.logger.Warn("failed to send run notification", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
		}
	}

	h.logger.Info("competitive report generated", map[string]interface{}{
		"runId":      report.RunID,
		"requestId":  input.RequestID,
		"totalPosts": report.TotalPostsAnalyzed,
	})

	return &Output{Status: "completed", Report: report}, nil
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

// Execute exposes the core logic for direct invocation (HTTP trigger, tests).
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
