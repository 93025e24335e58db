// internal/repository/runs.go
package repository

import (
	"context"
	"database/sql"
	"time"

	"brand-intel/internal/common/errors"
	"brand-intel/internal/models"
)

// RunRepository persists pipeline-run bookkeeping rows. It records what ran
// and when, not the report payload itself; the report lives in the cache and
// on the wire.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

const insertRunQuery = `
	INSERT INTO pipeline_runs
		(id, started_at, finished_at, total_posts, files_scanned, files_skipped, lines_skipped)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// SaveRun records one finished pipeline run.
func (r *RunRepository) SaveRun(ctx context.Context, report *models.CompetitiveReport, startedAt, finishedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, insertRunQuery,
		report.RunID,
		startedAt.UTC(),
		finishedAt.UTC(),
		report.TotalPostsAnalyzed,
		report.FilesScanned,
		report.FilesSkipped,
		report.LinesSkipped,
	)
	if err != nil {
		return errors.NewQueryExecutionError("insert pipeline_runs", err)
	}
	return nil
}

const listRecentQuery = `
	SELECT id, started_at, finished_at, total_posts, files_scanned, files_skipped, lines_skipped
	FROM pipeline_runs
	ORDER BY started_at DESC
	LIMIT $1`

// ListRecent returns the most recent runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]models.PipelineRun, error) {
	rows, err := r.db.QueryContext(ctx, listRecentQuery, limit)
	if err != nil {
		return nil, errors.NewQueryExecutionError("select pipeline_runs", err)
	}
	defer rows.Close()

	var runs []models.PipelineRun
	for rows.Next() {
		var run models.PipelineRun
		var startedAt, finishedAt time.Time
		if err := rows.Scan(
			&run.ID,
			&startedAt,
			&finishedAt,
			&run.TotalPosts,
			&run.FilesScanned,
			&run.FilesSkipped,
			&run.LinesSkipped,
		); err != nil {
			return nil, errors.NewQueryExecutionError("scan pipeline_runs", err)
		}
		run.StartedAt = startedAt.UTC().Format(time.RFC3339)
		run.FinishedAt = finishedAt.UTC().Format(time.RFC3339)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionError("iterate pipeline_runs", err)
	}

	return runs, nil
}
