// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-intel/internal/common/config"
	"brand-intel/internal/common/database"
	"brand-intel/internal/common/logger"
	"brand-intel/internal/intel/aggregate"
	"brand-intel/internal/intel/brand"
	"brand-intel/internal/intel/pipeline"
	"brand-intel/internal/repository"
)

// skipUnlessE2E gates these tests behind a live local stack (Redis,
// PostgreSQL, Elasticsearch).
func skipUnlessE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_E2E") != "1" {
		t.Skip("set RUN_E2E=1 to run against live services")
	}
}

func writeUploads(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"instagram.json": `[
			{"caption": "supreme box logo drop was fire", "likes": 250, "comments": 40, "shares": 12},
			{"caption": "crooks and castles medusa tee still underrated", "likes": 80, "comments": 9, "shares": 3}
		]`,
		"twitter.jsonl": `{"text": "stussy world tour tee is clean", "favorite_count": 120, "retweets": 30}
{"text": "bape camo is kinda overrated", "favorite_count": 60, "retweets": 8}`,
		"facebook.csv": "page_name,message,likes,comments,shares\n" +
			"Kith,kith friends and family pack looks amazing,95,12,4\n",
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestFullPipelineAgainstLiveStack(t *testing.T) {
	skipUnlessE2E(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// --- Live service connectivity ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	require.NoError(t, pg.Ping(ctx))
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	require.NoError(t, rdb.Ping(ctx))
	defer rdb.Close()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	require.NoError(t, es.Ping())

	// --- Corpus on disk ---
	uploadsDir := t.TempDir()
	writeUploads(t, uploadsDir)

	// --- Full pipeline with every sink attached ---
	indexer := repository.NewMentionIndexer(es.Client, es.Index, log)
	p := pipeline.New(brand.DefaultRoster(), aggregate.DefaultWeights(),
		pipeline.NewDirCorpus(uploadsDir, log), log).
		WithMentionSink(indexer)

	started := time.Now()
	report, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalPostsAnalyzed)
	assert.Equal(t, 3, report.FilesScanned)
	assert.Equal(t, 1, report.BrandAnalysis["Supreme"].Mentions)
	assert.Equal(t, 1, report.BrandAnalysis["Crooks & Castles"].Mentions)
	assert.Equal(t, 1, report.BrandAnalysis["Kith"].Mentions)

	// --- Persist and read back through the stores ---
	_, err = pg.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pipeline_runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL,
			total_posts INT NOT NULL,
			files_scanned INT NOT NULL,
			files_skipped INT NOT NULL,
			lines_skipped INT NOT NULL
		)`)
	require.NoError(t, err)

	runs := repository.NewRunRepository(pg.DB)
	require.NoError(t, runs.SaveRun(ctx, report, started, time.Now()))

	recent, err := runs.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, recent)
	assert.Equal(t, report.RunID, recent[0].ID)

	cache := repository.NewReportCache(rdb.Client, time.Minute)
	require.NoError(t, cache.Store(ctx, report))

	cached, found, err := cache.Latest(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, report.RunID, cached.RunID)
}
