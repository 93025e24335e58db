// internal/workers/intel/generate-competitive-report/handler_test.go
package generatecompetitivereport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-intel/internal/common/logger"
	"brand-intel/internal/intel/aggregate"
	"brand-intel/internal/intel/brand"
	"brand-intel/internal/intel/pipeline"
	"brand-intel/internal/models"
)

type fakeRunStore struct {
	saved []string
	err   error
}

func (s *fakeRunStore) SaveRun(_ context.Context, report *models.CompetitiveReport, _, _ time.Time) error {
	s.saved = append(s.saved, report.RunID)
	return s.err
}

type fakeNotifier struct {
	notified []string
	err      error
}

func (n *fakeNotifier) NotifyRunCompleted(_ context.Context, report *models.CompetitiveReport) error {
	n.notified = append(n.notified, report.RunID)
	return n.err
}

func newTestHandler(t *testing.T, corpus pipeline.CorpusProvider) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	p := pipeline.New(brand.DefaultRoster(), aggregate.DefaultWeights(), corpus, log)
	return NewHandler(LoadConfig(), p, log)
}

func testCorpus() pipeline.StaticCorpus {
	return pipeline.StaticCorpus{
		{
			Name:   "posts.json",
			Format: models.FormatJSON,
			Data:   []byte(`[{"text": "supreme drop goes crazy", "likes": 12}]`),
		},
	}
}

func TestExecute_GeneratesReport(t *testing.T) {
	h := newTestHandler(t, testCorpus())

	output, err := h.Execute(context.Background(), &Input{RequestID: "req-1"})
	require.NoError(t, err)

	assert.Equal(t, "completed", output.Status)
	require.NotNil(t, output.Report)
	assert.NotEmpty(t, output.Report.RunID)
	assert.Equal(t, 1, output.Report.TotalPostsAnalyzed)
	assert.Equal(t, 1, output.Report.BrandAnalysis["Supreme"].Mentions)
}

func TestExecute_InvokesSideEffects(t *testing.T) {
	store := &fakeRunStore{}
	notifier := &fakeNotifier{}

	h := newTestHandler(t, testCorpus()).
		WithRunStore(store).
		WithNotifier(notifier)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, output.Report.RunID, store.saved[0])
	assert.Equal(t, output.Report.RunID, notifier.notified[0])
}

func TestExecute_SideEffectFailuresAreNonFatal(t *testing.T) {
	store := &fakeRunStore{err: assert.AnError}
	notifier := &fakeNotifier{err: assert.AnError}

	h := newTestHandler(t, testCorpus()).
		WithRunStore(store).
		WithNotifier(notifier)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, "completed", output.Status)
}

func TestExecute_EmptyCorpus(t *testing.T) {
	h := newTestHandler(t, pipeline.StaticCorpus{})

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, 0, output.Report.TotalPostsAnalyzed)
	assert.Len(t, output.Report.BrandAnalysis, len(brand.DefaultRoster()))
}
