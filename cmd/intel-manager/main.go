// cmd/intel-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"brand-intel/internal/common/aws"
	"brand-intel/internal/common/camunda"
	"brand-intel/internal/common/config"
	"brand-intel/internal/common/database"
	"brand-intel/internal/common/logger"
	"brand-intel/internal/common/observability"
	"brand-intel/internal/common/validation"
	"brand-intel/internal/intel/aggregate"
	"brand-intel/internal/intel/brand"
	"brand-intel/internal/intel/pipeline"
	"brand-intel/internal/models"
	"brand-intel/internal/repository"

	snt "brand-intel/internal/workers/intel/analyze-sentiment"
	rep "brand-intel/internal/workers/intel/generate-competitive-report"
	sbm "brand-intel/internal/workers/intel/scan-brand-mentions"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intel manager...")

	obs := observability.New("intel-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Brand roster ---
	roster, err := loadRoster(cfg)
	if err != nil {
		zapLog.Fatal("roster load failed", zap.Error(err))
	}
	zapLog.Info("Brand roster loaded",
		zap.Int("brands", len(roster)),
		zap.String("subject", brand.Subject(roster).Name),
	)

	// --- Init Zeebe Client with retry ---
	// NewClientWithConfig sends a topology probe, so each attempt verifies
	// the broker is actually reachable, not just that the client built.
	var brokerClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		brokerClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      time.Duration(cfg.Camunda.Timeout) * time.Millisecond,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
			RetryConfig:            camunda.DefaultRetryConfig,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := brokerClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Pipeline wiring ---
	weights := aggregate.Weights{
		Likes:    cfg.Intel.EngagementWeights.Likes,
		Comments: cfg.Intel.EngagementWeights.Comments,
		Shares:   cfg.Intel.EngagementWeights.Shares,
	}
	corpus := pipeline.NewDirCorpus(cfg.Intel.UploadsDir, log)
	indexer := repository.NewMentionIndexer(esClient.Client, esClient.Index, log)
	intelPipeline := pipeline.New(roster, weights, corpus, log).WithMentionSink(indexer)

	runRepo := repository.NewRunRepository(pg.DB)
	reportCache := repository.NewReportCache(redis.Client,
		time.Duration(cfg.Intel.ReportCacheTTL)*time.Second)

	notifier, err := aws.NewRunNotifier(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Warn("notifications disabled", zap.Error(err))
		notifier = nil
	}

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker

	if wcfg, ok := cfg.Workers[rep.TaskType]; ok && wcfg.Enabled {
		handler := rep.NewHandler(
			&rep.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			intelPipeline, log,
		).WithRunStore(runRepo).WithReportCache(reportCache)
		if notifier != nil {
			handler.WithNotifier(notifier)
		}
		workers = append(workers,
			camunda.NewWorker(zeebeClient, rep.TaskType, wcfg.MaxJobsActive, handler, log))
	}

	if wcfg, ok := cfg.Workers[snt.TaskType]; ok && wcfg.Enabled {
		handler := snt.NewHandler(
			&snt.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, snt.TaskType, wcfg.MaxJobsActive, handler, log))
	}

	if wcfg, ok := cfg.Workers[sbm.TaskType]; ok && wcfg.Enabled {
		handler := sbm.NewHandler(
			&sbm.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			roster, corpus, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, sbm.TaskType, wcfg.MaxJobsActive, handler, log))
	}

	for _, w := range workers {
		w.Start()
	}
	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

	// --- Health, Metrics & Report API ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			status := "ready"
			code := http.StatusOK
			if err := redis.Ping(r.Context()); err != nil {
				status = "not ready"
				code = http.StatusServiceUnavailable
			} else if err := brokerClient.HealthCheck(r.Context()); err != nil {
				status = "not ready"
				code = http.StatusServiceUnavailable
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		http.HandleFunc("/api/v1/competitive-report", reportHandler(intelPipeline, reportCache, runRepo, obs, log))
		http.HandleFunc("/api/v1/runs", runsHandler(runRepo))

		addr := fmt.Sprintf(":%d", cfg.App.HTTPPort)
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	if err := brokerClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Intel manager stopped gracefully")
}

// loadRoster resolves the tracked-brand roster: inline config wins, then a
// roster document on disk, then the built-in default.
func loadRoster(cfg *config.Config) ([]models.BrandDefinition, error) {
	if len(cfg.Intel.Brands) > 0 {
		roster := make([]models.BrandDefinition, 0, len(cfg.Intel.Brands))
		for _, b := range cfg.Intel.Brands {
			roster = append(roster, models.BrandDefinition{
				Name:     b.Name,
				Keywords: b.Keywords,
				Subject:  b.Subject,
			})
		}
		return roster, nil
	}

	if cfg.Intel.RosterPath != "" {
		data, err := os.ReadFile(cfg.Intel.RosterPath)
		if err != nil {
			return nil, fmt.Errorf("read roster document: %w", err)
		}
		return validation.ValidateRosterDocument(data)
	}

	return brand.DefaultRoster(), nil
}

// reportHandler serves the latest competitive report. Cache hit is the fast
// path; on a miss the pipeline runs synchronously and the result is cached.
func reportHandler(p *pipeline.Pipeline, cache *repository.ReportCache, runs *repository.RunRepository, obs *observability.Observability, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()

		if r.URL.Query().Get("refresh") != "true" {
			if report, found, err := cache.Latest(ctx); err == nil && found {
				writeJSON(w, http.StatusOK, report)
				return
			}
		}

		started := time.Now()
		report, err := p.Run(ctx)
		if err != nil {
			obs.RecordRun(ctx, "error")
			obs.RecordRunDuration(ctx, time.Since(started), "error")
			log.Error("on-demand report run failed", map[string]interface{}{
				"error": err.Error(),
			})
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "report generation failed",
			})
			return
		}
		obs.RecordRun(ctx, "success")
		obs.RecordRunDuration(ctx, time.Since(started), "success")

		if err := cache.Store(ctx, report); err != nil {
			log.Warn("failed to cache on-demand report", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
		}
		if err := runs.SaveRun(ctx, report, started, time.Now()); err != nil {
			log.Warn("failed to persist on-demand run", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// runsHandler lists recent pipeline runs for the ops view.
func runsHandler(runs *repository.RunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		recent, err := runs.ListRecent(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to list runs",
			})
			return
		}
		if recent == nil {
			recent = []models.PipelineRun{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"runs": recent})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
