// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vendormatch-workers/internal/common/camunda"
	"vendormatch-workers/internal/common/config"
	"vendormatch-workers/internal/common/database"
	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/common/observability"
	"vendormatch-workers/internal/matching"
	"vendormatch-workers/internal/store"

	cmr "vendormatch-workers/internal/workers/matching/create-match-record"
	fvp "vendormatch-workers/internal/workers/matching/fetch-vendor-pool"
	rvm "vendormatch-workers/internal/workers/matching/rank-vendor-matches"
	svm "vendormatch-workers/internal/workers/matching/score-vendor-match"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load Scoring Configuration ---
	scoringCfg, err := matching.LoadScoringConfig(cfg.Matching.ScoringConfigPath)
	if err != nil {
		zapLog.Fatal("scoring config load failed",
			zap.String("path", cfg.Matching.ScoringConfigPath),
			zap.Error(err),
		)
	}

	engine, err := matching.NewEngine(scoringCfg)
	if err != nil {
		zapLog.Fatal("scoring engine init failed", zap.Error(err))
	}
	zapLog.Info("Scoring engine initialized", zap.String("configVersion", engine.ConfigVersion()))

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(camunda.ClientConfig{
			GatewayAddress: cfg.Camunda.BrokerAddress,
			PlaintextConn:  true,
		}, camunda.DefaultRetryConfig(), log)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var db *sql.DB
	err = retryWithBackoff(func() error {
		var err error
		db, err = database.NewPostgresConnection(cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer db.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redisClient *goredis.Client
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedisClient(cfg.Database.Redis)
		return err
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Stores ---
	cacheTTL := time.Duration(cfg.Matching.VendorCacheTTL) * time.Second
	vendorStore := store.NewVendorStore(db, redisClient, log, cacheTTL)
	scoreCache := store.NewScoreCache(redisClient, log, time.Duration(cfg.Matching.ScoreCacheTTL)*time.Second)
	matchStore := store.NewMatchStore(db, log)

	// --- Register Workers ---
	var workers []*camunda.Worker

	if wcfg := cfg.Workers[fvp.TaskType]; wcfg.Enabled {
		handler := fvp.NewHandler(
			&fvp.Config{
				Timeout:    time.Duration(wcfg.Timeout) * time.Millisecond,
				MaxResults: cfg.Matching.MaxResults,
			},
			vendorStore, obs, log,
		)
		workers = append(workers, startWorker(camundaClient, fvp.TaskType, wcfg, handler, log))
	}

	if wcfg := cfg.Workers[svm.TaskType]; wcfg.Enabled {
		handler := svm.NewHandler(
			&svm.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			engine, vendorStore, scoreCache, obs, log,
		)
		workers = append(workers, startWorker(camundaClient, svm.TaskType, wcfg, handler, log))
	}

	if wcfg := cfg.Workers[rvm.TaskType]; wcfg.Enabled {
		handler := rvm.NewHandler(
			&rvm.Config{
				Timeout:    time.Duration(wcfg.Timeout) * time.Millisecond,
				MaxResults: cfg.Matching.MaxResults,
			},
			engine, obs, log,
		)
		workers = append(workers, startWorker(camundaClient, rvm.TaskType, wcfg, handler, log))
	}

	if wcfg := cfg.Workers[cmr.TaskType]; wcfg.Enabled {
		handler := cmr.NewHandler(
			&cmr.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			matchStore, obs, log,
		)
		workers = append(workers, startWorker(camundaClient, cmr.TaskType, wcfg, handler, log))
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				status := "healthy"
				code := http.StatusOK
				if err := database.PostgresHealthCheck(r.Context(), db); err != nil {
					status = "degraded"
					code = http.StatusServiceUnavailable
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(code)
				json.NewEncoder(w).Encode(map[string]string{
					"status": status,
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "ready",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	if err := camundaClient.ExecuteWithRetry(ctx, "topology", camundaClient.HealthCheck); err != nil {
		zapLog.Warn("Zeebe topology check failed", zap.Error(err))
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log logger.Logger) *camunda.Worker {
	opts := camunda.DefaultWorkerOptions()
	if wcfg.MaxJobsActive > 0 {
		opts.MaxJobsActive = wcfg.MaxJobsActive
	}
	if wcfg.Timeout > 0 {
		opts.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
	}

	w := camunda.NewWorker(client, taskType, handler, opts, log)
	w.Start()
	return w
}
