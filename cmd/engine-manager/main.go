// cmd/engine-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonaws "riskrec-engine/internal/common/aws"
	"riskrec-engine/internal/common/camunda"
	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/common/database"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/common/observability"
	"riskrec-engine/internal/engine/orchestrator"
	"riskrec-engine/internal/providers/candidates"
	"riskrec-engine/internal/providers/events"
	sp "riskrec-engine/internal/providers/signal"

	et "riskrec-engine/internal/workers/recommendation/evaluate-thresholds"
	gr "riskrec-engine/internal/workers/recommendation/generate-recommendations"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting engine manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	store := config.NewStore(cfg)

	obs := observability.New("engine-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClient(cfg.Zeebe.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
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

	// --- Event Sinks ---
	var sinks []events.Sink
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		sinks = append(sinks, events.NewSNSSink(snsClient, cfg.Integrations.AWS.SNS.TopicARN, log))
	}
	if cfg.Integrations.RedisStream.Enabled {
		sinks = append(sinks, events.NewRedisStreamSink(
			redis.Client,
			cfg.Integrations.RedisStream.Stream,
			cfg.Integrations.RedisStream.MaxLen,
			log,
		))
	}

	var sink orchestrator.EventSink
	if len(sinks) > 0 {
		sink = events.NewMultiSink(sinks...)
	}

	// --- Providers & Engine ---
	signalProvider := sp.New(pg.DB, redis.Client, log)
	candidateProvider := candidates.New(esClient, cfg.Database.Elasticsearch.Index, log)
	outcomeStore := events.NewOutcomeStore(pg.DB)
	engine := orchestrator.New(store, sink, log)

	zapLog.Info("Engine initialized")

	// --- Register Workers ---
	var workers []*camunda.Worker
	if cfg.Workers[gr.TaskType].Enabled {
		grCfg := gr.LoadConfig()
		if t := cfg.Workers[gr.TaskType].Timeout; t > 0 {
			grCfg.Timeout = time.Duration(t) * time.Millisecond
		}
		handler := gr.NewHandler(grCfg, store, signalProvider, candidateProvider, engine, log)
		w := camunda.NewWorker(zeebeClient, gr.TaskType, cfg.Workers[gr.TaskType].MaxJobsActive, handler, zapLog)
		workers = append(workers, w)
	}

	if cfg.Workers[et.TaskType].Enabled {
		etCfg := et.LoadConfig()
		if t := cfg.Workers[et.TaskType].Timeout; t > 0 {
			etCfg.Timeout = time.Duration(t) * time.Millisecond
		}
		handler := et.NewHandler(etCfg, store, outcomeStore, log)
		w := camunda.NewWorker(zeebeClient, et.TaskType, cfg.Workers[et.TaskType].MaxJobsActive, handler, zapLog)
		workers = append(workers, w)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
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
			w.Header().Set("Content-Type", "application/json")
			if err := zeebeClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
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

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Engine manager stopped gracefully")
}
