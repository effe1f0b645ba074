// cmd/worker-manager/main.go
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

	"admission-workers/internal/catalog"
	"admission-workers/internal/common/camunda"
	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/observability"
	"admission-workers/pkg/registry"

	// Admission Workers (2)
	cms "admission-workers/internal/workers/admission/calculate-match-score"
	rsm "admission-workers/internal/workers/admission/rank-school-matches"

	// Data Access Workers (1)
	qsc "admission-workers/internal/workers/data-access/query-school-catalog"

	// Document Workers (3)
	edd "admission-workers/internal/workers/documents/extract-document-data"
	lrd "admission-workers/internal/workers/documents/list-required-documents"
	vdd "admission-workers/internal/workers/documents/validate-document-data"

	// Application Workers (3)
	car "admission-workers/internal/workers/application/create-application-record"
	gst "admission-workers/internal/workers/application/generate-status-timeline"
	ssn "admission-workers/internal/workers/application/send-status-notification"
)

const activityRegistryPath = "configs/activities.json"

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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if endpoint := os.Getenv("JAEGER_COLLECTOR_ENDPOINT"); endpoint != "" {
		obs.EnableTracing(cfg.App.Name, endpoint)
	}

	ctx := context.Background()

	// --- Load Activity Registry ---
	activities, err := registry.LoadRegistry(activityRegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	for taskType, wcfg := range cfg.Workers {
		if !wcfg.Enabled {
			continue
		}
		if _, err := activities.ByTaskType(taskType); err != nil {
			zapLog.Warn("enabled worker has no registry entry", zap.String("taskType", taskType))
		}
	}
	zapLog.Info("Activity registry loaded", zap.Strings("taskTypes", activities.TaskTypes()))

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
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

	// --- Load School Catalog ---
	schoolCatalog, err := catalog.Load(ctx, cfg.Catalog, pg, esClient, log)
	if err != nil {
		zapLog.Fatal("school catalog load failed", zap.Error(err))
	}
	zapLog.Info("School catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("schools", schoolCatalog.Len()),
	)

	var workers []*camunda.CamundaWorker
	register := func(taskType string, handle camunda.JobHandlerFunc) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		workers = append(workers, camunda.NewWorker(zeebeClient, taskType, wcfg, handle, log))
	}

	workerTimeout := func(taskType string, fallback time.Duration) time.Duration {
		if ms := cfg.Workers[taskType].Timeout; ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		return fallback
	}

	// --- 1. Admission Workers (2) ---
	if cfg.Workers[cms.TaskType].Enabled {
		handler := cms.NewHandler(
			&cms.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  workerTimeout(cms.TaskType, 30*time.Second),
			},
			pg.DB, redis.Client, log,
		)
		register(cms.TaskType, handler.Handle)
	}

	if cfg.Workers[rsm.TaskType].Enabled {
		handler := rsm.NewHandler(
			&rsm.Config{
				Timeout: workerTimeout(rsm.TaskType, 30*time.Second),
			},
			schoolCatalog, log,
		)
		register(rsm.TaskType, handler.Handle)
	}

	// --- 2. Data Access Workers (1) ---
	if cfg.Workers[qsc.TaskType].Enabled {
		handler := qsc.NewHandler(
			&qsc.Config{
				Timeout: workerTimeout(qsc.TaskType, 15*time.Second),
			},
			esClient.Client, log,
		)
		register(qsc.TaskType, handler.Handle)
	}

	// --- 3. Document Workers (3) ---
	if cfg.Workers[edd.TaskType].Enabled {
		handler := edd.NewHandler(
			&edd.Config{
				Mode:           cfg.Extraction.Mode,
				BackendURL:     cfg.Extraction.BackendURL,
				SimulatedDelay: time.Duration(cfg.Extraction.SimulatedDelay) * time.Millisecond,
				Timeout:        time.Duration(cfg.Extraction.TimeoutMs) * time.Millisecond,
			},
			log,
		)
		register(edd.TaskType, handler.Handle)
	}

	if cfg.Workers[vdd.TaskType].Enabled {
		handler := vdd.NewHandler(
			&vdd.Config{
				Timeout: workerTimeout(vdd.TaskType, 10*time.Second),
			},
			log,
		)
		register(vdd.TaskType, handler.Handle)
	}

	if cfg.Workers[lrd.TaskType].Enabled {
		handler := lrd.NewHandler(lrd.LoadConfig(), log)
		register(lrd.TaskType, handler.Handle)
	}

	// --- 4. Application Workers (3) ---
	if cfg.Workers[car.TaskType].Enabled {
		handler := car.NewHandler(
			&car.Config{
				Timeout: workerTimeout(car.TaskType, 10*time.Second),
			},
			pg.DB, log,
		)
		register(car.TaskType, handler.Handle)
	}

	if cfg.Workers[gst.TaskType].Enabled {
		handler := gst.NewHandler(
			&gst.Config{
				Timeout: workerTimeout(gst.TaskType, 10*time.Second),
			},
			log,
		)
		register(gst.TaskType, handler.Handle)
	}

	if cfg.Workers[ssn.TaskType].Enabled {
		handler, err := ssn.NewHandler(
			&ssn.Config{
				EmailEnabled: cfg.Notifications.Enabled && cfg.Notifications.EmailEnabled,
				SMSEnabled:   cfg.Notifications.Enabled && cfg.Notifications.SMSEnabled,
				FromEmail:    cfg.Notifications.SenderEmail,
				AWSRegion:    cfg.Notifications.AWSRegion,
				Timeout:      workerTimeout(ssn.TaskType, 30*time.Second),
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-status-notification handler", zap.Error(err))
		}
		register(ssn.TaskType, handler.Handle)
	}

	zapLog.Info("All workers registered successfully", zap.Int("workers", len(workers)))

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
	for _, w := range workers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
