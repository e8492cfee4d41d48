// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"case-triage-workers/internal/archive"
	"case-triage-workers/internal/catalog"
	"case-triage-workers/internal/common/aws"
	"case-triage-workers/internal/common/camunda"
	"case-triage-workers/internal/common/config"
	"case-triage-workers/internal/common/database"
	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/common/observability"
	"case-triage-workers/internal/http/handler"
	"case-triage-workers/internal/http/router"
	"case-triage-workers/internal/notify"
	"case-triage-workers/internal/triage"

	tce "case-triage-workers/internal/workers/triage/triage-case-email"
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
		boot := logger.New("info", "console", "stderr")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting case triage worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	serviceName := cfg.App.Name
	if serviceName == "" {
		serviceName = "case-triage-workers"
	}
	obs, err := observability.New(serviceName)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
	}

	checks := map[string]handler.Check{}

	// --- Backends, only the ones the configuration needs ---
	var db *sql.DB
	if cfg.Triage.Catalog.Source == config.CatalogSourcePostgres {
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
		db = pg.DB
		checks["postgres"] = pg.Ping
		zapLog.Info("PostgreSQL connected successfully")
	}

	var rdb *redis.Client
	if cfg.Triage.Catalog.CacheTTL > 0 {
		rc := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		rdb = rc.Client
		checks["redis"] = rc.Ping
		zapLog.Info("Redis connected successfully")
	}

	var sinks []triage.Sink
	if cfg.Triage.Archive.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		checks["elasticsearch"] = esClient.Ping
		sinks = append(sinks, archive.New(esClient.Client, cfg.Triage.Archive.Index))
		zapLog.Info("Elasticsearch archive enabled", zap.String("index", cfg.Triage.Archive.Index))
	}

	if sink := buildNotifier(ctx, cfg, log, zapLog); sink != nil {
		sinks = append(sinks, sink)
	}

	// --- Catalog ---
	loader, err := catalog.NewLoader(cfg.Triage.Catalog, db, rdb, log)
	if err != nil {
		zapLog.Fatal("catalog loader", zap.Error(err))
	}
	cat, err := catalog.Load(ctx, loader)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	caseTypes, partners := cat.Size()
	zapLog.Info("Catalog loaded",
		zap.String("source", cfg.Triage.Catalog.Source),
		zap.Int("caseTypes", caseTypes),
		zap.Int("partners", partners),
	)
	if uncovered := cat.Uncovered(); len(uncovered) > 0 {
		zapLog.Warn("case types without catalog entry fall back to default responses", zap.Any("caseTypes", uncovered))
	}

	// --- Pipeline ---
	instruction, err := triage.LoadInstruction(cfg.Triage.InstructionFile)
	if err != nil {
		zapLog.Fatal("cleaning instruction", zap.Error(err))
	}
	completer, err := llm.New(cfg.APIs.GenAI)
	if err != nil {
		zapLog.Fatal("text completion provider", zap.Error(err))
	}
	pipeline := triage.NewPipeline(completer, cat, triage.Options{
		AssetLinkBaseURL:    cfg.Triage.AssetLinkBaseURL,
		CleaningInstruction: instruction,
		Sinks:               sinks,
	}, log)

	// --- Zeebe worker ---
	var (
		zeebe     *camunda.Client
		jobWorker worker.JobWorker
	)
	if cfg.Camunda.Enabled && config.IsWorkerEnabled(cfg, tce.TaskType) {
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		checks["zeebe"] = zeebe.HealthCheck

		wcfg := config.GetWorkerConfig(cfg, tce.TaskType)
		h := tce.NewHandler(tce.LoadConfig(wcfg), pipeline, obs, log)
		jobWorker = camunda.StartWorker(zeebe.GetClient(), tce.TaskType, wcfg, h.Handle, log)
	}

	// --- HTTP API, health and metrics ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: router.New(router.RouterConfig{
			Triage: handler.NewTriageHandler(pipeline, obs, log),
			Health: handler.NewHealthHandler(checks),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if jobWorker != nil {
		jobWorker.Close()
		jobWorker.AwaitClose()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping observability", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// buildNotifier returns nil when neither SES nor SNS is enabled.
func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) triage.Sink {
	n := cfg.Triage.Notify
	if !n.SES.Enabled && !n.SNS.Enabled {
		return nil
	}

	var (
		email     notify.EmailSender
		publisher notify.Publisher
	)
	if n.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, n.Region, n.SES.FromEmail)
		if err != nil {
			zapLog.Fatal("ses client", zap.Error(err))
		}
		email = sesClient
	}
	if n.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, n.Region, n.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns client", zap.Error(err))
		}
		publisher = snsClient
	}

	zapLog.Info("Notifications enabled", zap.Bool("ses", n.SES.Enabled), zap.Bool("sns", n.SNS.Enabled))
	return notify.New(email, publisher, log)
}
