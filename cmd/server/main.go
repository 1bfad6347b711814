package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/gdmrisk/internal/application"
	"github.com/turtacn/gdmrisk/internal/config"
	"github.com/turtacn/gdmrisk/internal/domain/repository"
	"github.com/turtacn/gdmrisk/internal/infrastructure/artifacts"
	"github.com/turtacn/gdmrisk/internal/infrastructure/events"
	"github.com/turtacn/gdmrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/gdmrisk/internal/infrastructure/persistence"
	redisinfra "github.com/turtacn/gdmrisk/internal/infrastructure/persistence/redis"
	"github.com/turtacn/gdmrisk/internal/infrastructure/ratelimit"
	grpchandlers "github.com/turtacn/gdmrisk/internal/interfaces/grpc"
	httpapi "github.com/turtacn/gdmrisk/internal/interfaces/http"
	"github.com/turtacn/gdmrisk/internal/interfaces/http/handlers"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Logger for startup
	startupLogger, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Load config
	cfg, err := config.LoadConfig(os.Getenv("GDM_CONFIG_FILE"), startupLogger)
	if err != nil {
		startupLogger.Fatal(context.Background(), "Failed to load config", err)
	}

	// Initialize logger
	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		startupLogger.Fatal(context.Background(), "Failed to create logger", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal(context.Background(), "Server exited with error", err)
	}
	appLogger.Info(context.Background(), "Server stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger logger.Logger) error {
	// Initialize tracing
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize tracer", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	// Load model artifacts; the service never starts without them.
	store, err := artifacts.Load(ctx, cfg.Artifacts.Dir, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to load model artifacts", err, logger.Fields{"dir": cfg.Artifacts.Dir})
	}

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	metricsAdapter := monitoring.NewMetricsAdapter(metrics)

	var healthChecks []namedCheck

	// Audit history
	var repo repository.AssessmentRepository
	if cfg.Database.Enabled {
		db, err := persistence.NewDBConnection(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "Failed to connect to database", err)
		}
		defer persistence.Close(db)
		repo = persistence.NewAssessmentRepository(db, appLogger)
		healthChecks = append(healthChecks, namedCheck{"database", func(ctx context.Context) error {
			return persistence.Ping(ctx, db)
		}})
	}

	// Assessment events
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka, appLogger)
	}
	defer publisher.Close()

	// Rate limiting
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiterCfg := &ratelimit.Config{Limit: int64(cfg.RateLimit.RequestsPerMinute), Window: time.Minute}
		if cfg.Redis.Enabled {
			client, err := redisinfra.NewRedisConnection(ctx, &cfg.Redis, appLogger)
			if err != nil {
				appLogger.Fatal(ctx, "Failed to connect to Redis", err)
			}
			defer client.Close()
			limiter, err = ratelimit.NewRedisRateLimiter(client, limiterCfg, true, appLogger)
			if err != nil {
				appLogger.Fatal(ctx, "Failed to create rate limiter", err)
			}
			healthChecks = append(healthChecks, namedCheck{"redis", func(ctx context.Context) error {
				return pingRedis(ctx, client)
			}})
		} else {
			limiter = ratelimit.NewLocalRateLimiter(limiterCfg)
		}
		defer limiter.Close()
	}

	assessmentSvc, err := application.NewAssessmentService(store, repo, publisher, metricsAdapter, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to create assessment service", err)
	}

	var grpcServer *grpchandlers.HealthServer
	if cfg.Server.GRPCPort > 0 {
		grpcServer = grpchandlers.NewHealthServer(appLogger)
	}

	// Artifact drift detection
	var watcher *artifacts.Watcher
	var stale handlers.StaleChecker
	if cfg.Artifacts.Watch {
		watcher, err = artifacts.NewWatcher(store, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "Failed to watch artifacts", err)
		}
		defer watcher.Close()
		if grpcServer != nil {
			watcher.OnStale(func(string) { grpcServer.SetServing(false) })
		}
		stale = watcher
	}

	healthHandler := handlers.NewHealthHandler(stale, appLogger)
	for _, c := range healthChecks {
		healthHandler.WithCheck(c.name, c.check)
	}

	router := httpapi.NewRouter(cfg, appLogger, metrics, prometheus.DefaultGatherer, limiter,
		healthHandler, handlers.NewAssessmentHandler(assessmentSvc))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(router.Start)
	if grpcServer != nil {
		g.Go(func() error { return grpcServer.ListenAndServe(cfg.Server.GRPCAddr()) })
	}
	if watcher != nil {
		g.Go(func() error { return watcher.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if grpcServer != nil {
			grpcServer.Stop(shutdownCtx)
		}
		return router.Stop(shutdownCtx)
	})

	appLogger.Info(ctx, "GDM risk service started", logger.Fields{
		"http":     cfg.Server.Addr(),
		"grpc":     cfg.Server.GRPCPort > 0,
		"versions": store.Versions(),
	})
	return g.Wait()
}

type namedCheck struct {
	name  string
	check handlers.CheckFunc
}

func pingRedis(ctx context.Context, client *goredis.Client) error {
	return client.Ping(ctx).Err()
}
