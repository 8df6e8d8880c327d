package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/handlers"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/outbox"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/platform/config"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/repositories/database/pgsql"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/repositories/memory"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/pkg/database"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	}

	ctx := context.Background()

	repos, pool, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(pool)

	redisClient := setupRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var rateLimiter *limiter.Limiter
	if cfg.RateLimit != "" {
		rateLimiter, err = middleware.NewRateLimiter(cfg.RateLimit, redisClient)
		if err != nil {
			logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	dispatcher := outbox.NewDispatcher(setupPublisher(cfg, logger), 10*time.Second)
	serviceContainer := services.NewServiceContainer(cfg, repos, dispatcher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	// Pending notifications are flushed after the last request has finished.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("Failed to drain outbox", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}

// setupRepositories returns the configured store. The pool is nil for the memory driver.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, *pgxpool.Pool, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		store.SeedChart(cfg.Accounts)
		logger.Warn("Using in-memory store; all data is lost on restart")
		return store.Provider(), nil, nil
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.Options{
		MaxConns:         cfg.DBMaxConns,
		StatementTimeout: cfg.DBStatementTimeout,
	})
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if cfg.RunMigrations {
		if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	return pgsql.NewRepositoryProvider(pool), pool, nil
}

// setupRedis connects the shared rate limit store. Without REDIS_URL, or when Redis
// is unreachable, the limiter falls back to process memory.
func setupRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("Invalid REDIS_URL, using in-memory rate limiting", slog.String("error", err.Error()))
		return nil
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-memory rate limiting", slog.String("error", err.Error()))
		_ = client.Close()
		return nil
	}
	logger.Info("Connected to Redis for rate limiting")
	return client
}

// setupPublisher prefers RabbitMQ and falls back to logging effects.
func setupPublisher(cfg *config.Config, logger *slog.Logger) outbox.Publisher {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, effects will only be logged")
		return outbox.LogPublisher{}
	}
	publisher, err := outbox.NewAMQPPublisher(cfg.AMQPURL, cfg.OutboxExchange)
	if err != nil {
		logger.Warn("Failed to connect to RabbitMQ, effects will only be logged", slog.String("error", err.Error()))
		return outbox.LogPublisher{}
	}
	logger.Info("Publishing effects to RabbitMQ", slog.String("exchange", cfg.OutboxExchange))
	return publisher
}
