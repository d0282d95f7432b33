package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actuallystonmai/recipe-predictor/internal/cache"
	"github.com/actuallystonmai/recipe-predictor/internal/config"
	"github.com/actuallystonmai/recipe-predictor/internal/corpus"
	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/actuallystonmai/recipe-predictor/internal/handler"
	"github.com/actuallystonmai/recipe-predictor/internal/logger"
	"github.com/actuallystonmai/recipe-predictor/internal/metrics"
	"github.com/actuallystonmai/recipe-predictor/internal/model"
	"github.com/actuallystonmai/recipe-predictor/internal/repository"
	"github.com/actuallystonmai/recipe-predictor/internal/router"
	"github.com/actuallystonmai/recipe-predictor/internal/service"
	"github.com/actuallystonmai/recipe-predictor/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := ""
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// ------------ PostgreSQL ---------------
	var pool *pgxpool.Pool
	if cfg.CorpusSource == config.CorpusSourcePostgres || command != "" {
		pool, err = connectDB(ctx, cfg, zl)
		if err != nil {
			zl.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		zl.Info("connected to PostgreSQL")
	}

	// ------------ Commands ---------------
	switch command {
	case "":
	case "migrate-up":
		if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
			zl.Fatal("failed to migrate up", zap.Error(err))
		}
		zl.Info("migrations applied")
		return
	case "migrate-down":
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			zl.Fatal("failed to migrate down", zap.Error(err))
		}
		zl.Info("migrations dropped")
		return
	case "seed":
		if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
			zl.Fatal("failed to migrate up", zap.Error(err))
		}
		if err := checkSeed(ctx, pool, cfg.CorpusPath, zl); err != nil {
			zl.Fatal("failed to seed recipes", zap.Error(err))
		}
		return
	default:
		zl.Fatal("unknown command", zap.String("command", command))
	}

	// ------------ Corpus ---------------
	recipes, err := loadRecipes(ctx, cfg, pool)
	if err != nil {
		zl.Fatal("failed to load corpus", zap.Error(err))
	}
	c := corpus.New(recipes)
	if c.Len() == 0 {
		zl.Fatal("failed to load corpus", zap.Error(domain.ErrCorpusEmpty))
	}
	zl.Info("corpus loaded",
		zap.String("source", cfg.CorpusSource),
		zap.Int("recipes", c.Len()),
		zap.Int("dropped", c.Dropped()),
		zap.Int("vocabulary", c.Vocabulary().Len()),
	)

	// ------------ Classifier ---------------
	classifier, err := buildClassifier(cfg)
	if err != nil {
		zl.Fatal("failed to load classifier", zap.Error(err))
	}

	// ------------ Redis ---------------
	var predCache service.PredictionCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zl.Fatal("failed to parse redis url", zap.Error(err))
		}
		client := redis.NewClient(opts)
		defer client.Close()

		rc := cache.NewCache(client, cfg.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		// Cached answers may come from previous model artifacts.
		if err := rc.Clear(ctx); err != nil {
			zl.Warn("failed to clear prediction cache", zap.Error(err))
		}
		predCache = rc
		zl.Info("connected to Redis")
	}

	// ---------------- Server --------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewService(c, classifier, predCache, metrics.New(reg), zl, service.Options{
		Threshold:        cfg.MatchThreshold,
		StrictClassifier: cfg.ClassifierStrict,
		BatchConcurrency: cfg.BatchConcurrency,
		BatchMaxQueries:  cfg.BatchMaxQueries,
	})
	h := handler.NewHandler(svc, zl)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(h, router.Options{
			Logger:         zl,
			Gatherer:       reg,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			MaxBodyBytes:   cfg.MaxBodyBytes,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
}

func connectDB(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := waitForDB(ctx, pool, zl); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, zl *zap.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		zl.Info("waiting for database", zap.Int("attempt", i+1), zap.Int("max_attempts", 30))
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for database: %w", ctx.Err())
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, corpusPath string, zl *zap.Logger) error {
	count, err := repository.New(pool).CountRecipes(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		zl.Info("database already seeded, skipping", zap.Int("recipes", count))
		return nil
	}
	recipes, err := corpus.LoadCSV(corpusPath)
	if err != nil {
		return err
	}
	return seeds.Setup(ctx, pool, recipes, zl)
}

func loadRecipes(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) ([]domain.Recipe, error) {
	if cfg.CorpusSource == config.CorpusSourcePostgres {
		return repository.New(pool).LoadRecipes(ctx)
	}
	return corpus.LoadCSV(cfg.CorpusPath)
}

func buildClassifier(cfg *config.Config) (service.Classifier, error) {
	if cfg.ClassifierURL != "" {
		return model.NewRemoteClient(cfg.ClassifierURL, cfg.ClassifierTimeout), nil
	}
	return model.LoadPipeline(cfg.VectorizerPath, cfg.ModelPath)
}
