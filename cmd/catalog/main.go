package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"job-catalog/internal/catalog"
	"job-catalog/internal/config"
	"job-catalog/internal/logger"
	"job-catalog/internal/repository"
	"job-catalog/internal/storage/postgres"
	"job-catalog/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("catalog run failed", zap.Error(err))
	}

	log.Info("catalog run complete")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) (err error) {
	log.Info("starting job catalog",
		zap.String("log_level", cfg.LogLevel),
		zap.Strings("operations", cfg.Operations),
		zap.Bool("cache", cfg.CacheEnabled()),
	)

	store, err := postgres.New(cfg.PostgresDSN, postgres.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, log)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	var categories repository.CategoryRepository = store.Categories()
	if cfg.CacheEnabled() {
		cache, cacheErr := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if cacheErr != nil {
			return fmt.Errorf("connect to Redis: %w", cacheErr)
		}
		defer func() { err = multierr.Append(err, cache.Close()) }()

		categories = redis.NewCachedCategories(categories, cache, cfg.CategoryCacheTTL, log)
	}

	runner := catalog.NewRunner(catalog.Repositories{
		Categories:  categories,
		JobPostings: store.JobPostings(),
		Users:       store.Users(),
		Profiles:    store.Profiles(),
	}, os.Stdout, log, cfg.OperationTimeout)

	return runner.Run(ctx, cfg.Operations)
}
