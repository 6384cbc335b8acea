package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/user/embed-rewriter/internal/export"
	"github.com/user/embed-rewriter/internal/repository"
	"github.com/user/embed-rewriter/internal/storage/postgres"
	redis_storage "github.com/user/embed-rewriter/internal/storage/redis"
	"github.com/user/embed-rewriter/internal/storage/sqlite"
	"github.com/user/embed-rewriter/internal/usecase"
	"github.com/user/embed-rewriter/pkg/config"
	"github.com/user/embed-rewriter/pkg/logger"
	"github.com/user/embed-rewriter/pkg/metrics"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Compute and log rewrites without persisting anything")
	exportCSV := flag.Bool("export", false, "Write the rewrite log to a CSV file in the uploads directory")
	clearCache := flag.Bool("clear-cache", false, "Delete oEmbed cache metadata for every scanned post")
	flag.Parse()

	// --- Configuration ---
	godotenv.Load()
	cfg := config.Load()

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()

	ctx := context.Background()

	// --- Content store ---
	var (
		siteRepo repository.SiteRepository
		postRepo repository.PostRepository
		metaRepo repository.MetaRepository
	)
	switch cfg.StorageDriver {
	case "postgres":
		pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		dbpool, err := pgxpool.New(ctx, pgConnString)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()
		slog.Info("PostgreSQL connection pool established")

		siteRepo = postgres.NewSiteRepo(dbpool)
		postRepo = postgres.NewPostRepo(dbpool)
		metaRepo = postgres.NewMetaRepo(dbpool)
	case "sqlite":
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			slog.Error("Unable to open database", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("SQLite database opened", "path", cfg.SQLitePath)

		siteRepo, postRepo, metaRepo = store, store, store
	default:
		slog.Error("Unknown storage driver", "driver", cfg.StorageDriver)
		os.Exit(1)
	}

	// --- Render cache ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	renderCache := redis_storage.NewRenderCacheRepo(rdb)

	// --- Rewrite pass ---
	rewriter := usecase.NewRewriter(siteRepo, postRepo, metaRepo, renderCache)
	rewrites, stats, err := rewriter.Run(ctx, usecase.Options{
		DryRun:     *dryRun,
		ClearCache: *clearCache,
	})
	if err != nil {
		slog.Error("Rewrite pass failed", "error", err)
		os.Exit(1)
	}

	if *exportCSV {
		path, err := export.WriteCSV(cfg.UploadsDir, rewrites, time.Now())
		if err != nil {
			slog.Error("Failed to export rewrite log", "error", err)
			os.Exit(1)
		}
		slog.Info("Rewrite log exported", "path", path, "rows", len(rewrites))
	}

	slog.Info("Done",
		"sites", stats.SitesProcessed,
		"posts_scanned", stats.PostsScanned,
		"urls_rewritten", len(rewrites),
		"meta_deleted", stats.MetaDeleted,
		"dry_run", *dryRun,
	)
}
