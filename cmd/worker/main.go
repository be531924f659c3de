package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"helpcenter/internal/config"
	pgRepo "helpcenter/internal/infra/adapter/persistence/postgres"
	"helpcenter/internal/infra/db"
	workerPkg "helpcenter/internal/infra/worker"
	"helpcenter/internal/observability/logging"
	"helpcenter/internal/observability/metrics"
	"helpcenter/internal/repository"
	"helpcenter/internal/resilience/retry"
	seoUC "helpcenter/internal/usecase/seo"
)

const (
	jobSEOExport    = "seo_export"
	jobCatalogStats = "catalog_stats"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	workerMetrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("seo_schedule", cfg.SEOSchedule),
		slog.String("stats_schedule", cfg.StatsSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("health_port", cfg.HealthPort),
		slog.Int("metrics_port", cfg.MetricsPort))

	site, err := config.LoadSite()
	if err != nil {
		logger.Error("failed to load site configuration", slog.Any("error", err))
		os.Exit(1)
	}
	exportDir := os.Getenv("SEO_EXPORT_DIR")
	if exportDir == "" {
		exportDir = site.SEO.ExportDir
	}

	articles := pgRepo.NewArticleRepo(database)
	seoSvc := &seoUC.Service{
		Articles:   articles,
		Categories: pgRepo.NewCategoryRepo(database),
		Site: seoUC.Site{
			Name:        site.Site.Name,
			BaseURL:     site.Site.BaseURL,
			Language:    site.Site.Language,
			Description: site.Site.Description,
			FeedItems:   site.SEO.FeedItems,
		},
	}

	jobs := workerPkg.NewJobs(logger, workerMetrics, cfg.JobTimeout)

	startMetricsServer(ctx, logger, cfg.MetricsPort)

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger, jobs)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	exportJob := func(ctx context.Context) error {
		res, err := seoSvc.Export(ctx, exportDir)
		if err != nil {
			return err
		}
		logger.Info("seo documents written",
			slog.String("sitemap", res.Sitemap),
			slog.String("feed", res.Feed))
		return nil
	}
	statsJob := func(ctx context.Context) error {
		return refreshCatalogStats(ctx, database, articles)
	}

	c, err := newScheduler(logger, cfg)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	schedule := map[string]struct {
		spec string
		fn   func(context.Context) error
	}{
		jobSEOExport:    {cfg.SEOSchedule, exportJob},
		jobCatalogStats: {cfg.StatsSchedule, statsJob},
	}
	for name, job := range schedule {
		name, job := name, job
		if _, err := c.AddFunc(job.spec, func() { _ = jobs.Run(ctx, name, job.fn) }); err != nil {
			logger.Error("failed to add cron job", slog.String("job", name), slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Publish fresh documents right away instead of waiting for the first tick.
	_ = jobs.Run(ctx, jobSEOExport, exportJob)
	_ = jobs.Run(ctx, jobCatalogStats, statsJob)

	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("export_dir", exportDir))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// wait for running jobs
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// initDatabase opens the pool, retrying while PostgreSQL starts up.
func initDatabase(ctx context.Context, logger *slog.Logger) *sql.DB {
	var database *sql.DB
	err := retry.Do(ctx, retry.DBPolicy(), func() error {
		var err error
		database, err = db.Open(ctx)
		if err != nil {
			logger.Warn("database not reachable yet", slog.Any("error", err))
		}
		return err
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func newScheduler(logger *slog.Logger, cfg *workerPkg.Config) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))
	return cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	), nil
}

// refreshCatalogStats updates the gauges that describe the catalogue and the pool.
func refreshCatalogStats(ctx context.Context, database *sql.DB, articles repository.ArticleRepository) error {
	n, err := articles.Count(ctx, repository.PublishedFilter())
	if err != nil {
		return fmt.Errorf("count published articles: %w", err)
	}
	metrics.PublishedArticles.Set(float64(n))

	stats := database.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	return nil
}
