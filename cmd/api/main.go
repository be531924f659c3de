package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"helpcenter/internal/common/pagination"
	"helpcenter/internal/config"
	pgRepo "helpcenter/internal/infra/adapter/persistence/postgres"
	"helpcenter/internal/infra/content"
	"helpcenter/internal/infra/db"
	"helpcenter/internal/observability/logging"
	"helpcenter/internal/observability/slo"
	"helpcenter/internal/observability/tracing"
	"helpcenter/internal/resilience/retry"
	authservice "helpcenter/internal/service/auth"
	envconfig "helpcenter/pkg/config"

	artUC "helpcenter/internal/usecase/article"
	catUC "helpcenter/internal/usecase/category"
	faqUC "helpcenter/internal/usecase/faq"
	feedbackUC "helpcenter/internal/usecase/feedback"
	"helpcenter/internal/usecase/notify"
	redirectUC "helpcenter/internal/usecase/redirect"
	relatedUC "helpcenter/internal/usecase/related"
	seoUC "helpcenter/internal/usecase/seo"
	tagUC "helpcenter/internal/usecase/tag"

	hhttp "helpcenter/internal/handler/http"
	harticle "helpcenter/internal/handler/http/article"
	hauth "helpcenter/internal/handler/http/auth"
	hcategory "helpcenter/internal/handler/http/category"
	hfaq "helpcenter/internal/handler/http/faq"
	hfeedback "helpcenter/internal/handler/http/feedback"
	"helpcenter/internal/handler/http/middleware"
	hredirect "helpcenter/internal/handler/http/redirect"
	hrelated "helpcenter/internal/handler/http/related"
	"helpcenter/internal/handler/http/requestid"
	hseo "helpcenter/internal/handler/http/seo"
	htag "helpcenter/internal/handler/http/tag"
)

const (
	listenAddr      = ":8080"
	maxBodyBytes    = 1 << 20
	cleanupInterval = time.Minute
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	validateJWTSecret(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	shutdownTracer := tracing.InitProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(traceSampleRatio()))),
	)

	site, err := config.LoadSite()
	if err != nil {
		logger.Error("failed to load site configuration", slog.Any("error", err))
		os.Exit(1)
	}

	notifyService := notify.NewService([]notify.Channel{
		notify.NewSlackChannel(loadSlackConfig(logger)),
	}, envconfig.GetEnvInt("NOTIFY_MAX_CONCURRENT", 10))

	limiters, err := newLimiters()
	if err != nil {
		logger.Error("failed to load rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}
	for _, l := range limiters.all() {
		go l.RunCleanup(ctx, cleanupInterval)
	}

	sloTracker := slo.NewTracker(5 * time.Minute)
	go sloTracker.Run(ctx, 30*time.Second, logger)

	mux := setupRoutes(logger, database, site, notifyService, limiters)
	handler, err := applyMiddleware(logger, mux, sloTracker)
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		logger.Info("server starting",
			slog.String("addr", listenAddr),
			slog.String("version", version()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := notifyService.Shutdown(shutdownCtx); err != nil {
		logger.Warn("notification shutdown incomplete", slog.Any("error", err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// validateJWTSecret refuses to start with a short or well-known signing key.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	lower := strings.ToLower(secret)
	for _, weak := range []string{"secret", "password", "changeme", "default", "admin"} {
		// "secretsecret..." is as guessable as "secret"
		if strings.ReplaceAll(lower, weak, "") == "" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the pool, retrying while PostgreSQL starts up, and applies migrations.
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
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func version() string {
	return envconfig.GetEnvString("VERSION", "dev")
}

func traceSampleRatio() float64 {
	ratio := float64(envconfig.GetEnvInt("TRACE_SAMPLE_PERCENT", 10)) / 100
	if ratio < 0 || ratio > 1 {
		return 0.1
	}
	return ratio
}

// limiters guard the endpoints anonymous clients can write to.
type limiters struct {
	auth     *middleware.RateLimiter
	feedback *middleware.RateLimiter
}

func newLimiters() (*limiters, error) {
	cfg, err := envconfig.LoadRateLimitConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		slog.Warn("rate limiting is DISABLED - not recommended for production")
		return &limiters{}, nil
	}

	// login attempts get a fixed, stricter budget
	authCfg := *cfg
	authCfg.Rate = 5
	authCfg.Per = time.Minute
	authCfg.Burst = 5

	return &limiters{
		auth:     middleware.NewRateLimiter("auth", authCfg),
		feedback: middleware.NewRateLimiter("feedback", *cfg),
	}, nil
}

func (l *limiters) all() []*middleware.RateLimiter {
	var out []*middleware.RateLimiter
	for _, rl := range []*middleware.RateLimiter{l.auth, l.feedback} {
		if rl != nil {
			out = append(out, rl)
		}
	}
	return out
}

// setupRoutes builds the services and registers every route on one mux.
// Admin routes are wrapped in hauth.Authz by each package's Register.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	site *config.SiteConfig,
	notifyService notify.Service,
	rl *limiters,
) *http.ServeMux {
	processor := content.NewProcessor()

	articles := pgRepo.NewArticleRepo(database)
	categories := pgRepo.NewCategoryRepo(database)

	artSvc := &artUC.Service{Repo: articles, Categories: categories, Content: processor, Logger: logger}
	catSvc := &catUC.Service{Repo: categories, Articles: articles}
	tagSvc := &tagUC.Service{Repo: pgRepo.NewTagRepo(database), Articles: articles}
	faqSvc := &faqUC.Service{Repo: pgRepo.NewFAQRepo(database), Categories: categories, Content: processor}
	redirectSvc := &redirectUC.Service{Repo: pgRepo.NewRedirectRepo(database), Logger: logger}
	feedbackSvc := &feedbackUC.Service{
		Repo:     pgRepo.NewFeedbackRepo(database),
		Articles: articles,
		Alerts:   notifyService,
		Content:  processor,
		BaseURL:  site.Site.BaseURL,
		Logger:   logger,
	}
	relatedSvc := &relatedUC.Service{
		Store:  relatedUC.RepoStore{Articles: articles, Categories: categories},
		Clock:  relatedUC.SystemClock{},
		Logger: logger,
	}
	seoSvc := &seoUC.Service{
		Articles:   articles,
		Categories: categories,
		Site: seoUC.Site{
			Name:        site.Site.Name,
			BaseURL:     site.Site.BaseURL,
			Language:    site.Site.Language,
			Description: site.Site.Description,
			FeedItems:   site.SEO.FeedItems,
		},
	}

	authService := authservice.NewAuthService(hauth.NewBasicAuthProvider())

	mux := http.NewServeMux()

	var token http.Handler = hauth.TokenHandler(authService)
	if rl.auth != nil {
		token = rl.auth.Middleware(token)
	}
	mux.Handle("POST /auth/token", token)

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version(), Notify: notifyService})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	harticle.Register(mux, artSvc, tagSvc, pagination.LoadFromEnv(), logger)
	mux.Handle("GET /articles/{id}/related", hrelated.Handler{Svc: relatedSvc, Tags: tagSvc})
	hcategory.Register(mux, catSvc)
	htag.Register(mux, tagSvc)
	hfaq.Register(mux, faqSvc)
	hredirect.Register(mux, redirectSvc)
	hfeedback.Register(mux, feedbackSvc, rl.feedback)
	hseo.Register(mux, seoSvc)

	return mux
}

// applyMiddleware wraps the mux. Outermost first:
// CORS → Request ID → SLO → Tracing → Recovery → Logging → Input validation → Body limit → Metrics → Route naming.
func applyMiddleware(logger *slog.Logger, handler http.Handler, tracker *slo.Tracker) (http.Handler, error) {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		return nil, err
	}
	corsConfig.Logger = logger
	logger.Info("CORS configured",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Int("max_age", corsConfig.MaxAge))

	h := tracing.RouteName(handler)
	h = hhttp.MetricsMiddleware(h)
	h = hhttp.LimitRequestBody(maxBodyBytes)(h)
	h = hhttp.InputValidation(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.Recover(logger)(h)
	h = tracing.Middleware(h)
	h = tracker.Middleware(h)
	h = requestid.Middleware(h)
	h = middleware.CORS(*corsConfig)(h)
	return h, nil
}
