package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-landing-page/config"
	v1 "go-landing-page/internal/delivery/http/v1"
	"go-landing-page/internal/domain"
	"go-landing-page/internal/repository/postgres"
	"go-landing-page/internal/siteconfig"
	"go-landing-page/internal/usecase"
	"go-landing-page/internal/view"
	"go-landing-page/pkg/audit"
	"go-landing-page/pkg/database"
	"go-landing-page/pkg/email"
	"go-landing-page/pkg/formclient"
	"go-landing-page/pkg/logger"
	"go-landing-page/pkg/redis"
	"go-landing-page/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Init(cfg.ServiceName, level)
	logger.Log.Info("Starting landing page", "port", cfg.Port, "config", cfg.SiteConfigURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Tracing
	shutdownTracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		logger.Log.Error("Failed to init tracing", "error", err)
		os.Exit(1)
	}

	auditLog := audit.New(cfg.ServiceName, cfg.Environment)
	defer func() { _ = auditLog.Sync() }()

	// 4. Site shell: one background load of the configuration document
	tracedClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	site := usecase.NewSite(siteconfig.NewLoader(tracedClient, cfg.SiteConfigTimeout), cfg.SiteConfigURL)
	site.Start(ctx)

	// 5. Form sessions
	forms := usecase.NewFormSessions(formclient.New(tracedClient), cfg.FormSessionTTL, cfg.SubmitTimeout,
		usecase.WithMaxSessions(cfg.MaxFormSessions))
	go forms.Run(ctx, time.Minute)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Log.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	deps := v1.RouterDeps{
		Site:     site,
		Forms:    forms,
		Binder:   view.NewBinder(view.PolicyFor(cfg.SanitizeMarkup)),
		Renderer: renderer,
		Audit:    auditLog,
		Config:   cfg,
	}

	checks := map[string]usecase.HealthCheck{}

	// 6. Rate limit counter (Redis when configured, memory otherwise)
	if cfg.UpstashRedisURL != "" {
		rdb, err := redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting in memory", "error", err)
		} else {
			defer rdb.Close()
			deps.Counter = redis.NewWindowCounter(rdb)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// 7. Submission relay
	if cfg.RelayEnabled {
		var repo domain.SubmissionRepository
		if cfg.DBUrl != "" {
			dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
			if err != nil {
				logger.Log.Error("Failed to connect to database", "error", err)
				os.Exit(1)
			}
			defer dbPool.Close()
			if err := postgres.EnsureSchema(ctx, dbPool); err != nil {
				logger.Log.Error("Failed to prepare submission archive", "error", err)
				os.Exit(1)
			}
			repo = postgres.NewSubmissionRepository(dbPool)
			checks["database"] = dbPool.Ping
		}

		emailService := email.NewEmailService(newMailTransport(ctx, cfg), cfg.OwnerEmail)
		if !emailService.IsConfigured() {
			logger.Log.Warn("Email service not fully configured - contact relay will answer 503")
		}
		deps.ContactUC = usecase.NewContactUsecase(emailService, repo, auditLog)
	}

	deps.Health = usecase.NewHealthUsecase(site, forms, checks)
	router := v1.NewRouter(deps)

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, "landing-page"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	forms.CloseAll()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Log.Warn("Tracing shutdown failed", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newMailTransport picks SES or SMTP per MAIL_PROVIDER; nil means unconfigured
func newMailTransport(ctx context.Context, cfg *config.Config) email.Transport {
	if cfg.SenderEmail == "" {
		return nil
	}

	switch cfg.MailProvider {
	case "smtp":
		t := email.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail)
		if !t.IsConfigured() {
			return nil
		}
		return t
	default:
		t, err := email.NewSESTransport(ctx, cfg.AWSRegion, cfg.SenderEmail)
		if err != nil {
			logger.Log.Error("Failed to init SES", "error", err)
			return nil
		}
		return t
	}
}
