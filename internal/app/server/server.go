package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/notices"
	"hrpay/internal/domain/notifications"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/reports"
	"hrpay/internal/domain/retention"
	"hrpay/internal/platform/cache"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/crypto"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/email"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/transport/http/api"
	attendancehandler "hrpay/internal/transport/http/handlers/attendance"
	audithandler "hrpay/internal/transport/http/handlers/audit"
	authhandler "hrpay/internal/transport/http/handlers/auth"
	corehandler "hrpay/internal/transport/http/handlers/core"
	leavehandler "hrpay/internal/transport/http/handlers/leave"
	noticeshandler "hrpay/internal/transport/http/handlers/notices"
	notificationshandler "hrpay/internal/transport/http/handlers/notifications"
	payrollhandler "hrpay/internal/transport/http/handlers/payroll"
	reportshandler "hrpay/internal/transport/http/handlers/reports"
	retentionhandler "hrpay/internal/transport/http/handlers/retention"
	"hrpay/internal/transport/http/middleware"
)

const rateWindow = time.Minute

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Cache   *cache.Client
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	Router  http.Handler
}

// New connects the database and cache, applies migrations and seed data, and
// builds the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		slog.Warn("JWT_SECRET not set, using an ephemeral secret")
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	cacheClient, err := cache.New(ctx, cfg.RedisURL, "hrpay:", cfg.CacheTTL)
	if err != nil {
		slog.Warn("redis unavailable, continuing without cache", "err", err)
		cacheClient = nil
	}

	crypt, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}
	taxTable, err := payroll.LoadTaxTable(cfg.TaxTableFile)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("tax table: %w", err)
	}

	app := &App{
		Config:  cfg,
		DB:      pool,
		Cache:   cacheClient,
		Jobs:    jobs.New(pool),
		Metrics: metrics.New(),
	}

	authSvc := auth.NewService(auth.NewStore(pool), crypt, cacheClient, cfg.JWTSecret, cfg.JWTTTL)
	auditSvc := audit.New(pool)
	policy := auth.NewPolicy()
	idem := middleware.NewIdempotencyStore(pool)

	inbox := notifications.New(notifications.NewStore(pool))
	leaveSvc := leave.NewService(leave.NewStore(pool), email.New(cfg))
	leaveSvc.Inbox = inbox
	attendanceSvc := attendance.NewService(pool, leaveSvc, cfg.WorkdayStart, cfg.Location())
	payrollSvc := payroll.NewService(pool, crypt, cacheClient, taxTable, payroll.OvertimePolicy{
		Threshold:    cfg.OvertimeStart,
		MonthlyHours: cfg.OvertimeMonthlyHours,
		Multiplier:   cfg.OvertimeMultiplier,
	}, cfg.PaymentDay)
	payrollSvc.Inbox = inbox

	if err := app.Jobs.Schedule(cfg.PayrollCron, jobs.JobPayrollScheduled, scheduledPayroll(payrollSvc, app.Metrics, cfg.Location())); err != nil {
		pool.Close()
		return nil, fmt.Errorf("PAYROLL_CRON: %w", err)
	}
	retentionSvc := retention.NewService(pool, retention.Policies(cfg.RetentionDays, cfg.AuditRetentionDays))
	if err := app.Jobs.Schedule(cfg.RetentionCron, jobs.JobRetention, func(ctx context.Context) (any, error) {
		return retentionSvc.Run(ctx, "")
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("RETENTION_CRON: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger(app.Metrics))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, authSvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.With(middleware.Require(auth.CapSystemMetrics, policy)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, rateWindow))
		r.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, rateWindow))

		authHandler := authhandler.NewHandler(authSvc, auditSvc)
		authHandler.RegisterPublic(r)
		authHandler.RegisterRoutes(r)

		corehandler.NewHandler(core.NewService(pool), policy, auditSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc, policy, auditSvc, idem, app.Metrics).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, policy, auditSvc).RegisterRoutes(r)
		noticeshandler.NewHandler(notices.New(notices.NewStore(pool)), policy, auditSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(inbox).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, policy, auditSvc, app.Jobs, idem, app.Metrics).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, policy).RegisterRoutes(r)
		reportshandler.NewHandler(reports.NewService(reports.NewStore(pool), cfg.Location()), policy).RegisterRoutes(r)
		retentionhandler.NewHandler(retentionSvc, policy, app.Jobs, auditSvc).RegisterRoutes(r)
	})

	app.Router = router
	return app, nil
}

// scheduledPayroll runs the batch for the current month in the configured timezone.
func scheduledPayroll(svc *payroll.Service, collector *metrics.Collector, loc *time.Location) jobs.RunFunc {
	return func(ctx context.Context) (any, error) {
		now := time.Now().In(loc)
		result, err := svc.Run(ctx, now.Year(), int(now.Month()))
		collector.PayrollRun(result.Inserted, result.Skipped, err)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		slog.Warn("cache close failed", "err", err)
	}
	a.DB.Close()
}

// Run serves until SIGINT or SIGTERM and then drains in-flight requests.
func Run() error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	app.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("hrpay server listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
