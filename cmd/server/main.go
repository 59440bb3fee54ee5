package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"timetrack/internal/config"
	"timetrack/internal/db"
	"timetrack/internal/domain/advance"
	"timetrack/internal/domain/audit"
	"timetrack/internal/domain/employee"
	"timetrack/internal/domain/timesheet"
	authhandler "timetrack/internal/transport/http/handlers/auth"
	employeehandler "timetrack/internal/transport/http/handlers/employee"
	timesheethandler "timetrack/internal/transport/http/handlers/timesheet"
	"timetrack/internal/transport/http/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	employeeStore := employee.NewStore(pool)
	advanceStore := advance.NewStore(pool)
	timesheetStore := timesheet.NewStore(pool)
	auditSvc := audit.New(pool)
	calendar := timesheet.HolidayCalendar(cfg.Holidays())
	timesheetSvc := timesheet.NewService(timesheetStore, employeeStore, calendar)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.WorkflowRateLimit(cfg.RateLimitPerMinute, time.Minute))

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

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(pool, cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore, advanceStore, timesheetSvc).RegisterRoutes(r)
		timesheethandler.NewHandler(timesheetSvc, employeeStore, auditSvc).RegisterRoutes(r)
	})

	slog.Info("timetrack server listening", "addr", cfg.Addr, "environment", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
