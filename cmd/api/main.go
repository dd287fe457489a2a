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

	"github.com/crucial707/dayplan/internal/config"
	"github.com/crucial707/dayplan/internal/db"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/scheduler"
)

func setupLogger(format string) {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

func main() {

	// Load configuration
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		defaults, err := config.LoadPlannerDefaults(path)
		if err != nil {
			slog.Error("planner config", "path", path, "error", err)
			os.Exit(1)
		}
		cfg.Planner = defaults
	}

	// Connect to database FIRST
	opts := db.Options{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		Name:         cfg.DBName,
		User:         cfg.DBUser,
		Password:     cfg.DBPass,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}
	database, err := db.Connect(opts)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	version, err := db.Migrate(opts.URL())
	if err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("schema up to date", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background planning pass
	if cfg.PlanRefreshCron != "off" {
		p := &scheduler.Planner{Users: repo.NewUserRepo(database), Loader: newLoader(database, cfg)}
		go func() {
			if err := p.Run(ctx, cfg.PlanRefreshCron); err != nil {
				slog.Error("scheduler stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	// Start server LAST
	tls := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	slog.Info("starting server", "port", cfg.Port, "tls", tls, "timezone", cfg.Location().String())
	if tls {
		err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
