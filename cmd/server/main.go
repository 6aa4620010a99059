package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"mesh-demo/internal/api"
	"mesh-demo/internal/config"
	internaldb "mesh-demo/internal/db"
	"mesh-demo/internal/db/repository"
	"mesh-demo/internal/demo"
	"mesh-demo/internal/middleware"
	"mesh-demo/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	// writeDB is a single-connection pool so SQLite writes serialize;
	// readDB fans reads out over its own pool.
	writeDB, readDB, err := internaldb.OpenPair(cfg.MetaDBPath, cfg.ReadPoolSize)
	if err != nil {
		return fmt.Errorf("open metastore: %w", err)
	}
	defer writeDB.Close()
	defer readDB.Close()

	if err := internaldb.RunMigrations(writeDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	repo := repository.NewGraph(writeDB, readDB)
	graphSvc := service.NewGraphService(repo)
	lineageSvc, err := service.NewLineageService(repo, log, cfg.LineageCacheSize)
	if err != nil {
		return fmt.Errorf("lineage service: %w", err)
	}

	if cfg.SeedDemoGraph {
		if err := demo.Seed(ctx, graphSvc, log); err != nil {
			return fmt.Errorf("seed demo graph: %w", err)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Mount("/", api.NewHandler(graphSvc, lineageSvc, log).Routes())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Keep the lineage snapshot warm so interactive queries rarely pay
	// the rebuild.
	sched := cron.New()
	_, err = sched.AddFunc(fmt.Sprintf("@every %s", cfg.SnapshotRefreshEvery), func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := lineageSvc.Refresh(refreshCtx); err != nil {
			log.Warn("snapshot refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule snapshot refresh: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http api listening", "addr", cfg.ListenAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
