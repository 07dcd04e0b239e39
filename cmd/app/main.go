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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	_ "minebench/docs"
	httpapi "minebench/internal/adapters/http"
	"minebench/internal/adapters/metrics"
	"minebench/internal/adapters/release/github"
	"minebench/internal/adapters/repository/memory"
	"minebench/internal/config"
	"minebench/internal/core/domain"
	"minebench/internal/core/services"
)

// Package main MineBench benchmark aggregation server.
//
// @title MineBench Benchmark Aggregation API
// @version 1.0
// @description Normalizes, deduplicates and ranks mining hardware benchmark runs.
//
// @BasePath /
func main() {

	err := godotenv.Load(".env")
	if err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.SetDefault(config.NewLogger(cfg.Log, os.Stdout))
	gin.SetMode(cfg.Server.GinMode)

	source, closeSource, err := buildSource(cfg.Source)
	if err != nil {
		slog.Error("failed to initialize benchmark source", "type", cfg.Source.Type, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	m := metrics.NewPrometheusMetrics()
	snapshots := memory.NewSnapshotRepository()

	missing := domain.MissingExcluded
	if cfg.Pipeline.MissingAsZero {
		missing = domain.MissingAsZero
	}
	benchmarkSvc := services.NewBenchmarkService(source, snapshots, m, services.Options{
		SourceName:  cfg.Source.Type,
		Strict:      cfg.Pipeline.Strict,
		Missing:     missing,
		RecentTests: cfg.Pipeline.RecentTests,
	})

	releases := github.NewClient(
		github.WithBaseURL(cfg.Releases.GitHubURL),
		github.WithToken(cfg.Releases.GitHubToken),
		github.WithRateLimit(rate.Limit(cfg.Releases.RateLimit), cfg.Releases.Burst),
	)
	targets := make([]services.ReleaseTarget, len(cfg.Releases.Targets))
	for i, t := range cfg.Releases.Targets {
		targets[i] = services.ReleaseTarget{Product: t.Product, Repository: t.Repository}
	}
	downloadSvc := services.NewDownloadService(releases, targets, cfg.Releases.Extensions, m)

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.Source.Timeout)
	if snap, _, err := benchmarkSvc.Refresh(warmCtx, domain.DefaultQuery()); err != nil {
		slog.Warn("initial dashboard refresh failed", "error", err)
	} else {
		slog.Info("dashboard snapshot ready", "rows", snap.Dashboard.Total, "no_data", snap.Dashboard.NoData)
	}
	cancelWarm()

	r := gin.New()
	r.Use(gin.Recovery())
	httpapi.RegisterRoutes(r, benchmarkSvc, downloadSvc, m)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting HTTP server", "address", srv.Addr, "source", cfg.Source.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start HTTP server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}
