package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"minebench/internal/adapters/source/csvfile"
	"minebench/internal/adapters/source/mongodb"
	"minebench/internal/adapters/source/sqlite"
	"minebench/internal/adapters/source/supabase"
	"minebench/internal/config"
	"minebench/internal/core/ports"
)

// buildSource opens the configured benchmark store. The returned func
// releases it.
func buildSource(cfg config.SourceConfig) (ports.BenchmarkSource, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case "supabase":
		src := supabase.NewSource(cfg.SupabaseURL, cfg.SupabaseKey,
			supabase.WithTable(cfg.Table),
			supabase.WithPageSize(cfg.PageSize),
			supabase.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
		return src, noop, nil

	case "sqlite":
		src, err := sqlite.Open(cfg.SQLitePath, cfg.Table)
		if err != nil {
			return nil, noop, err
		}
		return src, func() {
			if err := src.Close(); err != nil {
				slog.Warn("closing sqlite source", "error", err)
			}
		}, nil

	case "mongo":
		src, err := mongodb.NewSource(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, noop, err
		}
		return src, func() {
			if err := src.Close(context.Background()); err != nil {
				slog.Warn("closing mongo source", "error", err)
			}
		}, nil

	case "csv":
		return csvfile.NewSource(cfg.CSVPath), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown source type %q", cfg.Type)
}
