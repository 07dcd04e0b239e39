package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
	"minebench/internal/core/ports"
)

// DashboardViewName keys the dashboard in the snapshot repository.
const DashboardViewName = "dashboard"

// DefaultRecordsLimit is the row cap of the lightweight records listing.
const DefaultRecordsLimit = 50

// Options tunes the pipeline for a deployment.
type Options struct {
	// SourceName labels metrics and logs, e.g. "supabase".
	SourceName string
	// Strict drops rows carrying columns outside the known schema.
	Strict bool
	// Missing selects how null temperature/power enter per-device aggregates.
	Missing domain.MissingPolicy
	// RecentTests is the length of the leaderboard's recent list.
	RecentTests int
}

// BenchmarkServiceImpl is the default implementation of BenchmarkService.
type BenchmarkServiceImpl struct {
	source    ports.BenchmarkSource
	snapshots ports.SnapshotRepository
	metrics   ports.Metrics
	opts      Options
	log       *slog.Logger

	generation atomic.Uint64
}

// NewBenchmarkService constructs a new BenchmarkServiceImpl. metrics may be nil.
func NewBenchmarkService(source ports.BenchmarkSource, snapshots ports.SnapshotRepository, metrics ports.Metrics, opts Options) *BenchmarkServiceImpl {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if opts.RecentTests <= 0 {
		opts.RecentTests = domain.DefaultRecentTests
	}
	if opts.SourceName == "" {
		opts.SourceName = "benchmarks"
	}
	return &BenchmarkServiceImpl{
		source:    source,
		snapshots: snapshots,
		metrics:   metrics,
		opts:      opts,
		log:       slog.Default().With("component", "benchmark_service", "source", opts.SourceName),
	}
}

// fetch runs one fetch-and-normalize cycle. The returned slice is owned by
// the caller.
func (s *BenchmarkServiceImpl) fetch(ctx context.Context, limit int) ([]domain.BenchmarkRecord, error) {
	raw, err := s.source.Fetch(ctx, limit)
	if err != nil {
		s.metrics.RecordSourceFailure(s.opts.SourceName)
		s.log.Error("benchmark fetch failed", "error", err)
		if errors.Is(err, coreerrors.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}

	records, report := domain.Normalize(raw, domain.NormalizeOptions{Strict: s.opts.Strict})
	if n := len(report.Dropped); n > 0 {
		s.metrics.RecordDropped(s.opts.SourceName, n)
		for _, d := range report.Dropped {
			s.log.Debug("skipping record", "index", d.Index, "id", d.ID, "error", d.Err)
		}
	}
	if len(report.UnknownFields) > 0 {
		s.log.Debug("unknown fields in source rows", "fields", report.UnknownFields)
	}
	return records, nil
}

// Records returns normalized records, newest first. limit <= 0 means
// DefaultRecordsLimit.
func (s *BenchmarkServiceImpl) Records(ctx context.Context, limit int) ([]domain.BenchmarkRecord, error) {
	if limit <= 0 {
		limit = DefaultRecordsLimit
	}
	return s.fetch(ctx, limit)
}

// Dashboard keeps the latest run per device, ranks it and renders the table.
func (s *BenchmarkServiceImpl) Dashboard(ctx context.Context, q domain.Query) (*domain.DashboardView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	records, err := s.fetch(ctx, 0)
	if err != nil {
		return nil, err
	}

	latest := domain.Records(domain.Group(records, domain.GroupOptions{Mode: domain.LatestOnly, Key: domain.ByDeviceUID}))
	view := &domain.DashboardView{
		Total:   len(latest),
		Options: domain.NewFilterOptions(latest),
	}

	summary, err := domain.Summarize(latest, s.opts.RecentTests)
	switch {
	case errors.Is(err, coreerrors.ErrEmptyDataset):
		view.NoData = true
	case err != nil:
		return nil, err
	default:
		view.Summary = &summary
	}

	if view.Rows, err = domain.Apply(latest, q); err != nil {
		return nil, err
	}
	return view, nil
}

// Devices folds every run of each device into one aggregate summary.
func (s *BenchmarkServiceImpl) Devices(ctx context.Context, key domain.GroupKey) ([]domain.DeviceSummary, error) {
	records, err := s.fetch(ctx, 0)
	if err != nil {
		return nil, err
	}
	return domain.Group(records, s.aggregateOptions(key)), nil
}

// Device aggregates the runs of a single device uid.
func (s *BenchmarkServiceImpl) Device(ctx context.Context, uid string) (*domain.DeviceSummary, error) {
	records, err := s.fetch(ctx, 0)
	if err != nil {
		return nil, err
	}

	var own []domain.BenchmarkRecord
	for _, r := range records {
		if r.DeviceUID == uid {
			own = append(own, r)
		}
	}
	grouped := domain.Group(own, s.aggregateOptions(domain.ByDeviceUID))
	if len(grouped) == 0 {
		return nil, coreerrors.ErrDeviceNotFound
	}
	return &grouped[0], nil
}

func (s *BenchmarkServiceImpl) aggregateOptions(key domain.GroupKey) domain.GroupOptions {
	return domain.GroupOptions{Mode: domain.Aggregate, Key: key, Missing: s.opts.Missing}
}

// LandingStats counts benchmarks and distinct devices.
func (s *BenchmarkServiceImpl) LandingStats(ctx context.Context) (*domain.LandingStats, error) {
	records, err := s.fetch(ctx, 0)
	if err != nil {
		return nil, err
	}
	active := domain.CountActiveDevices(records)
	return &domain.LandingStats{
		Benchmarks:    len(records),
		ActiveDevices: active,
		Downloads:     active,
	}, nil
}

// Refresh recomputes the dashboard and applies it as the current snapshot.
// A refresh that finishes after a newer one is discarded; applied reports
// whether this result became current.
func (s *BenchmarkServiceImpl) Refresh(ctx context.Context, q domain.Query) (*domain.Snapshot, bool, error) {
	gen := s.generation.Add(1)

	view, err := s.Dashboard(ctx, q)
	if err != nil {
		s.snapshots.Invalidate(DashboardViewName, gen)
		return nil, false, err
	}

	snap := domain.Snapshot{
		ID:         uuid.NewString(),
		View:       DashboardViewName,
		Generation: gen,
		ComputedAt: time.Now().UTC(),
		Dashboard:  *view,
	}
	applied := s.snapshots.Apply(snap)
	if !applied {
		s.metrics.RecordStaleSuppressed(DashboardViewName)
		s.log.Info("discarding stale dashboard refresh", "generation", gen)
	}
	return &snap, applied, nil
}

// CurrentSnapshot returns the last applied dashboard snapshot.
func (s *BenchmarkServiceImpl) CurrentSnapshot() (*domain.Snapshot, error) {
	return s.snapshots.GetSnapshot(DashboardViewName)
}

// ExportCSV writes the filtered and sorted dashboard table and returns the
// number of data rows written.
func (s *BenchmarkServiceImpl) ExportCSV(ctx context.Context, q domain.Query, w io.Writer) (int, error) {
	view, err := s.Dashboard(ctx, q)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, view.Rows); err != nil {
		return 0, err
	}
	return len(view.Rows), nil
}

type noopMetrics struct{}

func (noopMetrics) RecordDropped(string, int) {}
func (noopMetrics) RecordSourceFailure(string) {}
func (noopMetrics) RecordStaleSuppressed(string) {}
