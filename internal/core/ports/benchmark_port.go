package ports

import (
	"context"
	"io"

	"minebench/internal/core/domain"
)

// BenchmarkSource is the read-only query against the benchmark store:
// every record ordered by created_at descending, capped at limit rows when
// limit > 0.
type BenchmarkSource interface {
	Fetch(ctx context.Context, limit int) ([]domain.RawRecord, error)
}

// ReleaseSource looks up the latest published release of a repository
// ("owner/name").
type ReleaseSource interface {
	LatestRelease(ctx context.Context, repo string) (domain.ReleaseInfo, error)
}

// SnapshotRepository holds the last applied snapshot of each view.
type SnapshotRepository interface {
	// Apply stores s unless a snapshot of the same view with a newer or equal
	// generation was already applied. It reports whether s was stored.
	Apply(s domain.Snapshot) bool
	// Invalidate clears the view after a failed refresh of generation gen,
	// unless a newer generation was already applied.
	Invalidate(view string, gen uint64) bool
	GetSnapshot(view string) (*domain.Snapshot, error)
}

// Metrics receives pipeline counters.
type Metrics interface {
	RecordDropped(source string, n int)
	RecordSourceFailure(source string)
	RecordStaleSuppressed(view string)
}

// BenchmarkService is the main port used by the HTTP layer.
type BenchmarkService interface {
	Records(ctx context.Context, limit int) ([]domain.BenchmarkRecord, error)
	Dashboard(ctx context.Context, q domain.Query) (*domain.DashboardView, error)
	Devices(ctx context.Context, key domain.GroupKey) ([]domain.DeviceSummary, error)
	Device(ctx context.Context, uid string) (*domain.DeviceSummary, error)
	LandingStats(ctx context.Context) (*domain.LandingStats, error)
	Refresh(ctx context.Context, q domain.Query) (*domain.Snapshot, bool, error)
	CurrentSnapshot() (*domain.Snapshot, error)
	ExportCSV(ctx context.Context, q domain.Query, w io.Writer) (int, error)
}

// DownloadService resolves the downloadable releases.
type DownloadService interface {
	Downloads(ctx context.Context) ([]domain.Download, error)
}
