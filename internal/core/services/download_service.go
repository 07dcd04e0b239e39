package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
	"minebench/internal/core/ports"
)

// ReleaseTarget names a product and the repository publishing it.
type ReleaseTarget struct {
	Product    string
	Repository string
}

// DownloadServiceImpl looks up every target's latest release in parallel.
type DownloadServiceImpl struct {
	releases   ports.ReleaseSource
	targets    []ReleaseTarget
	extensions []string
	metrics    ports.Metrics
}

// NewDownloadService constructs a DownloadServiceImpl. Empty extensions fall
// back to domain.DefaultAssetExtensions.
func NewDownloadService(releases ports.ReleaseSource, targets []ReleaseTarget, extensions []string, metrics ports.Metrics) *DownloadServiceImpl {
	if len(extensions) == 0 {
		extensions = domain.DefaultAssetExtensions
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &DownloadServiceImpl{releases: releases, targets: targets, extensions: extensions, metrics: metrics}
}

// Downloads resolves all targets. If any lookup fails the whole view is
// unavailable; partial results are never returned.
func (s *DownloadServiceImpl) Downloads(ctx context.Context) ([]domain.Download, error) {
	out := make([]domain.Download, len(s.targets))

	g, ctx := errgroup.WithContext(ctx)
	for i, target := range s.targets {
		i, target := i, target
		g.Go(func() error {
			info, err := s.releases.LatestRelease(ctx, target.Repository)
			if err != nil {
				return fmt.Errorf("release %s: %w", target.Repository, err)
			}
			out[i] = domain.NewDownload(target.Product, target.Repository, info, s.extensions)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.metrics.RecordSourceFailure("releases")
		slog.Error("release lookup failed", "error", err)
		if errors.Is(err, coreerrors.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}
	return out, nil
}
