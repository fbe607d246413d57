package series

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/fred-insights/pkg/errors"
)

// Service exposes series retrieval on top of an upstream Provider.
type Service interface {
	FetchSeries(ctx context.Context, id string, opts FetchOptions) (Snapshot, error)
	FetchMetadataBatch(ctx context.Context, ids []string) ([]Metadata, error)
}

// Provider is the upstream economic data API.
type Provider interface {
	Metadata(ctx context.Context, id string) (Metadata, error)
	Observations(ctx context.Context, id string, limit int, order SortOrder) ([]Observation, error)
}

type service struct {
	cfg      Config
	provider Provider
	logger   *slog.Logger
}

// NewService is a wire provider for the series domain.
func NewService(cfg Config, provider Provider, logger *slog.Logger) Service {
	return &service{cfg: cfg, provider: provider, logger: logger.With("component", "series.service")}
}

func (s *service) FetchSeries(ctx context.Context, rawID string, opts FetchOptions) (Snapshot, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}

	var (
		meta         Metadata
		observations []Observation
		metaErr      error
		obsErr       error
	)
	// Neither request cancels the other: a 400 on observations must not
	// hide the not-found answer from the metadata request.
	var g errgroup.Group
	g.Go(func() error {
		meta, metaErr = s.provider.Metadata(ctx, id)
		return nil
	})
	g.Go(func() error {
		observations, obsErr = s.provider.Observations(ctx, id, opts.Limit, opts.Order)
		return nil
	})
	_ = g.Wait()

	if errors.Is(metaErr, ErrNotFound) || errors.Is(obsErr, ErrNotFound) {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("Series '%s' not found", id), nil)
	}
	if err := errors.Join(metaErr, obsErr); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeUpstream, "Error fetching FRED data", err)
	}
	if meta.ID == "" {
		meta.ID = id
	}

	snapshot := NewSnapshot(id, meta, observations)
	s.logger.Info("series fetched", "series_id", id, "observations", snapshot.ObservationCount)
	return snapshot, nil
}

func (s *service) FetchMetadataBatch(ctx context.Context, ids []string) ([]Metadata, error) {
	out := make([]Metadata, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// Items run to completion even if the caller goes away; the HTTP client
	// timeout bounds each one.
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	if s.cfg.BatchConcurrency > 0 {
		g.SetLimit(s.cfg.BatchConcurrency)
	}
	failed := make([]bool, len(ids))
	for i, raw := range ids {
		g.Go(func() error {
			out[i], failed[i] = s.describe(ctx, raw)
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for _, f := range failed {
		if f {
			failures++
		}
	}
	if failures > 0 {
		s.logger.Warn("series metadata batch degraded", "requested", len(ids), "failed", failures)
	}
	return out, nil
}

// describe fetches metadata for one batch item and reports whether it fell
// back to the placeholder.
func (s *service) describe(ctx context.Context, raw string) (Metadata, bool) {
	id, err := ParseID(raw)
	if err != nil {
		return Placeholder(raw), true
	}
	meta, err := s.provider.Metadata(ctx, id)
	if err != nil {
		s.logger.Debug("series metadata unavailable", "series_id", id, "error", err)
		return Placeholder(raw), true
	}
	if meta.ID == "" {
		meta.ID = id
	}
	if meta.Title == "" {
		meta.Title = id
	}
	return meta, false
}
