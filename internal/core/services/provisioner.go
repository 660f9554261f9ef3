package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/logger"
)

// IndexProvisioner makes sure the vector index exists and is ready.
// It is kept apart from upserts so the lifecycle can be checked on its own.
type IndexProvisioner struct {
	index        driven.VectorIndex
	spec         domain.IndexSpec
	readyTimeout time.Duration
	pollInterval time.Duration
}

// NewIndexProvisioner creates a provisioner for spec. Non-positive durations
// fall back to the defaults.
func NewIndexProvisioner(
	index driven.VectorIndex, spec domain.IndexSpec, readyTimeout, pollInterval time.Duration,
) *IndexProvisioner {
	if readyTimeout <= 0 {
		readyTimeout = domain.DefaultReadyTimeout
	}
	if pollInterval <= 0 {
		pollInterval = domain.DefaultPollInterval
	}
	if spec.Metric == "" {
		spec.Metric = domain.MetricCosine
	}
	return &IndexProvisioner{
		index:        index,
		spec:         spec,
		readyTimeout: readyTimeout,
		pollInterval: pollInterval,
	}
}

// Spec returns the index specification being provisioned.
func (p *IndexProvisioner) Spec() domain.IndexSpec {
	return p.spec
}

// EnsureIndex creates the index if it is absent, then blocks until it
// reports ready or the timeout elapses. Calling it on a ready index only
// costs one Exists and one Describe call.
func (p *IndexProvisioner) EnsureIndex(ctx context.Context) error {
	if p.index == nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexProvisioning, domain.ErrVectorIndexUnavailable)
	}

	exists, err := p.index.Exists(ctx, p.spec.Name)
	if err != nil {
		return fmt.Errorf("%w: check %q: %w", domain.ErrIndexProvisioning, p.spec.Name, err)
	}

	if !exists {
		logger.Info("Creating index %q (dims=%d, metric=%s)", p.spec.Name, p.spec.Dimensions, p.spec.Metric)
		if err := p.index.Create(ctx, p.spec); err != nil {
			return fmt.Errorf("%w: create %q: %w", domain.ErrIndexProvisioning, p.spec.Name, err)
		}
	}

	return p.waitReady(ctx)
}

func (p *IndexProvisioner) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(p.readyTimeout)
	for attempt := 1; ; attempt++ {
		status, err := p.index.Describe(ctx, p.spec.Name)
		if err != nil {
			return fmt.Errorf("%w: describe %q: %w", domain.ErrIndexProvisioning, p.spec.Name, err)
		}
		if status.Ready {
			logger.Debug("Index %q ready after %d poll(s)", p.spec.Name, attempt)
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: index %q not ready after %s", domain.ErrIndexProvisioning, p.spec.Name, p.readyTimeout)
		}

		logger.Debug("Index %q not ready, polling again in %s", p.spec.Name, p.pollInterval)
		timer := time.NewTimer(p.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", domain.ErrIndexProvisioning, ctx.Err())
		case <-timer.C:
		}
	}
}
