// Package poller keeps a view-state store fresh on a fixed period.
package poller

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// FetchFunc retrieves one snapshot from the backend.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ApplyFunc installs a fresh snapshot into the owning store.
type ApplyFunc[T any] func(T)

// Poller re-fetches one snapshot on a fixed interval. Every fetch is tagged
// with a monotonically increasing generation and a response is applied only if
// its generation is still the latest, so a slow stale reply never overwrites
// fresher state and a reply arriving after teardown is discarded.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	apply    ApplyFunc[T]
	onError  func(error)
	logger   *zap.Logger

	gen atomic.Uint64
}

// New creates a poller. onError may be nil.
func New[T any](name string, interval time.Duration, fetch FetchFunc[T], apply ApplyFunc[T], onError func(error), logger *zap.Logger) *Poller[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		onError:  onError,
		logger:   logger,
	}
}

// Run ticks until ctx is cancelled. The ticker itself issues no immediate
// fetch; callers that need one (cache miss on mount, post-transfer refresh)
// call Poll directly.
func (p *Poller[T]) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("poller started", zap.String("name", p.name), zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped", zap.String("name", p.name))
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll issues one fetch outside the timer. On failure the prior snapshot is
// left intact and the failure goes to onError.
func (p *Poller[T]) Poll(ctx context.Context) {
	gen := p.gen.Add(1)

	value, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("poll failed", zap.String("name", p.name), zap.Error(err))
		if p.onError != nil {
			p.onError(err)
		}
		return
	}

	if p.gen.Load() != gen {
		p.logger.Debug("discarding stale poll response", zap.String("name", p.name), zap.Uint64("generation", gen))
		return
	}
	p.apply(value)
}

// Invalidate bumps the generation so any in-flight response is discarded.
func (p *Poller[T]) Invalidate() {
	p.gen.Add(1)
}
