package poller

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-ao-staking/internal/metrics"
)

// Status is the lifecycle state of a poller
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// FetchFunc loads a fresh value
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is a point-in-time view of a poller.
// Data holds the last successful value even while loading or after an error.
type Snapshot[T any] struct {
	Status    Status
	Data      T
	HasData   bool
	Err       error
	UpdatedAt time.Time
}

// Poller fetches a value on Start and then every interval until Stopped
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	clock    clock.Clock
	logger   *zap.Logger

	mu         sync.RWMutex
	snapshot   Snapshot[T]
	generation uint64
	cancel     context.CancelFunc
}

// New creates an idle poller
func New[T any](name string, interval time.Duration, fetch FetchFunc[T], clk clock.Clock, logger *zap.Logger) *Poller[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		clock:    clk,
		logger:   logger.With(zap.String("poller", name)),
		snapshot: Snapshot[T]{Status: StatusIdle},
	}
}

// Name returns the poller name used in logs and metrics
func (p *Poller[T]) Name() string {
	return p.name
}

// Start fetches immediately and then on every tick. Starting a running poller is a no-op.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	p.generation++
	gen := p.generation
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.logger.Info("Starting poller", zap.Duration("interval", p.interval))
	go p.run(ctx, gen)
}

// Stop cancels the schedule and any fetch in progress. A fetch that
// completes after Stop does not change the snapshot.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.generation++
	if p.snapshot.Status == StatusLoading {
		p.snapshot.Status = p.settledStatus()
	}
	p.logger.Info("Stopped poller")
}

// Refresh fetches once and waits for the result
func (p *Poller[T]) Refresh(ctx context.Context) error {
	p.mu.RLock()
	gen := p.generation
	p.mu.RUnlock()
	return p.refresh(ctx, gen)
}

// Snapshot returns the current state
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *Poller[T]) run(ctx context.Context, gen uint64) {
	ticker := p.clock.Ticker(p.interval)
	defer ticker.Stop()

	if err := p.refresh(ctx, gen); err != nil {
		p.logger.Warn("Initial fetch failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx, gen); err != nil {
				p.logger.Warn("Refresh failed", zap.Error(err))
			}
		}
	}
}

func (p *Poller[T]) refresh(ctx context.Context, gen uint64) error {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return nil
	}
	p.snapshot.Status = StatusLoading
	p.mu.Unlock()

	data, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.logger.Debug("Discarding result of a stopped poller")
		return err
	}

	if err != nil {
		p.snapshot.Status = StatusError
		p.snapshot.Err = err
		metrics.RecordPollerRefresh(p.name, string(StatusError))
		return err
	}

	p.snapshot = Snapshot[T]{
		Status:    StatusReady,
		Data:      data,
		HasData:   true,
		UpdatedAt: p.clock.Now(),
	}
	metrics.RecordPollerRefresh(p.name, string(StatusReady))
	return nil
}

// settledStatus is the status to fall back to when a fetch is abandoned
func (p *Poller[T]) settledStatus() Status {
	switch {
	case p.snapshot.Err != nil:
		return StatusError
	case p.snapshot.HasData:
		return StatusReady
	default:
		return StatusIdle
	}
}
