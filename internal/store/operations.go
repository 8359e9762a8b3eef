package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"go-ao-staking/internal/metrics"
)

// OperationStatus is the state of a tracked write
type OperationStatus string

const (
	OperationPending   OperationStatus = "pending"
	OperationConfirmed OperationStatus = "confirmed"
	OperationFailed    OperationStatus = "failed"
)

// ErrOperationTimeout is recorded when a write does not settle in time
var ErrOperationTimeout = errors.New("operation timed out")

// Operation is a write submitted on behalf of a user
type Operation struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Address   string          `json:"address"`
	Status    OperationStatus `json:"status"`
	Result    any             `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OperationFunc performs the write
type OperationFunc func(ctx context.Context) (any, error)

// Operations runs writes in the background and keeps a bounded history of their outcome
type Operations struct {
	mu      sync.RWMutex
	history *lru.Cache[string, *Operation]
	timeout time.Duration
	clock   clock.Clock
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewOperations creates a tracker remembering the last size operations
func NewOperations(size int, timeout time.Duration, clk clock.Clock, logger *zap.Logger) (*Operations, error) {
	history, err := lru.New[string, *Operation](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation history: %w", err)
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Operations{
		history: history,
		timeout: timeout,
		clock:   clk,
		logger:  logger,
	}, nil
}

// Track records a pending operation and runs fn in the background.
// fn outlives ctx cancellation but not the tracker timeout.
func (o *Operations) Track(ctx context.Context, kind, address string, fn OperationFunc) Operation {
	now := o.clock.Now()
	op := &Operation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Address:   address,
		Status:    OperationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	o.mu.Lock()
	o.history.Add(op.ID, op)
	snapshot := *op
	o.mu.Unlock()

	metrics.RecordOperation(kind, string(OperationPending))
	o.logger.Info("Operation submitted",
		zap.String("id", op.ID),
		zap.String("kind", kind),
		zap.String("address", address))

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		runCtx, cancel := o.clock.WithTimeout(context.WithoutCancel(ctx), o.timeout)
		defer cancel()

		result, err := fn(runCtx)
		if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrOperationTimeout, o.timeout, err)
		}
		o.settle(op.ID, result, err)
	}()

	return snapshot
}

// Get returns a copy of the operation with id
func (o *Operations) Get(id string) (Operation, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	op, ok := o.history.Peek(id)
	if !ok {
		return Operation{}, false
	}
	return *op, true
}

// Wait blocks until every tracked operation has settled
func (o *Operations) Wait() {
	o.wg.Wait()
}

func (o *Operations) settle(id string, result any, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	op, ok := o.history.Peek(id)
	if !ok {
		// evicted while running
		return
	}
	op.UpdatedAt = o.clock.Now()
	if err != nil {
		op.Status = OperationFailed
		op.Error = err.Error()
		o.logger.Warn("Operation failed", zap.String("id", id), zap.String("kind", op.Kind), zap.Error(err))
	} else {
		op.Status = OperationConfirmed
		op.Result = result
		o.logger.Info("Operation confirmed", zap.String("id", id), zap.String("kind", op.Kind))
	}
	metrics.RecordOperation(op.Kind, string(op.Status))
}
