package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"go-ao-staking/internal/config"
	"go-ao-staking/internal/metrics"
	"go-ao-staking/internal/models"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 200 * time.Millisecond
	DefaultMaxDelay  = 2 * time.Second

	jitterPercent = 10
)

// Policy retries transient failures a bounded number of times with capped
// exponential backoff. The last failure is returned unchanged.
type Policy struct {
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	logger    *zap.Logger
}

// NewPolicy creates a policy allowing attempts total tries
func NewPolicy(attempts int, baseDelay, maxDelay time.Duration, logger *zap.Logger) *Policy {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	if maxDelay < baseDelay {
		maxDelay = baseDelay
	}
	return &Policy{
		attempts:  attempts,
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
		logger:    logger,
	}
}

// NewPolicyFromConfig creates a policy from the retry config section
func NewPolicyFromConfig(cfg *config.Config, logger *zap.Logger) *Policy {
	return NewPolicy(cfg.Retry.Attempts, cfg.GetRetryBaseDelay(), cfg.GetRetryMaxDelay(), logger)
}

// Attempts returns the total number of tries
func (p *Policy) Attempts() int {
	return p.attempts
}

// backoff is stateful, a fresh one is built per call
func (p *Policy) backoff() goretry.Backoff {
	b := goretry.NewExponential(p.baseDelay)
	b = goretry.WithCappedDuration(p.maxDelay, b)
	b = goretry.WithJitterPercent(jitterPercent, b)
	return goretry.WithMaxRetries(uint64(p.attempts-1), b)
}

// Do runs op until it succeeds, fails permanently or attempts are exhausted.
// name labels logs and retry metrics, usually the request action.
func (p *Policy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	attempt := 0
	return goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.RecordRetry(name)
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(ctx, err) {
			return err
		}

		if attempt < p.attempts {
			p.logger.Debug("Retrying after transient failure",
				zap.String("name", name),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", p.attempts),
				zap.Error(err))
		}
		return goretry.RetryableError(err)
	})
}

// Run is Do for operations producing a value
func Run[T any](ctx context.Context, p *Policy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, name, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func isTransient(ctx context.Context, err error) bool {
	if models.IsPermanent(err) {
		return false
	}
	// the caller gave up, retrying cannot help
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return false
	}
	return true
}
