package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goretry "github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/metrics"
	"go-ao-staking/internal/models"
	"go-ao-staking/internal/retry"
)

// Ensure Client implements interfaces.MessageClient
var _ interfaces.MessageClient = (*Client)(nil)

const (
	kindRead  = "read"
	kindWrite = "write"

	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollTimeout  = 15 * time.Second
)

// Client sends messages to processes and resolves their results.
// Cacheable reads go through the cache, identical concurrent reads share one round trip.
// Returned responses may be shared between callers and must not be modified.
type Client struct {
	transport    interfaces.Transport
	cache        interfaces.Cache
	keyBuilder   interfaces.KeyBuilder
	policy       *retry.Policy
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger

	inflight singleflight.Group
}

// NewClient creates a message client
func NewClient(
	transport interfaces.Transport,
	cache interfaces.Cache,
	keyBuilder interfaces.KeyBuilder,
	policy *retry.Policy,
	pollInterval time.Duration,
	pollTimeout time.Duration,
	logger *zap.Logger,
) *Client {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Client{
		transport:    transport,
		cache:        cache,
		keyBuilder:   keyBuilder,
		policy:       policy,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		logger:       logger,
	}
}

// SendAndGetResult sends req and returns the result the process produced for it
func (c *Client) SendAndGetResult(ctx context.Context, req *models.Request) (*models.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request cannot be nil", models.ErrInvalidRequest)
	}

	action := req.Tags.Action()
	kind := kindRead
	if req.IsWrite {
		kind = kindWrite
	}
	defer metrics.TimeRequest(action, kind)()

	var (
		resp *models.Response
		err  error
	)
	switch {
	case req.IsWrite:
		resp, err = c.write(ctx, req)
	case req.Cacheable():
		resp, err = c.cachedRead(ctx, req)
	default:
		resp, err = c.read(ctx, req)
	}

	metrics.RecordClientRequest(action, kind, err)
	if err != nil {
		c.logger.Debug("Request failed",
			zap.String("process", req.ProcessID),
			zap.String("action", action),
			zap.String("kind", kind),
			zap.Error(err))
	}
	return resp, err
}

// cachedRead serves from cache, otherwise joins or starts the round trip for the key
func (c *Client) cachedRead(ctx context.Context, req *models.Request) (*models.Response, error) {
	action := req.Tags.Action()

	key, err := c.keyBuilder.Build(req.ProcessID, req.Tags, req.Discriminator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	if resp, level, ok := c.lookup(key); ok {
		metrics.RecordCacheHit(action, level)
		return resp, nil
	}
	metrics.RecordCacheMiss(action)

	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		// a flight that just finished may have stored the result
		if resp, _, ok := c.lookup(key); ok {
			return resp, nil
		}

		// one caller giving up must not fail the others
		resp, err := c.read(context.WithoutCancel(ctx), req)
		if err != nil {
			return nil, err
		}
		c.store(key, resp, req.TTL)
		return resp, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.RecordInflightShared(action)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Response), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// read performs the whole round trip under the retry policy
func (c *Client) read(ctx context.Context, req *models.Request) (*models.Response, error) {
	action := req.Tags.Action()
	return retry.Run(ctx, c.policy, action, func(ctx context.Context) (*models.Response, error) {
		id, err := c.transport.Dispatch(ctx, req)
		if err != nil {
			metrics.RecordRoundTrip(action, err)
			return nil, err
		}
		resp, err := c.awaitResult(ctx, req.ProcessID, id)
		metrics.RecordRoundTrip(action, err)
		return resp, err
	})
}

// write retries only the dispatch. Once a message is accepted it is never sent again.
func (c *Client) write(ctx context.Context, req *models.Request) (*models.Response, error) {
	action := req.Tags.Action()
	id, err := retry.Run(ctx, c.policy, action, func(ctx context.Context) (string, error) {
		id, err := c.transport.Dispatch(ctx, req)
		if err != nil {
			metrics.RecordRoundTrip(action, err)
		}
		return id, err
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.awaitResult(ctx, req.ProcessID, id)
	metrics.RecordRoundTrip(action, err)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", id, err)
	}
	return resp, nil
}

// awaitResult polls for the result of a dispatch until it is available or the poll timeout elapses
func (c *Client) awaitResult(ctx context.Context, processID, dispatchID string) (*models.Response, error) {
	backoff := goretry.WithMaxDuration(c.pollTimeout, goretry.NewConstant(c.pollInterval))

	var resp *models.Response
	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.transport.Result(ctx, processID, dispatchID)
		if errors.Is(err, models.ErrResultNotReady) {
			return goretry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if errors.Is(err, models.ErrResultNotReady) {
		return nil, fmt.Errorf("result of %s not available after %s: %w", dispatchID, c.pollTimeout, err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) lookup(key string) (*models.Response, string, bool) {
	var (
		entry *models.CacheEntry
		found bool
		level = "cache"
	)
	if levels, ok := c.cache.(interfaces.LevelAwareCache); ok {
		result := levels.GetWithLevel(key)
		entry, found, level = result.Entry, result.Found, string(result.Level)
		if found {
			metrics.ObserveCacheHitAge(level, result.Age)
		}
	} else {
		entry, found = c.cache.Get(key)
	}
	if !found || entry == nil {
		return nil, "", false
	}

	var resp models.Response
	if err := json.Unmarshal(entry.Data, &resp); err != nil {
		c.logger.Warn("Dropping undecodable cached response", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError(level, "decode")
		c.cache.Delete(key)
		return nil, "", false
	}
	return &resp, level, true
}

func (c *Client) store(key string, resp *models.Response, ttl time.Duration) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.String("key", key), zap.Error(err))
		return
	}
	c.cache.Set(key, data, ttl)
}
