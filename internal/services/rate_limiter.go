package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	rateLimitKeyPrefix = "ratelimit:"

	backendRedis = "redis"
	backendLocal = "local"
)

// WindowCounter increments a counter that expires at the end of a fixed window.
// redisclient.Client implements it.
type WindowCounter interface {
	IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateDecision is the outcome of one Allow call
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	Backend    string
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client key. With a WindowCounter it uses a
// fixed window shared by every replica; when the counter is absent or fails
// it falls back to a token bucket per key held in process.
type RateLimiter struct {
	counter     WindowCounter
	windowLimit int
	window      time.Duration
	rps         rate.Limit
	burst       int

	mutex  sync.Mutex
	local  map[string]*localBucket
	logger *logging.SafeLogger
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst. counter may be nil.
func NewRateLimiter(counter WindowCounter, rps float64, burst int, window time.Duration, logger *logging.SafeLogger) *RateLimiter {
	windowLimit := int(math.Ceil(rps * window.Seconds()))
	if windowLimit < burst {
		windowLimit = burst
	}
	return &RateLimiter{
		counter:     counter,
		windowLimit: windowLimit,
		window:      window,
		rps:         rate.Limit(rps),
		burst:       burst,
		local:       make(map[string]*localBucket),
		logger:      logger,
	}
}

// Allow checks whether a request from key may proceed
func (rl *RateLimiter) Allow(ctx context.Context, key string) RateDecision {
	decision, ok := rl.allowShared(ctx, key)
	if !ok {
		decision = rl.allowLocal(key)
	}

	outcome := "allowed"
	if !decision.Allowed {
		outcome = "denied"
		rl.logger.Debug("rate limiter rejected request",
			zap.String("key", key),
			zap.String("backend", decision.Backend),
			zap.Duration("retry_after", decision.RetryAfter))
	}
	observability.RateLimitDecisions.WithLabelValues(decision.Backend, outcome).Inc()
	return decision
}

func (rl *RateLimiter) allowShared(ctx context.Context, key string) (RateDecision, bool) {
	if rl.counter == nil {
		return RateDecision{}, false
	}

	count, ttl, err := rl.counter.IncrWithExpire(ctx, rateLimitKeyPrefix+key, rl.window)
	if err != nil {
		rl.logger.Warn("shared rate limit unavailable, using local limiter", zap.Error(err))
		return RateDecision{}, false
	}
	if ttl <= 0 {
		ttl = rl.window
	}

	remaining := rl.windowLimit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	decision := RateDecision{Allowed: count <= int64(rl.windowLimit), Remaining: remaining, Backend: backendRedis}
	if !decision.Allowed {
		decision.RetryAfter = ttl
	}
	return decision, true
}

func (rl *RateLimiter) allowLocal(key string) RateDecision {
	rl.mutex.Lock()
	bucket, ok := rl.local[key]
	if !ok {
		bucket = &localBucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.local[key] = bucket
	}
	now := time.Now()
	bucket.lastSeen = now
	rl.mutex.Unlock()

	reservation := bucket.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return RateDecision{RetryAfter: rl.window, Backend: backendLocal}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return RateDecision{RetryAfter: delay, Backend: backendLocal}
	}
	return RateDecision{
		Allowed:   true,
		Remaining: int(bucket.limiter.TokensAt(now)),
		Backend:   backendLocal,
	}
}

// CleanupOldEntries drops local buckets not used for olderThan
func (rl *RateLimiter) CleanupOldEntries(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	removed := 0
	for key, bucket := range rl.local {
		if bucket.lastSeen.Before(cutoff) {
			delete(rl.local, key)
			removed++
		}
	}
	return removed
}

// GetCacheSize returns the number of local buckets
func (rl *RateLimiter) GetCacheSize() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.local)
}

// StartCleanup removes idle local buckets every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := rl.CleanupOldEntries(interval); removed > 0 {
					rl.logger.Debug("cleaned up idle rate limit buckets", zap.Int("removed", removed))
				}
			}
		}
	}()
}
