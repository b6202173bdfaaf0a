package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/GeorgeMish/Yatube/internal/metrics"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
)

const keyPrefix = "blog:rl:"

// Limiter counts requests per key in fixed windows stored in Redis.
type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func New(rdb *redis.Client, limit int64, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Allow records one hit for key and reports whether it is within the limit,
// along with the count so far in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	k := keyPrefix + key
	// SETNX carries the window TTL and INCR keeps it; both run in one MULTI.
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, errors.Wrap(err, "rate limit")
	}
	n := incr.Val()
	return n <= l.limit, n, nil
}

// Middleware limits requests by the id keyFn derives from them. Requests
// keyFn leaves unkeyed pass through, and so do requests the limiter cannot
// count.
func (l *Limiter) Middleware(keyFn func(*http.Request) uint64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := keyFn(r)
		if id == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ok, n, err := l.Allow(r.Context(), strconv.FormatUint(id, 10))
		switch {
		case err != nil:
			logx.FromContext(r.Context()).WithError(err).Warn("rate limiter unavailable")
		case !ok:
			metrics.WritesLimited.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			httpx.WriteError(w, http.StatusTooManyRequests,
				errors.Errorf("rate limit exceeded (count=%d, limit=%d)", n, l.limit), "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}
