package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/stacker"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultTTL is how long a fetched quote is served without asking the
// upstream again.
const DefaultTTL = 10 * time.Minute

var errRateLimited = errors.New("upstream rate limit reached")

// Cache is a Quoter wrapping another one. Fresh quotes are served for a TTL,
// upstream calls are rate limited, and when the upstream cannot answer the
// last known good quote is served instead.
//
// Cache is safe for concurrent use.
type Cache struct {
	upstream Quoter
	fresh    *cache.Cache
	lastGood *cache.Cache
	limiter  *rate.Limiter
	Log      logrus.FieldLogger
}

// NewCache wraps upstream. Quotes are fresh for ttl (DefaultTTL when not
// positive) and upstream calls are limited to one every interval, with a
// burst of one call per metal. A zero interval means no limit.
func NewCache(upstream Quoter, ttl, interval time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Cache{
		upstream: upstream,
		fresh:    cache.New(ttl, 2*ttl),
		lastGood: cache.New(cache.NoExpiration, 0),
		limiter:  rate.NewLimiter(limit, len(stacker.Metals)),
		Log:      logrus.StandardLogger(),
	}
}

// Quote returns a fresh quote for metal, from the cache or the upstream.
func (c *Cache) Quote(ctx context.Context, metal stacker.Metal) (stacker.Quote, error) {
	key := string(metal)
	if v, ok := c.fresh.Get(key); ok {
		return v.(stacker.Quote), nil
	}
	if !c.limiter.Allow() {
		return c.fallback(metal, errRateLimited)
	}
	q, err := c.upstream.Quote(ctx, metal)
	if err != nil {
		return c.fallback(metal, err)
	}
	c.fresh.SetDefault(key, q)
	c.lastGood.SetDefault(key, q)
	return q, nil
}

// fallback returns the last known good quote of metal, if any.
func (c *Cache) fallback(metal stacker.Metal, cause error) (stacker.Quote, error) {
	v, ok := c.lastGood.Get(string(metal))
	if !ok {
		return stacker.Quote{}, fmt.Errorf("%s: %w: %w", metal, ErrNoQuote, cause)
	}
	q := v.(stacker.Quote)
	c.Log.WithFields(logrus.Fields{
		"metal":       metal,
		"lastUpdated": q.LastUpdated,
		"cause":       cause,
	}).Warn("serving last known quote")
	return q, nil
}

// Flush forgets fresh quotes, the next call asks the upstream. Last known
// good quotes are kept.
func (c *Cache) Flush() { c.fresh.Flush() }
