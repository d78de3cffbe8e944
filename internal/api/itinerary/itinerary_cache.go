package itinerary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/smart-itinerary-api/app/observability/metrics"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

const (
	DefaultCacheTTL             = 6 * time.Hour
	DefaultCacheCleanupInterval = 30 * time.Minute

	fingerprintPrefix = "itinerary:"
)

// Generation is a freshly computed itinerary plus how it was produced.
type Generation struct {
	ID          uuid.UUID
	Response    *types.ItineraryResponse
	Model       string
	TotalTokens int
}

// ComputeFunc produces the itinerary on a cache miss.
type ComputeFunc func(ctx context.Context) (*Generation, error)

type cacheEntry struct {
	generation Generation
	storedAt   time.Time
	expiresAt  time.Time
}

// Cache memoizes itinerary responses by request fingerprint.
// Concurrent misses for one fingerprint share a single computation; errors are never stored.
type Cache struct {
	store   *gocache.Cache
	flights singleflight.Group
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewCache(ttl, cleanupInterval time.Duration, logger *slog.Logger, m *metrics.AppMetrics) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCacheCleanupInterval
	}
	return &Cache{
		store:   gocache.New(ttl, cleanupInterval),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		metrics: m,
	}
}

// Fingerprint returns the cache key for req: the upper-case hex SHA-256 of its JSON encoding.
func Fingerprint(req types.ItineraryRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode itinerary request: %w", err)
	}
	sum := sha256.Sum256(data)
	return fingerprintPrefix + strings.ToUpper(hex.EncodeToString(sum[:])), nil
}

// GetOrCompute returns the cached response for req, or runs compute once and stores its result.
func (c *Cache) GetOrCompute(ctx context.Context, req types.ItineraryRequest, compute ComputeFunc) (*types.ItineraryResponse, error) {
	key, err := Fingerprint(req)
	if err != nil {
		return nil, err
	}
	l := c.logger.With(slog.String("fingerprint", key))

	if entry, ok := c.lookup(key); ok {
		c.metrics.RecordCacheHit(ctx)
		l.DebugContext(ctx, "Itinerary served from cache",
			slog.String("generation_id", entry.generation.ID.String()),
			slog.String("model", entry.generation.Model),
			slog.Int("tokens_saved", entry.generation.TotalTokens),
			slog.Duration("age", c.now().Sub(entry.storedAt)))
		return entry.generation.Response, nil
	}
	c.metrics.RecordCacheMiss(ctx)

	for {
		led := false
		ch := c.flights.DoChan(key, func() (interface{}, error) {
			led = true
			// a previous flight may have stored the entry while this caller waited
			if entry, ok := c.lookup(key); ok {
				return entry.generation.Response, nil
			}
			gen, err := compute(ctx)
			if err != nil {
				return nil, err
			}
			if gen == nil || gen.Response == nil {
				return nil, fmt.Errorf("%w: empty generation", types.ErrMalformedUpstreamResponse)
			}
			c.set(key, *gen)
			return gen.Response, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err == nil {
				return res.Val.(*types.ItineraryResponse), nil
			}
			if !led && ctx.Err() == nil && isContextError(res.Err) {
				l.DebugContext(ctx, "Shared itinerary computation was canceled, retrying", slog.Any("error", res.Err))
				continue
			}
			return nil, res.Err
		}
	}
}

// Len reports the number of stored entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Close drops every entry.
func (c *Cache) Close() {
	c.store.Flush()
}

func (c *Cache) lookup(key string) (cacheEntry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return cacheEntry{}, false
	}
	entry := v.(cacheEntry)
	// expired entries are left for the janitor; a concurrent set may already have replaced this one
	if !c.now().Before(entry.expiresAt) {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *Cache) set(key string, gen Generation) {
	now := c.now()
	c.store.Set(key, cacheEntry{
		generation: gen,
		storedAt:   now,
		expiresAt:  now.Add(c.ttl),
	}, c.ttl)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
