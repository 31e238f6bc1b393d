package gencache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/llm"
	"github.com/studykit/studykit/internal/store"
)

const (
	// DefaultTTL is how long a cached response is served before it is
	// treated as a miss.
	DefaultTTL = 24 * time.Hour

	// DefaultCleanupHorizon is the age past which Cleanup removes entries.
	DefaultCleanupHorizon = 7 * 24 * time.Hour
)

// Cache is a Generator decorator backed by the content-addressed store.
// A hit skips the inner generator entirely; misses and any cache failure
// fall through to it. The cache itself never retries.
type Cache struct {
	inner llm.Generator
	repo  store.CacheRepo
	usage store.UsageRepo
	ttl   time.Duration
	log   *slog.Logger

	// now is swapped in tests to control TTL expiry.
	now func() time.Time

	// puts tracks in-flight async writes so Flush can drain them.
	puts sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the lookup TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the cache's time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New wraps a Generator with the content-addressed cache.
func New(inner llm.Generator, repo store.CacheRepo, usage store.UsageRepo, log *slog.Logger, opts ...Option) *Cache {
	if log == nil {
		log = slog.Default()
	}
	c := &Cache{
		inner: inner,
		repo:  repo,
		usage: usage,
		ttl:   DefaultTTL,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate serves the request from the cache when a fresh entry exists,
// otherwise calls the inner generator and stores its output.
func (c *Cache) Generate(ctx context.Context, req llm.Request) (*llm.Result, error) {
	key := Key(req, c.inner.ModelID())

	if entry := c.lookup(ctx, key); entry != nil {
		c.recordHit(ctx, entry)
		return &llm.Result{
			Text:  entry.Response,
			Model: entry.Model,
			Usage: llm.Usage{
				InputTokens:  entry.InputTokens,
				OutputTokens: entry.OutputTokens,
			},
		}, nil
	}

	result, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	// Persist off the request path. Short-lived callers must Flush
	// before exiting or the write is lost.
	c.puts.Add(1)
	go func() {
		defer c.puts.Done()
		c.put(key, result)
	}()

	return result, nil
}

// Flush blocks until all queued cache writes have finished. Write failures
// stay non-fatal; Flush only guarantees they are no longer in flight.
func (c *Cache) Flush() {
	c.puts.Wait()
}

func (c *Cache) ModelID() string {
	return c.inner.ModelID()
}

// Cleanup removes entries older than the given horizon. A zero horizon
// uses DefaultCleanupHorizon.
func (c *Cache) Cleanup(ctx context.Context, horizon time.Duration) (int64, error) {
	return sweep(ctx, c.repo, c.now(), horizon)
}

// Sweep batch-deletes entries older than the horizon. It exists for
// schedulers that run the sweep without constructing a full Cache.
func Sweep(ctx context.Context, repo store.CacheRepo, horizon time.Duration) (int64, error) {
	return sweep(ctx, repo, time.Now(), horizon)
}

func sweep(ctx context.Context, repo store.CacheRepo, now time.Time, horizon time.Duration) (int64, error) {
	if horizon <= 0 {
		horizon = DefaultCleanupHorizon
	}
	return repo.DeleteOlderThan(ctx, now.Add(-horizon))
}

// lookup returns a fresh entry or nil. Stale entries and read errors are
// both treated as misses.
func (c *Cache) lookup(ctx context.Context, key string) *store.CacheEntry {
	entry, err := c.repo.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache lookup failed", "error", err)
		return nil
	}
	if entry == nil {
		return nil
	}
	if c.now().Sub(entry.CreatedAt) > c.ttl {
		return nil
	}
	return entry
}

func (c *Cache) put(key string, result *llm.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.repo.Put(ctx, store.CacheEntry{
		Key:          key,
		Response:     result.Text,
		Model:        result.Model,
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
		CreatedAt:    c.now().UTC(),
	})
	if err != nil {
		c.log.Warn("cache write failed", "error", err)
	}
}

// recordHit logs a zero-cost usage row so cached traffic still shows up
// in accounting.
func (c *Cache) recordHit(ctx context.Context, entry *store.CacheEntry) {
	if c.usage == nil {
		return
	}
	err := c.usage.Append(ctx, store.UsageRecord{
		ID:           uuid.NewString(),
		Model:        entry.Model,
		Purpose:      llm.PurposeFrom(ctx),
		InputTokens:  entry.InputTokens,
		OutputTokens: entry.OutputTokens,
		Cached:       true,
		Success:      true,
		CreatedAt:    c.now().UTC(),
	})
	if err != nil {
		c.log.Warn("failed to record cache hit", "error", err)
	}
}
