package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/cache"
	"github.com/hotelzululima/flashback/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner keeps no per-conversion state, so multiple goroutines can use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Convert runs load and export on input, consulting the cache first.
func (r *Runner) Convert(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key := r.Keyer.DocumentKey(cache.Hash(input), cache.DocumentKeyOpts{Mode: opts.Mode})
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, key, "document"); ok {
			return &Result{Document: data, CacheHit: true}, nil
		}
	}

	result := &Result{}

	loadStart := time.Now()
	m, err := Load(ctx, input, opts.Logger)
	if err != nil {
		return nil, err
	}
	result.Movie = m
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Debug("scanned movie",
		"characters", m.Dictionary.Len(),
		"frames", m.Timeline.FrameCount,
		"skipped", m.Skipped,
		"duration", result.Stats.LoadTime)

	exportStart := time.Now()
	doc, stats, err := Export(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Export = stats
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Debug("exported document",
		"mode", opts.Mode,
		"bytes", len(doc),
		"duration", result.Stats.ExportTime)

	r.store(ctx, key, "document", doc, opts.TTL)
	return result, nil
}

// Graph loads input and renders its character graph, consulting the cache
// first.
func (r *Runner) Graph(ctx context.Context, input []byte, opts GraphOptions) ([]byte, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key := r.Keyer.GraphKey(cache.Hash(input), cache.GraphKeyOpts{Format: opts.Format, Detailed: opts.Detailed})
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, key, "graph"); ok {
			return data, nil
		}
	}

	m, err := Load(ctx, input, opts.Logger)
	if err != nil {
		return nil, err
	}
	data, err := RenderGraph(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render graph: %w", err)
	}
	r.store(ctx, key, "graph", data, cache.TTLGraph)
	return data, nil
}

// lookup reads key from the cache. Backend errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(l **log.Logger) {
	if *l == nil {
		*l = r.Logger
	}
}
