package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xui/pkg/cache"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/observability"
	"github.com/matzehuels/xui/pkg/ui"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.SnapshotTTL and cache.ArtifactTTL when positive.
	TTL time.Duration
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

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{ContentHash: opts.ContentHash()}

	// Stage 1+2: Load and layout
	snap, hit, err := r.SnapshotWithCacheInfo(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap
	result.Stats.NodeCount = len(snap.Nodes)
	result.Stats.Generation = snap.Generation
	result.CacheInfo.SnapshotHit = hit

	r.Logger.Info("solved scene",
		"nodes", result.Stats.NodeCount,
		"cached", hit,
		"duration", result.Stats.LoadTime+result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, &snap, result.ContentHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SnapshotWithCacheInfo returns the solved snapshot for the options, from
// the cache when possible, and reports whether it was a cache hit. Stage
// timings are recorded in result when it is not nil.
func (r *Runner) SnapshotWithCacheInfo(ctx context.Context, opts Options, result *Result) (ui.Snapshot, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return ui.Snapshot{}, false, err
	}
	if result == nil {
		result = &Result{}
	}

	hooks := observability.Cache()
	key := r.Keyer.SnapshotKey(opts.ContentHash(), opts.SnapshotKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("snapshot cache unavailable", "error", err)
		} else if hit {
			snap, err := ui.ReadSnapshot(bytes.NewReader(data))
			if err == nil {
				hooks.OnCacheHit(ctx, "snapshot")
				return snap, true, nil
			}
			r.Logger.Debug("discarding unreadable cached snapshot", "error", err)
		}
		hooks.OnCacheMiss(ctx, "snapshot")
	}

	loadStart := time.Now()
	e, err := Load(ctx, opts)
	if err != nil {
		return ui.Snapshot{}, false, errors.Wrap(errors.GetCode(err), err, "load")
	}
	result.Stats.LoadTime = time.Since(loadStart)

	layoutStart := time.Now()
	snap, _, err := Solve(ctx, e)
	if err != nil {
		return ui.Snapshot{}, false, errors.Wrap(errors.GetCode(err), err, "layout")
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	if data, err := SnapshotBytes(&snap); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.SnapshotTTL)); err != nil {
			r.Logger.Warn("cache snapshot", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "snapshot", len(data))
		}
	}
	return snap, false, nil
}

// RenderWithCacheInfo renders every requested format, serving formats from
// the cache where possible and rendering only the rest. It reports true when
// every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap *ui.Snapshot, contentHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	opts.SetLayoutDefaults()

	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, snap, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ArtifactTTL)); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
