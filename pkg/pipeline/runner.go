package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/cache"
	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/generator"
	"github.com/matzehuels/roomgen/pkg/observability"
)

// Runner executes pipeline stages against a cache. It holds no per-run
// state, so one Runner serves concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner fills nil arguments with a null cache, the default keyer and the
// default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute generates a dungeon and renders every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{}

	start := time.Now()
	d, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	res.Dungeon = d
	res.CacheInfo.GenerateHit = hit
	res.Stats.GenerateTime = time.Since(start)
	res.Stats.Rooms = len(d.Rooms)
	res.Stats.Density = d.Density

	r.Logger.Info("generated dungeon",
		"seed", d.Seed,
		"rooms", len(d.Rooms),
		"density", fmt.Sprintf("%.3f", d.Density),
		"cached", hit,
		"duration", res.Stats.GenerateTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.CacheInfo.RenderHit = hit
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)
	return res, nil
}

// GenerateWithCacheInfo returns the dungeon for opts and whether it came
// from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*dungeon.Dungeon, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	genOpts := opts.GeneratorOptions()
	key := r.Keyer.DungeonKey(genOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := dungeon.Unmarshal(data); err == nil {
				r.Logger.Debug("dungeon cache hit", "key", key)
				return d, true, nil
			}
		}
	}

	res, err := generator.Generate(ctx, genOpts)
	if err != nil {
		return nil, false, err
	}
	d := dungeon.FromResult(res)
	r.Logger.Debug("generation finished",
		"iterations", res.Iterations,
		"retired", res.Retired,
		"duration", res.Duration)

	if data, err := dungeon.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLDungeon); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return d, false, nil
}

// Generate is GenerateWithCacheInfo without the hit flag.
func (r *Runner) Generate(ctx context.Context, opts Options) (*dungeon.Dungeon, error) {
	d, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return d, err
}

// RenderWithCacheInfo renders d and reports whether every artifact came
// from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *dungeon.Dungeon, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	hash, err := ContentHash(d)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !cacheable(format) {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
		} else {
			missing = append(missing, format)
		}
	}
	if len(missing) == 0 {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, d, sub)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if !cacheable(format) {
			continue
		}
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, d *dungeon.Dungeon, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheable excludes JSON, which embeds the snapshot ID and timestamp.
func cacheable(format string) bool {
	return format != FormatJSON
}

// ContentHash hashes the parts of d that determine rendered output: tiles,
// rooms and edges. ID and timestamps are excluded.
func ContentHash(d *dungeon.Dungeon) (string, error) {
	data, err := json.Marshal(struct {
		Tiles any `json:"tiles"`
		Rooms any `json:"rooms"`
		Edges any `json:"edges"`
	}{d.Tiles, d.Rooms, d.Edges})
	if err != nil {
		return "", fmt.Errorf("hash dungeon: %w", err)
	}
	return cache.Hash(data), nil
}
