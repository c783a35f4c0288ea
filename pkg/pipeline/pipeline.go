// Package pipeline runs generate → render with caching, for both the CLI and
// the HTTP server.
//
// # Stages
//
//  1. Generate: run the generator and snapshot the result as a
//     [dungeon.Dungeon]. Keyed by the generation options, since a seed and
//     options always reproduce the same dungeon.
//  2. Render: turn a snapshot into artifacts, one per requested format.
//     Keyed by the snapshot's content hash plus render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    42,
//	    Formats: []string{pipeline.FormatText, pipeline.FormatSVG},
//	})
//	fmt.Print(string(res.Artifacts[pipeline.FormatText]))
//
// Stages also run on their own: [Runner.Generate] for a snapshot and
// [Runner.Render] for re-rendering one loaded from disk or a store.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/cache"
	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/generator"
)

// =============================================================================
// Formats
// =============================================================================

// Output formats.
const (
	FormatText     = "text"
	FormatANSI     = "ansi"
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatGraphSVG = "graph-svg"
	FormatGraphPNG = "graph-png"
)

// Formats lists every supported format.
var Formats = []string{
	FormatText, FormatANSI, FormatJSON, FormatSVG,
	FormatDOT, FormatGraphSVG, FormatGraphPNG,
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case FormatText:
		return ".txt"
	case FormatANSI:
		return ".ans"
	case FormatGraphSVG:
		return ".graph.svg"
	case FormatGraphPNG:
		return ".graph.png"
	}
	return "." + format
}

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatText

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. Zero generation fields take the
// generator defaults.
type Options struct {
	// Generation
	Seed          uint64   `json:"seed" toml:"seed"`
	Height        int      `json:"height,omitempty" toml:"height"`
	Width         int      `json:"width,omitempty" toml:"width"`
	Density       float64  `json:"density,omitempty" toml:"density"`
	Retries       int      `json:"retries,omitempty" toml:"retries"`
	RoomMin       float64  `json:"room_min,omitempty" toml:"room_min"`
	RoomMax       float64  `json:"room_max,omitempty" toml:"room_max"`
	LShapeChance  *float64 `json:"l_shape_chance,omitempty" toml:"l_shape_chance"`
	FurnishChance float64  `json:"furnish_chance,omitempty" toml:"furnish_chance"`
	NoEntrances   bool     `json:"no_entrances,omitempty" toml:"no_entrances"`
	Parallel      bool     `json:"parallel,omitempty" toml:"parallel"`
	Refresh       bool     `json:"refresh,omitempty" toml:"-"`

	// Render
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	CellSize int      `json:"cell_size,omitempty" toml:"cell_size"`
	Glyphs   bool     `json:"glyphs,omitempty" toml:"glyphs"`
	Outlines bool     `json:"outlines,omitempty" toml:"outlines"`
	Labels   bool     `json:"labels,omitempty" toml:"labels"`

	Logger *log.Logger `json:"-" toml:"-"`
}

// SetGenerateDefaults fills zero generation fields. A nil LShapeChance takes
// the default; an explicit zero disables L-shaped rooms.
func (o *Options) SetGenerateDefaults() {
	d := generator.DefaultOptions(o.Seed)
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Density == 0 {
		o.Density = d.Density
	}
	if o.Retries == 0 {
		o.Retries = d.Retries
	}
	if o.RoomMin == 0 {
		o.RoomMin = d.RoomMin
	}
	if o.RoomMax == 0 {
		o.RoomMax = d.RoomMax
	}
	if o.LShapeChance == nil {
		p := d.LShapeChance
		o.LShapeChance = &p
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills zero render fields and lowercases formats.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGenerate applies generation defaults and validates them.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	return o.GeneratorOptions().Validate()
}

// ValidateForRender applies render defaults and validates them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, Formats); err != nil {
			return err
		}
	}
	if o.CellSize < 0 || o.CellSize > 64 {
		return errors.New(errors.ErrCodeInvalidInput, "cell size must be in [0, 64], got %d", o.CellSize)
	}
	return nil
}

// ValidateAndSetDefaults prepares o for a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// GeneratorOptions converts o for the generator.
func (o *Options) GeneratorOptions() generator.Options {
	return generator.Options{
		Seed:           o.Seed,
		Height:         o.Height,
		Width:          o.Width,
		Density:        o.Density,
		Retries:        o.Retries,
		RoomMin:        o.RoomMin,
		RoomMax:        o.RoomMax,
		LShapeChance:   o.lShapeChance(),
		FurnishChance:  o.FurnishChance,
		CarveEntrances: !o.NoEntrances,
		Parallel:       o.Parallel,
	}
}

func (o *Options) lShapeChance() float64 {
	if o.LShapeChance == nil {
		return generator.DefaultLShapeChance
	}
	return *o.LShapeChance
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.CellSize, k.Glyphs, k.Outlines, k.Labels = o.CellSize, o.Glyphs, o.Outlines, o.Labels
	case FormatText, FormatANSI:
		k.Labels = o.Labels
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result is the output of [Runner.Execute].
type Result struct {
	Dungeon   *dungeon.Dungeon
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds stage timings.
type Stats struct {
	Rooms        int
	Density      float64
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	GenerateHit bool
	RenderHit   bool
}
