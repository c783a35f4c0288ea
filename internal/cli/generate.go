package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/generator"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/render"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	pipeline pipeline.Options
	lShape   float64 // --l-shape; stored as a pointer on pipeline options
	formats  string  // comma-separated output formats
	output   string  // output file (single format) or base path
	noCache  bool    // bypass the artifact cache
	stats    bool    // print the statistics table
	save     bool    // put the snapshot into the configured store
	out      io.Writer
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		pipeline: pipeline.Options{CellSize: render.DefaultCellSize},
	}
	defaultGenerateFlags(&opts.pipeline, &opts.lShape)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dungeon",
		Long: `Generate a dungeon from a seed.

Without --seed a random seed is drawn and reported, so any map can be
regenerated later. A single text, ansi or dot output goes to stdout unless
--output is given; other formats are written to files.`,
		Example: `  roomgen generate --seed 42
  roomgen generate --seed 42 -f svg,json -o maps/level1
  roomgen generate --height 40 --width 100 --density 0.6 --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyGenerateFlags(cmd, &opts.pipeline, opts.lShape)
			if f := parseFormats(opts.formats); len(f) > 0 {
				opts.pipeline.Formats = f
			}
			c.config.Render.applyRender(cmd, &opts.pipeline)
			opts.pipeline.SetRenderDefaults()

			opts.out = cmd.OutOrStdout()
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGenerate(ctx, &opts)
		},
	}

	addGenerateFlags(cmd, &opts.pipeline, &opts.lShape)
	addRenderFlags(cmd, &opts.pipeline, &opts.formats, &opts.output)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.pipeline.Refresh, "refresh", false, "regenerate even when cached")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print generation statistics")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the dungeon to the configured store")

	return cmd
}

// runGenerate executes the pipeline and writes or prints its artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	opts.pipeline.Logger = logger
	res, err := runner.Execute(ctx, opts.pipeline)
	if err != nil {
		return err
	}
	d := res.Dungeon
	prog.stage("pipeline", "formats", len(res.Artifacts))

	stdout := toStdout(opts.output, opts.pipeline.Formats)
	fallback := fmt.Sprintf("dungeon-%d", d.Seed)
	paths, err := writeArtifacts(opts.out, opts.output, fallback, opts.pipeline.Formats, res.Artifacts)
	if err != nil {
		return err
	}
	prog.stage("write", "files", len(paths))
	prog.done("generated dungeon", append(dungeonFields(d), "cached", res.CacheInfo.GenerateHit)...)

	if !stdout {
		printSuccess("Dungeon %s", StyleNumber.Render(fmt.Sprint(d.Seed)))
		printStats(len(d.Rooms), len(d.Edges), d.Density, res.CacheInfo.GenerateHit)
		for _, p := range paths {
			printFile(p)
		}
	}
	if opts.stats {
		fmt.Println(statsTable(d.Stats).Render())
	}
	if d.Density < d.Target {
		logger.Warn("frontier exhausted before target density",
			"density", fmt.Sprintf("%.3f", d.Density),
			"target", d.Target)
	}

	if opts.save {
		st, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.Put(ctx, d)
		if err != nil {
			return fmt.Errorf("save dungeon: %w", err)
		}
		if !stdout {
			printKeyValue("Saved", id)
			printNextStep("Render it again", "roomgen render --id "+id+" -f svg")
		} else {
			logger.Info("saved dungeon", "id", id)
		}
	}
	return nil
}

// =============================================================================
// Shared Flags
// =============================================================================

// defaultGenerateFlags seeds o with the generator defaults so flag help
// shows them.
func defaultGenerateFlags(o *pipeline.Options, lShape *float64) {
	d := generator.DefaultOptions(0)
	o.Height, o.Width = d.Height, d.Width
	o.Density = d.Density
	o.Retries = d.Retries
	o.RoomMin, o.RoomMax = d.RoomMin, d.RoomMax
	o.FurnishChance = d.FurnishChance
	*lShape = d.LShapeChance
}

// addGenerateFlags registers the generation flags shared by generate and view.
func addGenerateFlags(cmd *cobra.Command, o *pipeline.Options, lShape *float64) {
	f := cmd.Flags()
	f.Uint64Var(&o.Seed, "seed", 0, "random seed (default: random)")
	f.IntVar(&o.Height, "height", o.Height, "map height in cells")
	f.IntVar(&o.Width, "width", o.Width, "map width in cells")
	f.Float64Var(&o.Density, "density", o.Density, "target fraction of the map covered by rooms")
	f.IntVar(&o.Retries, "retries", o.Retries, "placement attempts per step")
	f.Float64Var(&o.RoomMin, "room-min", o.RoomMin, "smallest room side as a fraction of the map")
	f.Float64Var(&o.RoomMax, "room-max", o.RoomMax, "largest room side as a fraction of the map")
	f.Float64Var(lShape, "l-shape", *lShape, "chance of an L-shaped room")
	f.Float64Var(&o.FurnishChance, "furnish", o.FurnishChance, "chance of a furnished room")
	f.BoolVar(&o.NoEntrances, "no-entrances", false, "do not carve doors between rooms")
	f.BoolVar(&o.Parallel, "parallel", false, "search placement directions concurrently")
}

// addRenderFlags registers the output flags.
func addRenderFlags(cmd *cobra.Command, o *pipeline.Options, formats, output *string) {
	f := cmd.Flags()
	f.StringVarP(formats, "format", "f", "", "output format(s): text (default), ansi, json, svg, dot, graph-svg, graph-png")
	f.StringVarP(output, "output", "o", "", "output file (single format) or base path; - for stdout")
	f.IntVar(&o.CellSize, "cell-size", o.CellSize, "SVG cell size in pixels")
	f.BoolVar(&o.Glyphs, "glyphs", false, "draw tile glyphs in SVG output")
	f.BoolVar(&o.Outlines, "outlines", false, "outline rooms in SVG output")
	f.BoolVar(&o.Labels, "labels", false, "label rooms with their ids")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// applyGenerateFlags merges the config profile into o and draws a seed
// when none was given.
func (c *CLI) applyGenerateFlags(cmd *cobra.Command, o *pipeline.Options, lShape float64) {
	c.config.Generate.applyGenerate(cmd, o, lShape)
	if !cmd.Flags().Changed("seed") {
		o.Seed = rand.Uint64()
	}
}
