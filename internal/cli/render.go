package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	pipeline pipeline.Options
	id       string // load from the store instead of a file
	formats  string // comma-separated output formats
	output   string // output file (single format) or base path
	noCache  bool   // bypass the artifact cache
	out      io.Writer
}

// renderCommand creates the render command for saved snapshots.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		pipeline: pipeline.Options{CellSize: render.DefaultCellSize},
	}

	cmd := &cobra.Command{
		Use:   "render [dungeon.json]",
		Short: "Render a saved dungeon",
		Long: `Render a dungeon snapshot written by "generate -f json" or saved with
"generate --save". The map is rebuilt from the snapshot, so rendering never
regenerates it.`,
		Example: `  roomgen render dungeon-42.json -f svg --outlines --labels
  roomgen render --id 0b7c9a3e-... -f ansi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f := parseFormats(opts.formats); len(f) > 0 {
				opts.pipeline.Formats = f
			}
			c.config.Render.applyRender(cmd, &opts.pipeline)
			opts.pipeline.SetRenderDefaults()

			opts.out = cmd.OutOrStdout()
			ctx := withLogger(cmd.Context(), c.Logger)
			d, source, err := c.loadDungeon(ctx, args, opts.id)
			if err != nil {
				return err
			}
			return c.runRender(ctx, d, source, &opts)
		},
	}

	addRenderFlags(cmd, &opts.pipeline, &opts.formats, &opts.output)
	cmd.Flags().StringVar(&opts.id, "id", "", "render a dungeon from the configured store")
	_ = cmd.RegisterFlagCompletionFunc("id", c.completeStoredIDs)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, d *dungeon.Dungeon, source string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, d, opts.pipeline)
	if err != nil {
		return err
	}
	prog.stage("render", "formats", strings.Join(opts.pipeline.Formats, ","), "cached", hit)

	stdout := toStdout(opts.output, opts.pipeline.Formats)
	paths, err := writeArtifacts(opts.out, opts.output, source, opts.pipeline.Formats, artifacts)
	if err != nil {
		return err
	}
	prog.done("rendered dungeon", dungeonFields(d)...)
	if !stdout {
		printSuccess("Rendered dungeon %s", StyleNumber.Render(fmt.Sprint(d.Seed)))
		printStats(len(d.Rooms), len(d.Edges), d.Density, hit)
		for _, p := range paths {
			printFile(p)
		}
	}
	return nil
}

// loadDungeon reads a snapshot from the file in args or from the store by
// id. It returns the snapshot and a base name for derived output files.
func (c *CLI) loadDungeon(ctx context.Context, args []string, id string) (*dungeon.Dungeon, string, error) {
	switch {
	case id != "" && len(args) > 0:
		return nil, "", fmt.Errorf("give either a file or --id, not both")
	case id != "":
		st, err := c.newStore(ctx)
		if err != nil {
			return nil, "", err
		}
		defer st.Close()
		d, err := st.Get(ctx, id)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", id, err)
		}
		return d, "dungeon-" + id, nil
	case len(args) == 1:
		d, err := dungeon.Import(args[0])
		if err != nil {
			return nil, "", err
		}
		if err := d.Validate(); err != nil {
			return nil, "", fmt.Errorf("%s: %w", args[0], err)
		}
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		return d, filepath.Join(filepath.Dir(args[0]), base), nil
	}
	return nil, "", fmt.Errorf("a dungeon file or --id is required")
}
