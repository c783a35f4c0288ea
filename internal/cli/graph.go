package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// graphFormats maps the graph command's short format names to pipeline formats.
var graphFormats = map[string]string{
	"dot": pipeline.FormatDOT,
	"svg": pipeline.FormatGraphSVG,
	"png": pipeline.FormatGraphPNG,
}

// graphCommand creates the graph command, which exports room adjacency.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		id      string
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "graph [dungeon.json]",
		Short: "Export the room graph of a saved dungeon",
		Long: `Export which rooms connect to which. Nodes are rooms labelled with their
id and kind; edges carry the side of the first room they leave through.
DOT goes to stdout by default, SVG and PNG are laid out with Graphviz.`,
		Example: `  roomgen graph dungeon-42.json
  roomgen graph dungeon-42.json -f png -o rooms.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, ok := graphFormats[format]
			if !ok {
				return fmt.Errorf("unknown graph format %q (dot, svg, png)", format)
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			d, source, err := c.loadDungeon(ctx, args, id)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			formats := []string{pf}
			artifacts, err := runner.Render(ctx, d, pipeline.Options{Formats: formats, Logger: c.Logger})
			if err != nil {
				return err
			}
			paths, err := writeArtifacts(cmd.OutOrStdout(), output, source, formats, artifacts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				printSuccess("Room graph: %d rooms, %d edges", len(d.Rooms), len(d.Edges))
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "export a dungeon from the configured store")
	_ = cmd.RegisterFlagCompletionFunc("id", c.completeStoredIDs)
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "graph format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
