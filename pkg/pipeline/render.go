package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/render"
	"github.com/matzehuels/roomgen/pkg/roomgraph"
)

// Render produces one artifact per format in opts.Formats.
func Render(ctx context.Context, d *dungeon.Dungeon, opts Options) (map[string][]byte, error) {
	c, err := d.Canvas()
	if err != nil {
		return nil, fmt.Errorf("rebuild canvas: %w", err)
	}
	labelled := c
	if opts.Labels {
		labelled = Labelled(d, c)
	}

	var dot string
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(render.Text(labelled) + "\n")
		case FormatANSI:
			data = []byte(render.ANSI(labelled) + "\n")
		case FormatJSON:
			data, err = dungeon.Marshal(d)
		case FormatSVG:
			data = render.SVG(c, svgOptions(d, opts)...)
		case FormatDOT, FormatGraphSVG, FormatGraphPNG:
			if dot == "" {
				if dot, err = graphDOT(d); err != nil {
					return nil, err
				}
			}
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatGraphSVG:
				data, err = roomgraph.RenderSVG(ctx, dot)
			case FormatGraphPNG:
				data, err = roomgraph.RenderPNG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Labelled returns a copy of c with each room's ID written one cell inside
// its top-left corner.
func Labelled(d *dungeon.Dungeon, c *render.Canvas) *render.Canvas {
	out := c.Clone()
	for _, r := range d.Rooms {
		out.Annotate(r.Origin.Add(geom.Pt(1, 1)), strconv.Itoa(r.ID))
	}
	return out
}

func svgOptions(d *dungeon.Dungeon, opts Options) []render.SVGOption {
	var out []render.SVGOption
	if opts.CellSize > 0 {
		out = append(out, render.WithCellSize(opts.CellSize))
	}
	if opts.Glyphs {
		out = append(out, render.WithGlyphs())
	}
	if opts.Outlines || opts.Labels {
		out = append(out, render.WithOutlines(d.Outlines()))
	}
	if opts.Labels {
		out = append(out, render.WithRoomLabels())
	}
	return out
}

func graphDOT(d *dungeon.Dungeon) (string, error) {
	g, err := d.Graph()
	if err != nil {
		return "", fmt.Errorf("rebuild graph: %w", err)
	}
	return roomgraph.ToDOT(g, roomgraph.DOTOptions{Label: d.RoomLabel(), Directions: true}), nil
}
