package roomgraph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roomgen/pkg/area"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Label returns the node label. Defaults to the room ID.
	Label func(area.ID) string

	// Directions annotates each edge with its placement direction.
	Directions bool
}

// ToDOT converts the graph to an undirected Graphviz document.
func ToDOT(g *Graph, opts DOTOptions) string {
	label := opts.Label
	if label == nil {
		label = func(id area.ID) string { return fmt.Sprintf("room %d", id) }
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "  r%d [label=%q];\n", n.Room, label(n.Room))
	}

	buf.WriteString("\n")
	for _, e := range g.edges {
		attrs := ""
		if e.Entrance == nil {
			attrs = " style=dashed"
		}
		if opts.Directions {
			attrs += fmt.Sprintf(" label=%q", e.Direction.String())
		}
		if attrs != "" {
			fmt.Fprintf(&buf, "  r%d -- r%d [%s];\n", e.A, e.B, attrs[1:])
		} else {
			fmt.Fprintf(&buf, "  r%d -- r%d;\n", e.A, e.B)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT document with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG lays out a DOT document with Graphviz and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
