package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/roomgen/pkg/geom"
)

// DefaultCellSize is the SVG cell edge in pixels.
const DefaultCellSize = 12

// Outline marks a room's bounding box in SVG output.
type Outline struct {
	ID     int
	Origin geom.Point
	Size   geom.Size
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cell     int
	glyphs   bool
	outlines []Outline
	labels   bool
}

func WithCellSize(px int) SVGOption      { return func(r *svgRenderer) { r.cell = px } }
func WithGlyphs() SVGOption              { return func(r *svgRenderer) { r.glyphs = true } }
func WithOutlines(o []Outline) SVGOption { return func(r *svgRenderer) { r.outlines = o } }
func WithRoomLabels() SVGOption          { return func(r *svgRenderer) { r.labels = true } }

// SVG renders c as a grid of coloured cells. Horizontal runs of equal
// background share one rect.
func SVG(c *Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{cell: DefaultCellSize}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cell <= 0 {
		r.cell = DefaultCellSize
	}

	w, h := c.size.W*r.cell, c.size.H*r.cell
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <style>text { font-family: monospace; font-size: %dpx; text-anchor: middle; dominant-baseline: central; }</style>`+"\n", r.cell)

	for y := 0; y < c.size.H; y++ {
		for x := 0; x < c.size.W; {
			bg := c.At(geom.Pt(y, x)).Glyph.BG
			end := x + 1
			for end < c.size.W && c.At(geom.Pt(y, end)).Glyph.BG == bg {
				end++
			}
			fmt.Fprintf(&buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				x*r.cell, y*r.cell, (end-x)*r.cell, r.cell, bg.Hex())
			x = end
		}
	}

	if r.glyphs {
		for y := 0; y < c.size.H; y++ {
			for x := 0; x < c.size.W; x++ {
				g := c.At(geom.Pt(y, x)).Glyph
				if g.Rune == ' ' {
					continue
				}
				fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="%s">%s</text>`+"\n",
					x*r.cell+r.cell/2, y*r.cell+r.cell/2, g.FG.Hex(), html.EscapeString(string(g.Rune)))
			}
		}
	}

	for _, o := range r.outlines {
		fmt.Fprintf(&buf, `  <rect id="room-%d" class="room" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#ffd700" stroke-width="1"/>`+"\n",
			o.ID, o.Origin.X*r.cell, o.Origin.Y*r.cell, o.Size.W*r.cell, o.Size.H*r.cell)
		if r.labels {
			fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="#ffd700">%d</text>`+"\n",
				(o.Origin.X*2+o.Size.W)*r.cell/2, (o.Origin.Y*2+o.Size.H)*r.cell/2, o.ID)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
