package render

import (
	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// Label is the tile used by [Canvas.Annotate].
var Label = tiles.Tile{
	Name:  "label",
	Glyph: tiles.Glyph{FG: tiles.RGB{R: 255, G: 215}, BG: tiles.RGB{R: 5, G: 10, B: 20}},
}

// Canvas is a fully defined rectangle of tiles.
type Canvas struct {
	size  geom.Size
	cells []tiles.Tile
}

// NewCanvas returns a canvas filled with [tiles.Void].
func NewCanvas(size geom.Size) *Canvas {
	size = geom.Sz(max(size.H, 0), max(size.W, 0))
	c := &Canvas{size: size, cells: make([]tiles.Tile, size.Volume())}
	for i := range c.cells {
		c.cells[i] = tiles.Void
	}
	return c
}

// Composite paints every attached area of t onto a canvas the size of the
// root, parents first.
func Composite(t *area.Tree) *Canvas {
	c := NewCanvas(t.Root().Size())
	t.Walk(func(a *area.Area, origin geom.Point, _ int) bool {
		g := a.Tiles()
		for _, p := range a.Occupied().Points() {
			c.Set(origin.Add(p), g.At(p))
		}
		return true
	})
	return c
}

// Size returns the canvas size.
func (c *Canvas) Size() geom.Size { return c.size }

// At returns the tile at p, or Void outside the canvas.
func (c *Canvas) At(p geom.Point) tiles.Tile {
	if !c.size.Contains(p) {
		return tiles.Void
	}
	return c.cells[c.size.Index(p)]
}

// Set paints p. Points outside the canvas are ignored.
func (c *Canvas) Set(p geom.Point, t tiles.Tile) {
	if c.size.Contains(p) {
		c.cells[c.size.Index(p)] = t
	}
}

// Clone returns an independent copy.
func (c *Canvas) Clone() *Canvas {
	return &Canvas{size: c.size, cells: append([]tiles.Tile(nil), c.cells...)}
}

// Crop returns the window of c at origin with the given size. Cells past
// the canvas edge read as Void.
func (c *Canvas) Crop(origin geom.Point, size geom.Size) *Canvas {
	out := NewCanvas(size)
	for i := range out.cells {
		out.cells[i] = c.At(origin.Add(out.size.Point(i)))
	}
	return out
}

// Annotate writes text left to right starting at p using the [Label] tile.
// Runes past the right edge are dropped.
func (c *Canvas) Annotate(p geom.Point, text string) {
	for _, r := range text {
		t := Label
		t.Glyph.Rune = r
		c.Set(p, t)
		p.X++
	}
}

// Palette lists the distinct tiles on the canvas in first-seen row-major
// order.
func (c *Canvas) Palette() []tiles.Tile {
	var out []tiles.Tile
	seen := make(map[tiles.Tile]bool)
	for _, t := range c.cells {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
