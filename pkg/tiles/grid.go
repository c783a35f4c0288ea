package tiles

import (
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/mask"
)

// Grid is a rectangle of tiles with occupied and placeable masks.
type Grid struct {
	size      geom.Size
	occupied  *mask.Mask
	placeable *mask.Mask
	cells     []Tile
}

// NewGrid returns a fully occupied grid filled with t.
func NewGrid(size geom.Size, t Tile) *Grid {
	occupied := mask.Full(size)
	size = occupied.Size()
	g := &Grid{
		size:      size,
		occupied:  occupied,
		placeable: mask.Full(size),
		cells:     make([]Tile, size.Volume()),
	}
	for i := range g.cells {
		g.cells[i] = t
	}
	return g
}

// NewEmptyGrid returns an unoccupied grid of Void tiles.
func NewEmptyGrid(size geom.Size) *Grid {
	g := NewGrid(size, Void)
	g.occupied = mask.New(size)
	return g
}

// FromMask returns a grid whose occupied cells are m's set cells, filled with t.
func FromMask(m *mask.Mask, t Tile) *Grid {
	g := NewEmptyGrid(m.Size())
	g.occupied = m.Clone()
	g.Fill(t)
	return g
}

// =============================================================================
// Accessors
// =============================================================================

// Size returns the grid extent.
func (g *Grid) Size() geom.Size { return g.size }

// Occupied returns the occupied mask. Callers must not modify it.
func (g *Grid) Occupied() *mask.Mask { return g.occupied }

// Placeable returns the placeable mask. Callers must not modify it.
func (g *Grid) Placeable() *mask.Mask { return g.placeable }

// At returns the tile at p, or Void outside the grid.
func (g *Grid) At(p geom.Point) Tile {
	if !g.size.Contains(p) {
		return Void
	}
	return g.cells[g.size.Index(p)]
}

// Set writes t at p if p is occupied. It reports whether the write happened.
func (g *Grid) Set(p geom.Point, t Tile) bool {
	if !g.occupied.At(p) {
		return false
	}
	g.cells[g.size.Index(p)] = t
	return true
}

// Volume returns the number of occupied cells.
func (g *Grid) Volume() int {
	return g.occupied.Count()
}

// CommittedVolume returns the number of occupied cells that are no longer
// placeable.
func (g *Grid) CommittedVolume() int {
	n := 0
	for _, p := range g.occupied.Points() {
		if !g.placeable.At(p) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		size:      g.size,
		occupied:  g.occupied.Clone(),
		placeable: g.placeable.Clone(),
		cells:     make([]Tile, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// =============================================================================
// Filling
// =============================================================================

// Fill sets every occupied cell to t.
func (g *Grid) Fill(t Tile) {
	g.FillMask(geom.Point{}, g.occupied, t)
}

// FillBorder sets the 8-connected inner border of the occupied mask to t.
func (g *Grid) FillBorder(t Tile) {
	g.FillMask(geom.Point{}, g.occupied.InnerBorder(geom.Eight), t)
}

// FillMask sets t on every occupied cell covered by m placed at origin.
func (g *Grid) FillMask(origin geom.Point, m *mask.Mask, t Tile) {
	for _, p := range m.Points() {
		g.Set(p.Add(origin), t)
	}
}

// =============================================================================
// Placement
// =============================================================================

// IsPlaceableAt reports whether other placed at origin lies inside the grid and
// covers only placeable cells.
func (g *Grid) IsPlaceableAt(origin geom.Point, other *mask.Mask) bool {
	return g.placeable.IsSubsetAt(origin, other)
}

// IsSubsetAt reports whether other placed at origin covers only occupied cells.
func (g *Grid) IsSubsetAt(origin geom.Point, other *mask.Mask) bool {
	return g.occupied.IsSubsetAt(origin, other)
}

// CollidesAt reports whether other placed at origin overlaps an occupied cell.
func (g *Grid) CollidesAt(origin geom.Point, other *mask.Mask) bool {
	return g.occupied.CollidesAt(origin, other)
}

// SetUnplaceable clears placeability wherever other placed at origin is set.
func (g *Grid) SetUnplaceable(origin geom.Point, other *mask.Mask) {
	g.placeable.SubtractAt(origin, other)
}

// Merge pastes other's occupied cells and their payload at origin. Cells
// outside other's occupied mask, or outside g, are untouched. Pasted cells
// stay placeable only if they were placeable in both grids.
func (g *Grid) Merge(origin geom.Point, other *Grid) {
	for _, p := range other.occupied.Points() {
		q := p.Add(origin)
		if !g.size.Contains(q) {
			continue
		}
		i := g.size.Index(q)
		g.occupied.Set(q, true)
		g.cells[i] = other.cells[other.size.Index(p)]
		if !other.placeable.At(p) {
			g.placeable.Set(q, false)
		}
	}
}

// SubtractAt removes every cell covered by m placed at origin: it becomes
// unoccupied, unplaceable and Void.
func (g *Grid) SubtractAt(origin geom.Point, m *mask.Mask) {
	for _, p := range m.Points() {
		q := p.Add(origin)
		if !g.size.Contains(q) {
			continue
		}
		g.occupied.Set(q, false)
		g.placeable.Set(q, false)
		g.cells[g.size.Index(q)] = Void
	}
}

// Crop returns the size-sized window of g starting at origin. Window cells
// outside g are unoccupied.
func (g *Grid) Crop(origin geom.Point, size geom.Size) *Grid {
	c := NewEmptyGrid(size)
	c.placeable = g.placeable.Crop(origin, size)
	c.occupied = g.occupied.Crop(origin, size)
	for _, p := range c.occupied.Points() {
		c.cells[size.Index(p)] = g.cells[g.size.Index(p.Add(origin))]
	}
	return c
}

// Frontier returns the occupied cells facing d.
func (g *Grid) Frontier(d geom.Direction) *mask.Mask {
	return g.occupied.Frontier(d)
}

// InnerBorder returns the inner border of the occupied mask.
func (g *Grid) InnerBorder(c geom.Connectivity) *mask.Mask {
	return g.occupied.InnerBorder(c)
}

// Corners returns the interior corners of the placeable region facing d and
// its clockwise neighbour.
func (g *Grid) Corners(d geom.Direction) *mask.Mask {
	return g.placeable.Corners(d)
}

// =============================================================================
// Algebra
// =============================================================================

// Union returns a copy of g with other's occupied cells pasted over it.
func (g *Grid) Union(other *Grid) (*Grid, error) {
	if err := g.sameSize(other, "union"); err != nil {
		return nil, err
	}
	r := g.Clone()
	r.Merge(geom.Point{}, other)
	return r, nil
}

// Subtract returns a copy of g without other's occupied cells.
func (g *Grid) Subtract(other *Grid) (*Grid, error) {
	if err := g.sameSize(other, "subtraction"); err != nil {
		return nil, err
	}
	r := g.Clone()
	r.SubtractAt(geom.Point{}, other.occupied)
	return r, nil
}

// Intersect returns a copy of g restricted to other's occupied cells.
func (g *Grid) Intersect(other *Grid) (*Grid, error) {
	if err := g.sameSize(other, "intersection"); err != nil {
		return nil, err
	}
	r := g.Clone()
	r.SubtractAt(geom.Point{}, other.occupied.Complement())
	return r, nil
}

// Complement returns a grid occupying exactly g's unoccupied cells, filled
// with Void.
func (g *Grid) Complement() *Grid {
	return FromMask(g.occupied.Complement(), Void)
}

func (g *Grid) sameSize(other *Grid, op string) error {
	if g.size != other.size {
		return errors.New(errors.ErrCodeSizeMismatch, "%s of %v and %v grids", op, g.size, other.size)
	}
	return nil
}
