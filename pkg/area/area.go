package area

import (
	"math/rand/v2"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/mask"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// ID identifies an area inside a [Tree].
type ID int

// NoID marks an area that has not been placed, or the root's parent.
const NoID ID = -1

// Shape is anything with an occupied footprint.
type Shape interface {
	Occupied() *mask.Mask
}

// Area is a tile grid positioned relative to a parent.
type Area struct {
	// Kind is a free-form label such as "room" or "l-room".
	Kind string

	origin   geom.Point
	tiles    *tiles.Grid
	id       ID
	parent   ID
	children []ID
}

// New returns an unplaced area wrapping g.
func New(g *tiles.Grid, kind string) *Area {
	return &Area{Kind: kind, tiles: g, id: NoID, parent: NoID}
}

// ID returns the area's identifier, or NoID if it is not part of a tree.
func (a *Area) ID() ID { return a.id }

// Parent returns the parent's ID, or NoID for the root and unplaced areas.
func (a *Area) Parent() ID { return a.parent }

// Children returns the child IDs in placement order.
func (a *Area) Children() []ID {
	out := make([]ID, len(a.children))
	copy(out, a.children)
	return out
}

// Placed reports whether the area belongs to a tree.
func (a *Area) Placed() bool { return a.id != NoID }

// Origin returns the position of the area in its parent's coordinates.
func (a *Area) Origin() geom.Point { return a.origin }

// MoveTo sets the origin of an unplaced area.
func (a *Area) MoveTo(p geom.Point) error {
	if a.Placed() {
		return errors.New(errors.ErrCodePlacement, "area %d is already placed", a.id)
	}
	a.origin = p
	return nil
}

// Tiles returns the area's grid.
func (a *Area) Tiles() *tiles.Grid { return a.tiles }

// Occupied returns the area's footprint.
func (a *Area) Occupied() *mask.Mask { return a.tiles.Occupied() }

// Size returns the area's bounding box.
func (a *Area) Size() geom.Size { return a.tiles.Size() }

// Volume returns the number of occupied cells.
func (a *Area) Volume() int {
	return a.tiles.Volume()
}

// Density returns the fraction of the occupied volume that is no longer
// placeable. An empty area has density 0.
func (a *Area) Density() float64 {
	v := a.Volume()
	if v == 0 {
		return 0
	}
	return float64(a.tiles.CommittedVolume()) / float64(v)
}

// Choose returns a uniformly random candidate.
func Choose(rng *rand.Rand, candidates []geom.Point) (geom.Point, bool) {
	if len(candidates) == 0 {
		return geom.Point{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}
