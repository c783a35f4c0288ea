package room

import (
	"math/rand/v2"

	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// Kind selects the room shape.
type Kind int

// Room shapes.
const (
	Rectangular Kind = iota
	LShaped
	Furnished
)

var kindNames = map[Kind]string{
	Rectangular: "room",
	LShaped:     "l-room",
	Furnished:   "furnished-room",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Variant describes a room shape.
type Variant struct {
	Kind Kind

	// NotchSize is the notch cut from an LShaped room. The zero value samples
	// a size from the room dimensions.
	NotchSize geom.Size

	// NotchCorner names the notched corner: the direction and its clockwise
	// neighbour. Nil samples a corner.
	NotchCorner *geom.Direction
}

// Rect returns the rectangular variant.
func Rect() Variant {
	return Variant{Kind: Rectangular}
}

// LShape returns an L-shaped variant with a sampled notch corner and size.
func LShape() Variant {
	return Variant{Kind: LShaped}
}

// LShapeAt returns an L-shaped variant notched at corner.
func LShapeAt(corner geom.Direction) Variant {
	return Variant{Kind: LShaped, NotchCorner: &corner}
}

// Furnish returns the furnished variant: an L-shaped room with a carpet and
// columns. NotchSize and NotchCorner apply as for LShaped.
func Furnish() Variant {
	return Variant{Kind: Furnished}
}

// minSide is the smallest side that leaves a floor cell inside the walls.
const minSide = 3

// Footprint builds the tile grid for a room of the given size and variant.
func Footprint(size geom.Size, v Variant, rng *rand.Rand) (*tiles.Grid, error) {
	if _, err := geom.NewSize(size.H, size.W); err != nil {
		return nil, err
	}
	if size.H < minSide || size.W < minSide {
		return nil, errors.New(errors.ErrCodeInvalidSize, "room %v smaller than %dx%d", size, minSide, minSide)
	}

	g := tiles.NewGrid(size, tiles.Floor)
	g.FillBorder(tiles.Wall)

	switch v.Kind {
	case Rectangular:
	case LShaped, Furnished:
		if err := notch(g, v, rng); err != nil {
			return nil, err
		}
		g.FillBorder(tiles.Wall)
		if v.Kind == Furnished {
			g.SetUnplaceable(geom.Point{}, g.InnerBorder(geom.Eight))
			furnish(g, rng)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown room kind %d", v.Kind)
	}

	g.SetUnplaceable(geom.Point{}, g.InnerBorder(geom.Eight))
	return g, nil
}

// New builds an unplaced area for a room of the given size and variant.
func New(size geom.Size, v Variant, rng *rand.Rand) (*area.Area, error) {
	g, err := Footprint(size, v, rng)
	if err != nil {
		return nil, err
	}
	return area.New(g, v.Kind.String()), nil
}

// NotchRange returns the notch dimensions sampled for a room of the given
// size: between size/2.5 and size/1.5 on each side, kept at least one cell
// short of the room.
func NotchRange(size geom.Size) DimensionRange {
	clamp := func(v, side int) int { return min(max(v, 1), side-1) }
	return DimensionRange{
		Min: geom.Sz(clamp(size.H*2/5, size.H), clamp(size.W*2/5, size.W)),
		Max: geom.Sz(clamp(size.H*2/3, size.H), clamp(size.W*2/3, size.W)),
	}
}

func notch(g *tiles.Grid, v Variant, rng *rand.Rand) error {
	size := g.Size()
	var corner geom.Direction
	if v.NotchCorner != nil {
		corner = *v.NotchCorner
	} else {
		corner = geom.Direction(rng.IntN(4))
	}
	if !corner.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid notch corner %d", int(corner))
	}

	ns := v.NotchSize
	if ns == (geom.Size{}) {
		ns = NotchRange(size).Sample(rng)
	}
	if ns.H < 1 || ns.W < 1 || ns.H >= size.H || ns.W >= size.W {
		return errors.New(errors.ErrCodeInvalidSize, "notch %v does not fit room %v", ns, size)
	}

	cut := tiles.NewGrid(ns, tiles.Void)
	origin, ok := area.Choose(rng, area.New(g, "").FitInCorner(cut, corner))
	if !ok {
		return errors.New(errors.ErrCodePlacement, "no %v corner for notch %v in room %v", corner, ns, size)
	}
	g.SubtractAt(origin, cut.Occupied())
	return nil
}

// furnish drops a carpet into a corner and two rows of columns one cell off
// the walls. Pieces that find no room are skipped.
func furnish(g *tiles.Grid, rng *rand.Rand) {
	a := area.New(g, "")
	size := g.Size()

	carpetRange := DimensionRange{
		Min: geom.Sz(max(1, size.H/4), max(1, size.W/4)),
		Max: geom.Sz(max(1, size.H/3), max(1, size.W/3)),
	}
	carpet := tiles.NewGrid(carpetRange.Sample(rng), tiles.Carpet)
	if o, ok := area.Choose(rng, a.FitInCorner(carpet)); ok {
		stamp(g, o, carpet)
	}

	for _, d := range []geom.Direction{geom.West, geom.North} {
		for range 3 {
			column := tiles.NewGrid(geom.Sz(2, 2), tiles.Column)
			o, ok := area.Choose(rng, a.FitInTouchingBorder(column, d, 1))
			if !ok {
				break
			}
			stamp(g, o, column)
		}
	}
}

func stamp(g *tiles.Grid, origin geom.Point, piece *tiles.Grid) {
	g.Merge(origin, piece)
	g.SetUnplaceable(origin, piece.Occupied())
}
