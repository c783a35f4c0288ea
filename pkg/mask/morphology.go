package mask

import (
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
)

// StructuringElement is a small pattern matched by [HitOrMiss]. Origin is the
// cell of Pattern that is aligned with the cell under test.
type StructuringElement struct {
	Pattern *Mask
	Origin  geom.Point
}

// Corner elements, indexed by direction. Each marks the cell whose neighbours
// towards the direction and its clockwise neighbour are all background:
//
//	North  ..   origin (1,0)   north-east corner
//	       #.
//	East   #.   origin (0,0)   south-east corner
//	       ..
//	South  .#   origin (0,1)   south-west corner
//	       ..
//	West   ..   origin (1,1)   north-west corner
//	       .#
var cornerElements = [4]StructuringElement{
	geom.North: {Pattern: MustParse("..", "#."), Origin: geom.Pt(1, 0)},
	geom.East:  {Pattern: MustParse("#.", ".."), Origin: geom.Pt(0, 0)},
	geom.South: {Pattern: MustParse(".#", ".."), Origin: geom.Pt(0, 1)},
	geom.West:  {Pattern: MustParse("..", ".#"), Origin: geom.Pt(1, 1)},
}

// CornerElement returns the structuring element used by [Mask.Corners] for d.
func CornerElement(d geom.Direction) StructuringElement {
	return cornerElements[d]
}

// HitOrMiss marks every cell i of in for which the window of in aligned so
// that se.Origin sits on i equals se.Pattern exactly. Window cells outside in
// are not compared.
func HitOrMiss(in *Mask, se StructuringElement) (*Mask, error) {
	if !se.Pattern.size.Contains(se.Origin) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"structuring element origin %v outside pattern %v", se.Origin, se.Pattern.size)
	}
	r := New(in.size)
	for i := range in.cells {
		o := in.size.Point(i).Sub(se.Origin)
		r.cells[i] = matchesAt(in, se.Pattern, o)
	}
	return r, nil
}

func matchesAt(in, pattern *Mask, o geom.Point) bool {
	for j, want := range pattern.cells {
		p := pattern.size.Point(j).Add(o)
		if !in.size.Contains(p) {
			continue
		}
		if in.cells[in.size.Index(p)] != want {
			return false
		}
	}
	return true
}

// Corners returns the interior corner cells of m facing d and d's clockwise
// neighbour. On a filled rectangle Corners(North) is the single north-east
// cell.
func (m *Mask) Corners(d geom.Direction) *Mask {
	// Corner elements always have their origin inside the pattern.
	r, _ := HitOrMiss(m, cornerElements[d])
	return r
}
