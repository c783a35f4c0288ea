package room

import (
	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// Entrance is a pair of facing wall cells, one in each of two adjacent rooms,
// expressed in the rooms' shared parent coordinates.
type Entrance struct {
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
}

// FindEntrances lists the wall pairs between a and b, where b lies directly
// beyond a along d. Each pair is backed by walkable cells on both sides, so
// carving it yields a passage. Both rooms must share a parent.
func FindEntrances(a, b *area.Area, d geom.Direction) []Entrance {
	var out []Entrance
	ga, gb := a.Tiles(), b.Tiles()
	for _, p := range a.Occupied().Frontier(d).Points() {
		pb := p.Add(a.Origin()).Step(d, 1)
		q := pb.Sub(b.Origin())
		if !b.Occupied().At(q) {
			continue
		}
		if ga.At(p).Walkable || !ga.At(p.Step(d.Opposite(), 1)).Walkable {
			continue
		}
		if gb.At(q).Walkable || !gb.At(q.Step(d, 1)).Walkable {
			continue
		}
		out = append(out, Entrance{A: p.Add(a.Origin()), B: pb})
	}
	return out
}

// MakeEntrance turns the wall at p, in a's local coordinates, into a door. It
// reports false if p is not an occupied cell of a.
func MakeEntrance(a *area.Area, p geom.Point) bool {
	return a.Tiles().Set(p, tiles.Door)
}

// CarveEntrance turns both cells of e into doors.
func CarveEntrance(a, b *area.Area, e Entrance) bool {
	okA := MakeEntrance(a, e.A.Sub(a.Origin()))
	okB := MakeEntrance(b, e.B.Sub(b.Origin()))
	return okA && okB
}

// Facing lists the directions d along which some cell of b lies directly
// beyond a frontier cell of a. Both rooms must share a parent.
func Facing(a, b *area.Area) []geom.Direction {
	var out []geom.Direction
	for _, d := range geom.Directions {
		for _, p := range a.Occupied().Frontier(d).Points() {
			if b.Occupied().At(p.Add(a.Origin()).Step(d, 1).Sub(b.Origin())) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
