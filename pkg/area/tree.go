package area

import (
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
)

// Tree owns a hierarchy of areas.
type Tree struct {
	areas []*Area
}

// NewTree makes root the root of a new tree.
func NewTree(root *Area) *Tree {
	root.id = 0
	root.parent = NoID
	root.origin = geom.Point{}
	return &Tree{areas: []*Area{root}}
}

// Root returns the root area.
func (t *Tree) Root() *Area { return t.areas[0] }

// Len returns the number of areas ever placed, including the root.
func (t *Tree) Len() int { return len(t.areas) }

// Get returns the area with the given ID.
func (t *Tree) Get(id ID) (*Area, bool) {
	if id < 0 || int(id) >= len(t.areas) {
		return nil, false
	}
	return t.areas[id], true
}

// PlaceIn commits a as a child of parent at a's origin.
//
// It fails with PLACEMENT_ERROR, leaving the tree untouched, when a is already
// placed or its footprint is not a subset of the parent's placeable cells.
func (t *Tree) PlaceIn(parent ID, a *Area) (ID, error) {
	p, ok := t.Get(parent)
	if !ok {
		return NoID, errors.New(errors.ErrCodeNotFound, "parent area %d not found", parent)
	}
	if a.Placed() {
		return NoID, errors.New(errors.ErrCodePlacement, "area %d is already placed", a.id)
	}
	if !p.tiles.IsPlaceableAt(a.origin, a.Occupied()) {
		return NoID, errors.New(errors.ErrCodePlacement,
			"%s %v does not fit at %v in area %d", a.Kind, a.Size(), a.origin, parent)
	}

	a.id = ID(len(t.areas))
	a.parent = parent
	t.areas = append(t.areas, a)
	p.children = append(p.children, a.id)
	p.tiles.SetUnplaceable(a.origin, a.Occupied())
	return a.id, nil
}

// PlaceAt moves a to origin and commits it under parent.
func (t *Tree) PlaceAt(parent ID, a *Area, origin geom.Point) (ID, error) {
	if err := a.MoveTo(origin); err != nil {
		return NoID, err
	}
	return t.PlaceIn(parent, a)
}

// Detach removes id from its parent's children. The parent's placeable mask
// is not restored.
func (t *Tree) Detach(id ID) error {
	a, ok := t.Get(id)
	if !ok || a.parent == NoID {
		return errors.New(errors.ErrCodeNotFound, "area %d is not a child", id)
	}
	p := t.areas[a.parent]
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	a.parent = NoID
	return nil
}

// IsChild reports whether child is a direct child of parent.
func (t *Tree) IsChild(parent, child ID) bool {
	c, ok := t.Get(child)
	return ok && c.parent == parent && parent != NoID
}

// AbsoluteOrigin returns id's origin in root coordinates.
func (t *Tree) AbsoluteOrigin(id ID) geom.Point {
	var p geom.Point
	for a, ok := t.Get(id); ok && a.parent != NoID; a, ok = t.Get(a.parent) {
		p = p.Add(a.origin)
	}
	return p
}

// Walk visits every attached area depth-first, parents before children,
// passing the absolute origin and depth. Returning false skips the subtree.
func (t *Tree) Walk(fn func(a *Area, origin geom.Point, depth int) bool) {
	t.walk(t.Root(), geom.Point{}, 0, fn)
}

func (t *Tree) walk(a *Area, origin geom.Point, depth int, fn func(*Area, geom.Point, int) bool) {
	if !fn(a, origin, depth) {
		return
	}
	for _, id := range a.children {
		c := t.areas[id]
		t.walk(c, origin.Add(c.origin), depth+1, fn)
	}
}
