package area

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/mask"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

func newMap(h, w int) *Tree {
	return NewTree(New(tiles.NewGrid(geom.Sz(h, w), tiles.Wall), "map"))
}

func block(h, w int) *Area {
	return New(tiles.NewGrid(geom.Sz(h, w), tiles.Floor), "block")
}

func sortPoints(pts []geom.Point) []geom.Point {
	out := slices.Clone(pts)
	slices.SortFunc(out, func(a, b geom.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

func TestPlaceIn(t *testing.T) {
	tree := newMap(10, 10)

	room := block(3, 4)
	id, err := tree.PlaceAt(0, room, geom.Pt(2, 2))
	if err != nil {
		t.Fatalf("PlaceAt() error = %v", err)
	}
	if id != 1 || room.Parent() != 0 || !room.Placed() {
		t.Errorf("placed room has id %d parent %d", id, room.Parent())
	}
	if got := tree.Root().Children(); !slices.Equal(got, []ID{1}) {
		t.Errorf("Children() = %v", got)
	}
	if got := tree.Root().Density(); got != 0.12 {
		t.Errorf("Density() = %v, want 0.12", got)
	}

	tests := []struct {
		name   string
		area   *Area
		origin geom.Point
	}{
		{"overlapping", block(2, 2), geom.Pt(3, 3)},
		{"out of bounds", block(3, 3), geom.Pt(8, 8)},
		{"negative origin", block(1, 1), geom.Pt(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tree.PlaceAt(0, tt.area, tt.origin)
			if !errors.Is(err, errors.ErrCodePlacement) {
				t.Errorf("PlaceAt() error = %v, want PLACEMENT_ERROR", err)
			}
			if tree.Len() != 2 || tt.area.Placed() {
				t.Error("failed placement mutated the tree")
			}
			if got := tree.Root().Density(); got != 0.12 {
				t.Errorf("Density() = %v after failed placement", got)
			}
		})
	}

	if _, err := tree.PlaceIn(0, room); !errors.Is(err, errors.ErrCodePlacement) {
		t.Errorf("re-placing error = %v, want PLACEMENT_ERROR", err)
	}
	if err := room.MoveTo(geom.Pt(0, 0)); err == nil {
		t.Error("MoveTo() on a placed area should fail")
	}
	if _, err := tree.PlaceIn(7, block(1, 1)); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown parent error = %v", err)
	}
}

func TestDensityIdempotent(t *testing.T) {
	tree := newMap(6, 6)
	if _, err := tree.PlaceAt(0, block(2, 3), geom.Pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	root := tree.Root()
	d1, v1 := root.Density(), root.Volume()
	d2, v2 := root.Density(), root.Volume()
	if d1 != d2 || v1 != v2 {
		t.Errorf("Density/Volume changed without mutation: %v/%d vs %v/%d", d1, v1, d2, v2)
	}
	if v1 != 36 {
		t.Errorf("Volume() = %d, want 36", v1)
	}
}

func TestFitIn(t *testing.T) {
	tree := newMap(5, 5)
	root := tree.Root()
	if got := len(root.FitIn(block(2, 2))); got != 16 {
		t.Fatalf("FitIn() on empty map = %d origins, want 16", got)
	}
	if _, err := tree.PlaceAt(0, block(2, 2), geom.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	got := root.FitIn(block(2, 2))
	if len(got) != 12 {
		t.Errorf("FitIn() = %d origins, want 12", len(got))
	}
	for _, o := range got {
		if !root.Tiles().IsPlaceableAt(o, block(2, 2).Occupied()) {
			t.Errorf("FitIn() returned unplaceable origin %v", o)
		}
	}
	if got := root.FitIn(block(6, 1)); len(got) != 0 {
		t.Errorf("FitIn() of oversized shape = %v", got)
	}
}

func TestFitInDirection(t *testing.T) {
	a := New(tiles.NewGrid(geom.Sz(6, 6), tiles.Floor), "area")
	anchor := mask.MustParse(
		"......",
		"..#...",
		"..#...",
		"..#...",
		"......",
		"......",
	)

	got := sortPoints(a.FitInDirection(block(2, 2), anchor, geom.East))
	want := []geom.Point{geom.Pt(0, 2), geom.Pt(1, 2), geom.Pt(2, 2), geom.Pt(3, 2)}
	if !slices.Equal(got, want) {
		t.Errorf("FitInDirection(East) = %v, want %v", got, want)
	}

	par, err := a.FitInDirectionContext(context.Background(), true, block(2, 2), anchor)
	if err != nil {
		t.Fatal(err)
	}
	seq := a.FitInDirection(block(2, 2), anchor)
	if !slices.Equal(par, seq) {
		t.Errorf("parallel enumeration %v differs from sequential %v", par, seq)
	}
}

func TestFitInTouching(t *testing.T) {
	a := New(tiles.NewGrid(geom.Sz(7, 7), tiles.Floor), "area")
	anchor := mask.Full(geom.Sz(3, 2)).Embed(geom.Pt(2, 1), geom.Sz(7, 7))
	shape := block(2, 2)

	for offset, wantX := range map[int]int{0: 3, 1: 4} {
		got := a.FitInTouching(shape, anchor, geom.East, offset)
		if len(got) != 4 {
			t.Errorf("offset %d: %d origins, want 4: %v", offset, len(got), got)
		}
		for _, o := range got {
			if o.X != wantX {
				t.Errorf("offset %d: origin %v, want column %d", offset, o, wantX)
			}
			if anchor.CollidesAt(o, shape.Occupied()) {
				t.Errorf("offset %d: origin %v overlaps the anchor", offset, o)
			}
		}
	}
}

func TestFitInTouchingBorder(t *testing.T) {
	a := New(tiles.NewGrid(geom.Sz(6, 6), tiles.Floor), "room")
	got := sortPoints(a.FitInTouchingBorder(block(2, 2), geom.West, 1))
	want := []geom.Point{geom.Pt(1, 2), geom.Pt(2, 2), geom.Pt(3, 2)}
	if !slices.Equal(got, want) {
		t.Errorf("FitInTouchingBorder(West, 1) = %v, want %v", got, want)
	}
}

func TestFitInCorner(t *testing.T) {
	g := tiles.NewGrid(geom.Sz(6, 6), tiles.Floor)
	g.SetUnplaceable(geom.Point{}, g.InnerBorder(geom.Eight))
	a := New(g, "room")

	tests := []struct {
		d    geom.Direction
		want geom.Point
	}{
		{geom.North, geom.Pt(1, 3)},
		{geom.East, geom.Pt(3, 3)},
		{geom.South, geom.Pt(3, 1)},
		{geom.West, geom.Pt(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			got := a.FitInCorner(block(2, 2), tt.d)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("FitInCorner(%v) = %v, want [%v]", tt.d, got, tt.want)
			}
		})
	}

	all := a.FitInCorner(block(2, 2))
	want := []geom.Point{geom.Pt(1, 3), geom.Pt(3, 3), geom.Pt(3, 1), geom.Pt(1, 1)}
	if !slices.Equal(all, want) {
		t.Errorf("FitInCorner() = %v, want %v", all, want)
	}
}

func TestFitNextTo(t *testing.T) {
	tree := newMap(20, 20)
	n, err := tree.PlaceAt(0, block(4, 4), geom.Pt(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	neighbour, _ := tree.Get(n)
	footprint := neighbour.Occupied().Embed(neighbour.Origin(), geom.Sz(20, 20))
	shape := block(3, 3)

	got, err := tree.FitNextTo(0, shape, n, geom.East)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Errorf("FitNextTo(East) = %d origins, want 6: %v", len(got), got)
	}
	for _, o := range got {
		if o.X != 9 {
			t.Errorf("origin %v is not flush with the east edge", o)
		}
		if footprint.CollidesAt(o, shape.Occupied()) {
			t.Errorf("origin %v overlaps the neighbour", o)
		}
	}

	all, err := tree.FitNextTo(0, shape, n)
	if err != nil {
		t.Fatal(err)
	}
	par, err := tree.FitNextToContext(context.Background(), true, 0, shape, n)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(all, par) {
		t.Error("parallel FitNextTo differs from sequential")
	}

	o, ok := Choose(rand.New(rand.NewPCG(1, 2)), all)
	if !ok {
		t.Fatal("Choose() found no candidate")
	}
	if _, err := tree.PlaceAt(0, shape, o); err != nil {
		t.Errorf("placing a FitNextTo candidate failed: %v", err)
	}
}

func TestFitNextToErrors(t *testing.T) {
	tree := newMap(10, 10)
	room, _ := tree.PlaceAt(0, block(3, 3), geom.Pt(0, 0))
	inner, err := tree.PlaceAt(room, block(1, 1), geom.Pt(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []ID{42, 0, inner} {
		_, err := tree.FitNextTo(0, block(2, 2), id)
		if !errors.Is(err, errors.ErrCodeNeighbourNotFound) {
			t.Errorf("FitNextTo(neighbour=%d) error = %v, want NEIGHBOUR_NOT_FOUND", id, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tree.FitNextToContext(ctx, false, 0, block(2, 2), room); err == nil {
		t.Error("cancelled context should abort enumeration")
	}
}

func TestWalkAndDetach(t *testing.T) {
	tree := newMap(12, 12)
	room, _ := tree.PlaceAt(0, block(4, 4), geom.Pt(5, 5))
	sub, err := tree.PlaceAt(room, block(1, 1), geom.Pt(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	origins := map[ID]geom.Point{}
	depths := map[ID]int{}
	tree.Walk(func(a *Area, origin geom.Point, depth int) bool {
		origins[a.ID()] = origin
		depths[a.ID()] = depth
		return true
	})
	if origins[sub] != geom.Pt(6, 6) || depths[sub] != 2 {
		t.Errorf("sub-area at %v depth %d", origins[sub], depths[sub])
	}
	if got := tree.AbsoluteOrigin(sub); got != geom.Pt(6, 6) {
		t.Errorf("AbsoluteOrigin() = %v", got)
	}

	before := tree.Root().Density()
	if err := tree.Detach(room); err != nil {
		t.Fatal(err)
	}
	visited := 0
	tree.Walk(func(*Area, geom.Point, int) bool { visited++; return true })
	if visited != 1 {
		t.Errorf("Walk() visited %d areas after detach, want 1", visited)
	}
	if tree.Root().Density() != before {
		t.Error("Detach() must not roll back committed tiles")
	}
	if err := tree.Detach(0); err == nil {
		t.Error("Detach(root) should fail")
	}
}
