package tiles

import (
	"testing"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/mask"
)

func TestFillBorder(t *testing.T) {
	g := NewGrid(geom.Sz(4, 5), Floor)
	g.FillBorder(Wall)

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			p := geom.Pt(y, x)
			edge := y == 0 || x == 0 || y == 3 || x == 4
			want := Floor
			if edge {
				want = Wall
			}
			if got := g.At(p); got != want {
				t.Errorf("At(%v) = %s, want %s", p, got.Name, want.Name)
			}
		}
	}
}

func TestVoidOutsideOccupied(t *testing.T) {
	g := NewGrid(geom.Sz(3, 3), Floor)
	g.SubtractAt(geom.Pt(1, 1), mask.Full(geom.Sz(5, 5)))

	for _, p := range []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(1, 2)} {
		if g.Occupied().At(p) {
			t.Errorf("%v still occupied", p)
		}
		if g.At(p) != Void {
			t.Errorf("%v = %s, want void", p, g.At(p).Name)
		}
		if g.Placeable().At(p) {
			t.Errorf("%v still placeable", p)
		}
	}
	if g.Set(geom.Pt(1, 1), Floor) {
		t.Error("Set() wrote to an unoccupied cell")
	}
	if got := g.Volume(); got != 5 {
		t.Errorf("Volume() = %d, want 5", got)
	}
}

func TestPlaceability(t *testing.T) {
	g := NewGrid(geom.Sz(5, 5), Wall)
	block := mask.Full(geom.Sz(2, 2))

	if !g.IsPlaceableAt(geom.Pt(0, 0), block) {
		t.Fatal("fresh grid should accept a block")
	}
	g.SetUnplaceable(geom.Pt(1, 1), block)

	tests := []struct {
		origin geom.Point
		want   bool
	}{
		{geom.Pt(0, 0), false},
		{geom.Pt(3, 3), true},
		{geom.Pt(0, 3), true},
		{geom.Pt(4, 4), false},
		{geom.Pt(-1, 0), false},
	}
	for _, tt := range tests {
		if got := g.IsPlaceableAt(tt.origin, block); got != tt.want {
			t.Errorf("IsPlaceableAt(%v) = %v, want %v", tt.origin, got, tt.want)
		}
	}

	if got := g.CommittedVolume(); got != 4 {
		t.Errorf("CommittedVolume() = %d, want 4", got)
	}
	if !g.IsSubsetAt(geom.Pt(1, 1), block) {
		t.Error("unplaceable cells remain occupied")
	}
}

func TestMerge(t *testing.T) {
	g := NewEmptyGrid(geom.Sz(3, 4))
	carpet := NewGrid(geom.Sz(2, 2), Carpet)
	carpet.SetUnplaceable(geom.Point{}, mask.MustParse("#.", ".."))

	g.Merge(geom.Pt(1, 2), carpet)

	if got := g.Volume(); got != 4 {
		t.Errorf("Volume() = %d, want 4", got)
	}
	if g.At(geom.Pt(2, 3)) != Carpet {
		t.Error("merged payload missing")
	}
	if g.Placeable().At(geom.Pt(1, 2)) {
		t.Error("unplaceable cell became placeable after merge")
	}
	if !g.Placeable().At(geom.Pt(2, 3)) {
		t.Error("placeable cell lost placeability after merge")
	}

	partial := NewGrid(geom.Sz(2, 2), Wall)
	partial.SubtractAt(geom.Point{}, mask.MustParse("#.", ".."))
	g.Merge(geom.Pt(1, 2), partial)
	if g.At(geom.Pt(1, 2)) != Carpet {
		t.Error("cells outside the merged grid's occupied mask must be untouched")
	}
	if g.At(geom.Pt(2, 3)) != Wall {
		t.Error("occupied cells of the merged grid must overwrite")
	}
}

func TestCrop(t *testing.T) {
	g := NewGrid(geom.Sz(4, 4), Floor)
	g.FillBorder(Wall)

	c := g.Crop(geom.Pt(2, 2), geom.Sz(3, 3))
	if got := c.Size(); got != geom.Sz(3, 3) {
		t.Fatalf("Size() = %v", got)
	}
	if c.At(geom.Pt(0, 0)) != Floor || c.At(geom.Pt(1, 1)) != Wall {
		t.Error("cropped payload wrong")
	}
	if c.Occupied().At(geom.Pt(2, 2)) {
		t.Error("window cell outside the source should be unoccupied")
	}
}

func TestGridAlgebra(t *testing.T) {
	a := NewGrid(geom.Sz(2, 2), Floor)
	b := FromMask(mask.MustParse("#.", ".."), Wall)

	u, err := a.Union(b)
	if err != nil {
		t.Fatal(err)
	}
	if u.At(geom.Pt(0, 0)) != Wall || u.At(geom.Pt(1, 1)) != Floor {
		t.Error("Union() payload wrong")
	}

	d, _ := a.Subtract(b)
	if d.Volume() != 3 || d.At(geom.Pt(0, 0)) != Void {
		t.Error("Subtract() wrong")
	}

	i, _ := a.Intersect(b)
	if i.Volume() != 1 || i.At(geom.Pt(0, 0)) != Floor {
		t.Error("Intersect() wrong")
	}

	if got := b.Complement().Volume(); got != 3 {
		t.Errorf("Complement().Volume() = %d", got)
	}

	if _, err := a.Union(NewGrid(geom.Sz(3, 3), Floor)); !errors.Is(err, errors.ErrCodeSizeMismatch) {
		t.Errorf("Union() error = %v, want SIZE_MISMATCH", err)
	}
}

func TestCornersUsePlaceable(t *testing.T) {
	g := NewGrid(geom.Sz(5, 5), Floor)
	g.SetUnplaceable(geom.Point{}, g.InnerBorder(geom.Eight))

	got := g.Corners(geom.North).Points()
	if len(got) != 1 || got[0] != geom.Pt(1, 3) {
		t.Errorf("Corners(North) = %v, want [(1,3)]", got)
	}
}

func TestRGBHex(t *testing.T) {
	if got := Carpet.Glyph.FG.Hex(); got != "#d2691e" {
		t.Errorf("Hex() = %q", got)
	}
}
