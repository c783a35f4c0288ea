package mask

import (
	"testing"

	"github.com/matzehuels/roomgen/pkg/geom"
)

func TestCornersFullSquare(t *testing.T) {
	full := Full(geom.Sz(5, 5))

	tests := []struct {
		d    geom.Direction
		want geom.Point
	}{
		{geom.North, geom.Pt(0, 4)},
		{geom.East, geom.Pt(4, 4)},
		{geom.South, geom.Pt(4, 0)},
		{geom.West, geom.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			got := full.Corners(tt.d).Points()
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Corners(%v) = %v, want [%v]", tt.d, got, tt.want)
			}
		})
	}
}

func TestCornersInterior(t *testing.T) {
	// Only the inner region is set, so corners are detected against
	// background rather than the grid edge.
	m := MustParse(
		".....",
		".###.",
		".###.",
		".....",
	)
	if got := m.Corners(geom.North).Points(); len(got) != 1 || got[0] != geom.Pt(1, 3) {
		t.Errorf("Corners(North) = %v", got)
	}
	if got := m.Corners(geom.South).Points(); len(got) != 1 || got[0] != geom.Pt(2, 1) {
		t.Errorf("Corners(South) = %v", got)
	}

	l := MustParse(
		"##..",
		"####",
	)
	// (0,1) and (1,3) both face north-east.
	if got := l.Corners(geom.North).Points(); len(got) != 2 {
		t.Errorf("Corners(North) of L = %v, want two corners", got)
	}
}

func TestHitOrMissRejectsBadOrigin(t *testing.T) {
	se := StructuringElement{Pattern: MustParse("#"), Origin: geom.Pt(1, 0)}
	if _, err := HitOrMiss(Full(geom.Sz(2, 2)), se); err == nil {
		t.Error("HitOrMiss() should reject an origin outside the pattern")
	}
}
