package room

import (
	"math/rand/v2"

	"github.com/matzehuels/roomgen/pkg/geom"
)

// DimensionRange is an inclusive range of sizes.
type DimensionRange struct {
	Min geom.Size `json:"min"`
	Max geom.Size `json:"max"`
}

// FromSize scales size by the factors lo and hi.
func FromSize(size geom.Size, lo, hi float64) DimensionRange {
	return DimensionRange{
		Min: geom.Sz(int(float64(size.H)*lo), int(float64(size.W)*lo)),
		Max: geom.Sz(int(float64(size.H)*hi), int(float64(size.W)*hi)),
	}
}

// Clamp limits both bounds to [lo, hi] on each side.
func (r DimensionRange) Clamp(lo, hi geom.Size) DimensionRange {
	c := func(v, l, h int) int { return min(max(v, l), h) }
	return DimensionRange{
		Min: geom.Sz(c(r.Min.H, lo.H, hi.H), c(r.Min.W, lo.W, hi.W)),
		Max: geom.Sz(c(r.Max.H, lo.H, hi.H), c(r.Max.W, lo.W, hi.W)),
	}
}

// Sample draws each side uniformly from [Min, Max]. A side whose maximum does
// not exceed its minimum is fixed at the minimum.
func (r DimensionRange) Sample(rng *rand.Rand) geom.Size {
	return geom.Sz(between(rng, r.Min.H, r.Max.H), between(rng, r.Min.W, r.Max.W))
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
