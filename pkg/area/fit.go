package area

import (
	"context"

	"github.com/zyedidia/generic/mapset"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/mask"
)

// =============================================================================
// Candidate enumeration
// =============================================================================

// candidates accumulates unique origins in first-seen order.
type candidates struct {
	seen mapset.Set[geom.Point]
	pts  []geom.Point
}

func newCandidates() *candidates {
	return &candidates{seen: mapset.New[geom.Point]()}
}

func (c *candidates) add(p geom.Point) {
	if c.seen.Has(p) {
		return
	}
	c.seen.Put(p)
	c.pts = append(c.pts, p)
}

// fitAlong aligns every cell of shape's back edge (its frontier facing
// d.Opposite()) with every anchor cell and keeps the placeable origins.
func (a *Area) fitAlong(shape *mask.Mask, anchor []geom.Point, d geom.Direction, reject func(geom.Point) bool) []geom.Point {
	back := shape.Frontier(d.Opposite()).Points()
	out := newCandidates()
	for _, i := range anchor {
		for _, j := range back {
			o := i.Sub(j)
			if !a.tiles.IsPlaceableAt(o, shape) {
				continue
			}
			if reject != nil && reject(o) {
				continue
			}
			out.add(o)
		}
	}
	return out.pts
}

// collect runs fn for every direction and concatenates the results in
// direction order, dropping duplicates. With parallel set each direction runs
// in its own goroutine.
func collect(ctx context.Context, parallel bool, dirs []geom.Direction, fn func(geom.Direction) []geom.Point) ([]geom.Point, error) {
	if len(dirs) == 0 {
		dirs = geom.Directions
	}
	results := make([][]geom.Point, len(dirs))

	if parallel && len(dirs) > 1 {
		g, ctx := errgroup.WithContext(ctx)
		for i, d := range dirs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = fn(d)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, d := range dirs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = fn(d)
		}
	}

	out := newCandidates()
	for _, r := range results {
		for _, p := range r {
			out.add(p)
		}
	}
	return out.pts, nil
}

// =============================================================================
// Fitting
// =============================================================================

// FitIn returns every origin at which shape lies on placeable cells, in
// row-major order.
func (a *Area) FitIn(shape Shape) []geom.Point {
	m := shape.Occupied()
	size, box := a.Size(), m.Size()
	var out []geom.Point
	for y := 0; y+box.H <= size.H; y++ {
		for x := 0; x+box.W <= size.W; x++ {
			o := geom.Pt(y, x)
			if a.tiles.IsPlaceableAt(o, m) {
				out = append(out, o)
			}
		}
	}
	return out
}

// FitInDirection returns the origins at which shape's back edge lands on the
// anchor's leading edge for each direction in dirs (all four when empty).
// anchor is expressed in a's coordinates.
func (a *Area) FitInDirection(shape Shape, anchor *mask.Mask, dirs ...geom.Direction) []geom.Point {
	pts, _ := a.FitInDirectionContext(context.Background(), false, shape, anchor, dirs...)
	return pts
}

// FitInDirectionContext is [Area.FitInDirection] with cancellation and
// optional per-direction parallelism.
func (a *Area) FitInDirectionContext(ctx context.Context, parallel bool, shape Shape, anchor *mask.Mask, dirs ...geom.Direction) ([]geom.Point, error) {
	m := shape.Occupied()
	return collect(ctx, parallel, dirs, func(d geom.Direction) []geom.Point {
		return a.fitAlong(m, anchor.Frontier(d).Points(), d, nil)
	})
}

// FitInTouching returns the origins at which shape sits offset cells beyond
// the anchor's leading edge along d, touching that band without overlapping
// the anchor itself.
func (a *Area) FitInTouching(shape Shape, anchor *mask.Mask, d geom.Direction, offset int) []geom.Point {
	m := shape.Occupied()
	front := anchor.Frontier(d)
	band, _ := front.Translate(d, offset+1).Subtract(front.Translate(d, offset))
	return a.fitAlong(m, band.Points(), d, func(o geom.Point) bool {
		return anchor.CollidesAt(o, m)
	})
}

// FitInTouchingBorder is [Area.FitInTouching] with a's own 8-connected inner
// border as the anchor.
func (a *Area) FitInTouchingBorder(shape Shape, d geom.Direction, offset int) []geom.Point {
	return a.FitInTouching(shape, a.tiles.InnerBorder(geom.Eight), d, offset)
}

// FitInCorner returns the origins that put shape snug against the corner
// named by each direction in dirs (all four when empty). Corners are taken
// from the placeable region, so walls already marked unplaceable are
// respected.
func (a *Area) FitInCorner(shape Shape, dirs ...geom.Direction) []geom.Point {
	m := shape.Occupied()
	pts, _ := collect(context.Background(), false, dirs, func(d geom.Direction) []geom.Point {
		return a.fitAlong(m, a.tiles.Corners(d).Points(), d.Opposite(), nil)
	})
	return pts
}

// =============================================================================
// Neighbour fitting
// =============================================================================

// FitNextTo returns the origins, in parent coordinates, at which shape would
// sit directly beside the neighbour's exposed edge in each of dirs (all four
// when empty). The neighbour must be a child of parent. Results never overlap
// the neighbour.
func (t *Tree) FitNextTo(parent ID, shape Shape, neighbour ID, dirs ...geom.Direction) ([]geom.Point, error) {
	return t.FitNextToContext(context.Background(), false, parent, shape, neighbour, dirs...)
}

// FitNextToContext is [Tree.FitNextTo] with cancellation and optional
// per-direction parallelism.
func (t *Tree) FitNextToContext(ctx context.Context, parallel bool, parent ID, shape Shape, neighbour ID, dirs ...geom.Direction) ([]geom.Point, error) {
	p, ok := t.Get(parent)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "parent area %d not found", parent)
	}
	if !t.IsChild(parent, neighbour) {
		return nil, errors.New(errors.ErrCodeNeighbourNotFound, "area %d is not a child of area %d", neighbour, parent)
	}
	n := t.areas[neighbour]
	m := shape.Occupied()

	return collect(ctx, parallel, dirs, func(d geom.Direction) []geom.Point {
		return p.fitAlong(m, exposedBand(n, p.Size(), d), d, nil)
	})
}

// exposedBand returns, in parent coordinates, the cells one step beyond n's
// leading edge along d. It reads n's local grid directly so the parent never
// has to be copied.
func exposedBand(n *Area, bounds geom.Size, d geom.Direction) []geom.Point {
	occ := n.Occupied()
	var band []geom.Point
	for _, p := range occ.Frontier(d).Points() {
		abs := p.Step(d, 1).Add(n.origin)
		if bounds.Contains(abs) {
			band = append(band, abs)
		}
	}
	return band
}
