// Package mask implements binary masks: fixed-size boolean grids that record
// which cells belong to a shape.
//
// # Algebra
//
// [Mask.Union], [Mask.Intersect] and [Mask.Subtract] combine two masks of the
// same size and return a new mask. Combining masks of different sizes fails
// with a SIZE_MISMATCH error from [github.com/matzehuels/roomgen/pkg/errors].
// [Mask.Complement] flips every cell.
//
// The positional variants [Mask.MergeAt], [Mask.SubtractAt] and
// [Mask.IntersectAt] apply a smaller mask at an origin in place, clipping
// whatever falls outside the receiver.
//
// # Derived shapes
//
//   - [Mask.Translate] shifts every cell, dropping cells pushed off the grid.
//   - [Mask.Frontier] keeps the cells with no occupied neighbour one step
//     along a direction: the leading edge facing that direction.
//   - [Mask.InnerBorder] keeps the cells that touch background or the grid
//     boundary under 4- or 8-connectivity.
//   - [Mask.Corners] runs a hit-or-miss transform with one of four 2×2
//     structuring elements to find interior corners (see [HitOrMiss]).
//
// # Predicates
//
// Placement search relies on [Mask.IsSubsetAt], [Mask.CollidesAt],
// [Mask.BoxContains] and [Mask.ContainsPoint]. All take an origin expressed in
// the receiver's coordinates. Origins may be negative.
//
// # Fixtures
//
// [Parse] builds masks from ASCII art, which keeps tests readable:
//
//	m := mask.MustParse(
//	    "###.",
//	    "#...",
//	)
package mask
