// Package area implements the tree of placed areas and the fitting search
// used to find legal placements.
//
// # Tree
//
// A [Tree] is an arena: it owns every placed [Area] and hands out [ID] values.
// Each area records its parent as an ID, never as a pointer, so the tree has
// no reference cycles. Children are kept in placement order. The root has ID
// 0 and origin (0,0); every other origin is relative to the parent.
//
// [Tree.PlaceIn] is the only way to commit an area. It checks
// [tiles.Grid.IsPlaceableAt] against the parent first and fails with a
// PLACEMENT_ERROR without mutating anything when the check fails. On success
// the child's footprint is cleared from the parent's placeable mask.
//
// # Fitting
//
// Fitting operations never mutate. They return every origin at which a shape
// could be committed, in a deterministic order:
//
//   - [Area.FitIn]: anywhere inside the placeable region.
//   - [Area.FitInDirection]: aligned against an anchor's leading edge.
//   - [Area.FitInTouching]: adjacent to an anchor without overlapping it.
//   - [Area.FitInTouchingBorder]: adjacent to the area's own inner border.
//   - [Area.FitInCorner]: snug in an interior corner.
//   - [Tree.FitNextTo]: adjacent to a sibling's exposed edge.
//
// An empty result means "no valid placement". It is not an error.
//
// The *Context variants enumerate each direction in its own goroutine. Results
// are concatenated in direction order, so they match the sequential variants.
package area
