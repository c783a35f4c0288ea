// Package tiles provides typed tile grids layered over binary masks.
//
// A [Grid] pairs a per-cell [Tile] payload with two masks:
//
//   - occupied: which cells belong to the grid's shape.
//   - placeable: which cells may still receive a new placement.
//
// Unoccupied cells always hold [Void]. The placeable mask starts fully set and
// is only ever cleared, so once content has been committed over a cell it can
// never be offered for placement again.
//
// [Grid.IsPlaceableAt] is the authoritative feasibility check before a
// commit: it is [mask.Mask.IsSubsetAt] evaluated against the placeable mask.
package tiles
