// Package room builds room footprints.
//
// A room is described by a [Variant]:
//
//   - Rectangular: floor filled, 8-connected inner border walled.
//   - LShaped: a rectangle with a notch cut from one corner. The notch spans
//     roughly 40% to 67% of each side and is positioned with
//     [area.Area.FitInCorner] before being subtracted.
//   - Furnished: an LShaped room with a carpet in a random corner and two
//     rows of up to three 2×2 columns, pushed west and north to one cell
//     short of the east and south walls.
//
// Every variant marks its wall cells unplaceable, so later sub-placements
// never overwrite a wall.
//
// [Footprint] produces the tile grid and [New] wraps it in an unplaced
// [area.Area]. Both take an explicit *rand.Rand: identical seeds give
// identical rooms.
//
// [FindEntrances] lists the wall pairs through which two adjacent rooms could
// be connected and [CarveEntrance] turns one pair into doors.
package room
