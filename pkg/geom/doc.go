// Package geom provides the integer grid primitives shared by every roomgen
// package: [Point], [Size], [Direction] and [Connectivity].
//
// # Coordinates
//
// All coordinates are (row, column) pairs written as Point{Y, X}. Y grows
// southwards and X grows eastwards, so [North] has delta (-1, 0) and [East]
// has delta (0, 1). Grids are stored row-major.
//
// # Directions
//
// Directions are numbered clockwise starting at North:
//
//	North(0) → East(1) → South(2) → West(3)
//
// [Direction.Opposite] adds two modulo four and [Direction.Clockwise] adds one.
// A direction together with its clockwise neighbour names a corner: North
// names the north-east corner, East the south-east corner, and so on.
package geom
