package geom

import (
	"fmt"
	"strings"

	"github.com/matzehuels/roomgen/pkg/errors"
)

// =============================================================================
// Point
// =============================================================================

// Point is a (row, column) offset on a grid.
type Point struct {
	Y int `json:"y"`
	X int `json:"x"`
}

// Pt is shorthand for Point{Y: y, X: x}.
func Pt(y, x int) Point {
	return Point{Y: y, X: x}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{Y: p.Y + q.Y, X: p.X + q.X}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{Y: p.Y - q.Y, X: p.X - q.X}
}

// Step returns p moved n cells along d.
func (p Point) Step(d Direction, n int) Point {
	delta := d.Delta()
	return Point{Y: p.Y + delta.Y*n, X: p.X + delta.X*n}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Y, p.X)
}

// =============================================================================
// Size
// =============================================================================

// Size is the extent of a grid in rows (H) and columns (W).
type Size struct {
	H int `json:"h"`
	W int `json:"w"`
}

// NewSize validates and returns a Size. Negative dimensions yield an
// INVALID_SIZE error.
func NewSize(h, w int) (Size, error) {
	if h < 0 || w < 0 {
		return Size{}, errors.New(errors.ErrCodeInvalidSize, "size cannot be negative: %dx%d", h, w)
	}
	return Size{H: h, W: w}, nil
}

// Sz is shorthand for Size{H: h, W: w}. It performs no validation.
func Sz(h, w int) Size {
	return Size{H: h, W: w}
}

// Volume returns the number of cells in the box.
func (s Size) Volume() int {
	return s.H * s.W
}

// Empty reports whether the box has no cells.
func (s Size) Empty() bool {
	return s.H <= 0 || s.W <= 0
}

// Contains reports whether p lies inside a box of this size anchored at the origin.
func (s Size) Contains(p Point) bool {
	return p.Y >= 0 && p.X >= 0 && p.Y < s.H && p.X < s.W
}

// ContainsBox reports whether a box of size other placed at origin lies
// entirely inside s.
func (s Size) ContainsBox(origin Point, other Size) bool {
	return origin.Y >= 0 && origin.X >= 0 &&
		origin.Y+other.H <= s.H && origin.X+other.W <= s.W
}

// Index returns the row-major index of p. The caller must ensure Contains(p).
func (s Size) Index(p Point) int {
	return p.Y*s.W + p.X
}

// Point returns the point at row-major index i.
func (s Size) Point(i int) Point {
	return Point{Y: i / s.W, X: i % s.W}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.H, s.W)
}

// =============================================================================
// Direction
// =============================================================================

// Direction is one of the four cardinal directions.
type Direction int

// Cardinal directions in clockwise order.
const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all directions in clockwise order starting at North.
var Directions = []Direction{North, East, South, West}

var deltas = [4]Point{
	North: {Y: -1, X: 0},
	East:  {Y: 0, X: 1},
	South: {Y: 1, X: 0},
	West:  {Y: 0, X: -1},
}

var directionNames = [4]string{"north", "east", "south", "west"}

// Delta returns the unit step for d.
func (d Direction) Delta() Point {
	return deltas[d.normalize()]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d.normalize() + 2) % 4
}

// Clockwise returns the next direction clockwise.
func (d Direction) Clockwise() Direction {
	return (d.normalize() + 1) % 4
}

// CounterClockwise returns the next direction counter-clockwise.
func (d Direction) CounterClockwise() Direction {
	return (d.normalize() + 3) % 4
}

// Horizontal reports whether d is East or West.
func (d Direction) Horizontal() bool {
	return d.normalize()%2 == 1
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) normalize() Direction {
	return ((d % 4) + 4) % 4
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection parses a direction name ("north", "n", "NORTH", ...).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown direction %q", s)
}

// =============================================================================
// Connectivity
// =============================================================================

// Connectivity selects which neighbours count as adjacent.
type Connectivity int

// Supported neighbourhoods.
const (
	Four  Connectivity = 4
	Eight Connectivity = 8
)

var (
	fourKernel = []Point{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

	eightKernel = []Point{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
)

// Kernel returns the neighbour offsets for c. Anything other than Four is
// treated as Eight.
func (c Connectivity) Kernel() []Point {
	if c == Four {
		return fourKernel
	}
	return eightKernel
}
