package mask

import (
	"strings"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
)

// Mask is a binary grid. The zero value is a 0×0 mask.
type Mask struct {
	size  geom.Size
	cells []bool
}

// New returns an empty mask of the given size.
func New(size geom.Size) *Mask {
	size.H, size.W = max(0, size.H), max(0, size.W)
	return &Mask{size: size, cells: make([]bool, size.Volume())}
}

// Full returns a mask of the given size with every cell set.
func Full(size geom.Size) *Mask {
	m := New(size)
	for i := range m.cells {
		m.cells[i] = true
	}
	return m
}

// FromPoints returns a mask of the given size with the listed cells set.
// Points outside the box are ignored.
func FromPoints(size geom.Size, pts []geom.Point) *Mask {
	m := New(size)
	for _, p := range pts {
		m.Set(p, true)
	}
	return m
}

// Parse builds a mask from rows of ASCII art. '#', 'x' and '1' mark set
// cells; '.', ' ' and '0' mark empty ones. All rows must have equal length.
func Parse(rows ...string) (*Mask, error) {
	if len(rows) == 0 {
		return &Mask{}, nil
	}
	w := len(rows[0])
	m := New(geom.Sz(len(rows), w))
	for y, row := range rows {
		if len(row) != w {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d has width %d, want %d", y, len(row), w)
		}
		for x, r := range row {
			switch r {
			case '#', 'x', '1':
				m.cells[y*w+x] = true
			case '.', ' ', '0':
			default:
				return nil, errors.New(errors.ErrCodeInvalidInput, "unexpected character %q at (%d,%d)", r, y, x)
			}
		}
	}
	return m, nil
}

// MustParse is like [Parse] but panics on malformed input.
// Intended for tests and package-level fixtures.
func MustParse(rows ...string) *Mask {
	m, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return m
}

// String renders the mask as rows of '#' and '.'.
func (m *Mask) String() string {
	var b strings.Builder
	for y := 0; y < m.size.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < m.size.W; x++ {
			if m.cells[y*m.size.W+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// =============================================================================
// Accessors
// =============================================================================

// Size returns the mask extent.
func (m *Mask) Size() geom.Size {
	return m.size
}

// At reports whether p is set. Points outside the mask are unset.
func (m *Mask) At(p geom.Point) bool {
	if !m.size.Contains(p) {
		return false
	}
	return m.cells[m.size.Index(p)]
}

// Set assigns v to p. Points outside the mask are ignored.
func (m *Mask) Set(p geom.Point, v bool) {
	if !m.size.Contains(p) {
		return
	}
	m.cells[m.size.Index(p)] = v
}

// ContainsPoint reports whether p lies inside the mask and is set.
func (m *Mask) ContainsPoint(p geom.Point) bool {
	return m.At(p)
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Empty reports whether no cell is set.
func (m *Mask) Empty() bool {
	for _, c := range m.cells {
		if c {
			return false
		}
	}
	return true
}

// Points returns the set cells in row-major order.
func (m *Mask) Points() []geom.Point {
	var pts []geom.Point
	for i, c := range m.cells {
		if c {
			pts = append(pts, m.size.Point(i))
		}
	}
	return pts
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{size: m.size}
	if m.cells != nil {
		c.cells = make([]bool, len(m.cells))
		copy(c.cells, m.cells)
	}
	return c
}

// Equal reports whether both masks have the same size and cells.
func (m *Mask) Equal(o *Mask) bool {
	if m.size != o.size {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// SameSize reports whether both masks can be combined.
func (m *Mask) SameSize(o *Mask) bool {
	return m.size == o.size
}

// =============================================================================
// Algebra
// =============================================================================

func (m *Mask) combine(o *Mask, op string, f func(a, b bool) bool) (*Mask, error) {
	if !m.SameSize(o) {
		return nil, errors.New(errors.ErrCodeSizeMismatch, "%s of %v and %v masks", op, m.size, o.size)
	}
	r := New(m.size)
	for i := range m.cells {
		r.cells[i] = f(m.cells[i], o.cells[i])
	}
	return r, nil
}

// Union returns m | o.
func (m *Mask) Union(o *Mask) (*Mask, error) {
	return m.combine(o, "union", func(a, b bool) bool { return a || b })
}

// Intersect returns m & o.
func (m *Mask) Intersect(o *Mask) (*Mask, error) {
	return m.combine(o, "intersection", func(a, b bool) bool { return a && b })
}

// Subtract returns m & ^o.
func (m *Mask) Subtract(o *Mask) (*Mask, error) {
	return m.combine(o, "subtraction", func(a, b bool) bool { return a && !b })
}

// Complement returns ^m.
func (m *Mask) Complement() *Mask {
	r := New(m.size)
	for i, c := range m.cells {
		r.cells[i] = !c
	}
	return r
}

// Translate returns m shifted n cells along d. Cells pushed outside the grid
// are dropped. n == 0 returns a copy.
func (m *Mask) Translate(d geom.Direction, n int) *Mask {
	if n == 0 {
		return m.Clone()
	}
	r := New(m.size)
	for i, c := range m.cells {
		if c {
			r.Set(m.size.Point(i).Step(d, n), true)
		}
	}
	return r
}

// Frontier returns the cells with no set neighbour one step along d.
func (m *Mask) Frontier(d geom.Direction) *Mask {
	// Sizes always match, so the error is impossible.
	f, _ := m.Subtract(m.Translate(d.Opposite(), 1))
	return f
}

// InnerBorder returns the set cells adjacent, under c, to an unset cell or to
// the grid boundary.
func (m *Mask) InnerBorder(c geom.Connectivity) *Mask {
	kernel := c.Kernel()
	r := New(m.size)
	for i, set := range m.cells {
		if !set {
			continue
		}
		p := m.size.Point(i)
		for _, k := range kernel {
			if !m.At(p.Add(k)) {
				r.cells[i] = true
				break
			}
		}
	}
	return r
}

// =============================================================================
// Positional operations
// =============================================================================

// Clipped returns the part of m that lands inside a box of size target when m
// is placed at origin, together with the origin of that part in target
// coordinates. When nothing overlaps it returns a 0×0 mask at (0,0).
func (m *Mask) Clipped(origin geom.Point, target geom.Size) (*Mask, geom.Point) {
	yl, yr := max(0, -origin.Y), min(target.H-origin.Y, m.size.H)
	xl, xr := max(0, -origin.X), min(target.W-origin.X, m.size.W)
	if yl >= yr || xl >= xr {
		return &Mask{}, geom.Point{}
	}
	r := New(geom.Sz(yr-yl, xr-xl))
	for y := yl; y < yr; y++ {
		copy(r.cells[(y-yl)*r.size.W:(y-yl+1)*r.size.W], m.cells[y*m.size.W+xl:y*m.size.W+xr])
	}
	return r, geom.Pt(max(0, origin.Y), max(0, origin.X))
}

// Crop returns the size-sized window of m starting at origin. Cells of the
// window outside m are unset.
func (m *Mask) Crop(origin geom.Point, size geom.Size) *Mask {
	r := New(size)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if m.At(origin.Add(geom.Pt(y, x))) {
				r.cells[y*size.W+x] = true
			}
		}
	}
	return r
}

// Embed returns a mask of the given size holding m placed at origin.
func (m *Mask) Embed(origin geom.Point, size geom.Size) *Mask {
	r := New(size)
	r.MergeAt(origin, m)
	return r
}

// BoxContains reports whether a box of size other placed at origin lies
// entirely inside m's bounding box.
func (m *Mask) BoxContains(origin geom.Point, other geom.Size) bool {
	return m.size.ContainsBox(origin, other)
}

// IsSubsetAt reports whether other placed at origin fits inside m's box and
// every set cell of other lands on a set cell of m.
func (m *Mask) IsSubsetAt(origin geom.Point, other *Mask) bool {
	if !m.BoxContains(origin, other.size) {
		return false
	}
	for i, c := range other.cells {
		if c && !m.cells[m.size.Index(other.size.Point(i).Add(origin))] {
			return false
		}
	}
	return true
}

// CollidesAt reports whether any set cell of other placed at origin lands on a
// set cell of m. Cells falling outside m never collide.
func (m *Mask) CollidesAt(origin geom.Point, other *Mask) bool {
	for i, c := range other.cells {
		if c && m.At(other.size.Point(i).Add(origin)) {
			return true
		}
	}
	return false
}

// MergeAt sets every cell covered by a set cell of other placed at origin.
func (m *Mask) MergeAt(origin geom.Point, other *Mask) {
	m.applyAt(origin, other, func(cur, o bool) bool { return cur || o })
}

// SubtractAt clears every cell covered by a set cell of other placed at origin.
func (m *Mask) SubtractAt(origin geom.Point, other *Mask) {
	m.applyAt(origin, other, func(cur, o bool) bool { return cur && !o })
}

// IntersectAt keeps only the cells covered by a set cell of other placed at
// origin. Everything outside other's box is cleared.
func (m *Mask) IntersectAt(origin geom.Point, other *Mask) {
	r := New(m.size)
	for i, c := range other.cells {
		p := other.size.Point(i).Add(origin)
		if c && m.At(p) {
			r.cells[m.size.Index(p)] = true
		}
	}
	m.cells = r.cells
}

func (m *Mask) applyAt(origin geom.Point, other *Mask, f func(cur, o bool) bool) {
	for i, c := range other.cells {
		p := other.size.Point(i).Add(origin)
		if !m.size.Contains(p) {
			continue
		}
		j := m.size.Index(p)
		m.cells[j] = f(m.cells[j], c)
	}
}
