package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// Rows returns one string of glyph runes per canvas row.
func Rows(c *Canvas) []string {
	rows := make([]string, c.size.H)
	var b strings.Builder
	for y := range rows {
		b.Reset()
		for x := 0; x < c.size.W; x++ {
			b.WriteRune(c.At(geom.Pt(y, x)).Glyph.Rune)
		}
		rows[y] = b.String()
	}
	return rows
}

// Text renders c as plain glyphs, rows separated by newlines.
func Text(c *Canvas) string {
	return strings.Join(Rows(c), "\n")
}

// ANSIOption configures [ANSI].
type ANSIOption func(*ansiRenderer)

type ansiRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[tiles.Glyph]lipgloss.Style
}

// WithRenderer renders through r instead of the default lipgloss renderer,
// which picks the colour profile of stdout.
func WithRenderer(r *lipgloss.Renderer) ANSIOption {
	return func(a *ansiRenderer) { a.renderer = r }
}

// ANSI renders c with each glyph's foreground and background colours. Runs
// of identical glyphs share one escape sequence.
func ANSI(c *Canvas, opts ...ANSIOption) string {
	a := &ansiRenderer{
		renderer: lipgloss.DefaultRenderer(),
		styles:   make(map[tiles.Glyph]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(a)
	}

	var b strings.Builder
	for y := 0; y < c.size.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.size.W; {
			g := c.At(geom.Pt(y, x)).Glyph
			end := x + 1
			for end < c.size.W && c.At(geom.Pt(y, end)).Glyph == g {
				end++
			}
			b.WriteString(a.style(g).Render(strings.Repeat(string(g.Rune), end-x)))
			x = end
		}
	}
	return b.String()
}

func (a *ansiRenderer) style(g tiles.Glyph) lipgloss.Style {
	s, ok := a.styles[g]
	if !ok {
		s = a.renderer.NewStyle().
			Foreground(lipgloss.Color(g.FG.Hex())).
			Background(lipgloss.Color(g.BG.Hex()))
		a.styles[g] = s
	}
	return s
}
