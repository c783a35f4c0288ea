package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// Sheet is the serialized form of a canvas: glyph rows plus the tiles they
// refer to. Each palette rune must be unique.
type Sheet struct {
	Size    geom.Size    `json:"size" bson:"size"`
	Rows    []string     `json:"rows" bson:"rows"`
	Palette []tiles.Tile `json:"palette" bson:"palette"`
}

// NewSheet captures c.
func NewSheet(c *Canvas) Sheet {
	return Sheet{Size: c.Size(), Rows: Rows(c), Palette: c.Palette()}
}

// Canvas rebuilds the canvas. Rows must match the declared size and use only
// palette runes.
func (s Sheet) Canvas() (*Canvas, error) {
	if s.Size.H < 0 || s.Size.W < 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize, "sheet size cannot be negative: %s", s.Size)
	}
	if len(s.Rows) != s.Size.H {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sheet has %d rows, want %d", len(s.Rows), s.Size.H)
	}
	byRune := make(map[rune]tiles.Tile, len(s.Palette))
	for _, t := range s.Palette {
		if _, dup := byRune[t.Glyph.Rune]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "palette rune %q used twice", t.Glyph.Rune)
		}
		byRune[t.Glyph.Rune] = t
	}

	c := NewCanvas(s.Size)
	for y, row := range s.Rows {
		runes := []rune(row)
		if len(runes) != s.Size.W {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sheet row %d has %d cells, want %d", y, len(runes), s.Size.W)
		}
		for x, r := range runes {
			t, ok := byRune[r]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "sheet row %d: rune %q missing from palette", y, r)
			}
			c.Set(geom.Pt(y, x), t)
		}
	}
	return c, nil
}

// WriteJSON encodes c as an indented [Sheet].
func WriteJSON(w io.Writer, c *Canvas) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSheet(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a [Sheet] from r and rebuilds its canvas.
func ReadJSON(r io.Reader) (*Canvas, error) {
	var s Sheet
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode sheet")
	}
	return s.Canvas()
}
