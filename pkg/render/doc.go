// Package render composites an area tree into a glyph canvas and writes it
// out in several formats.
//
// # Compositing
//
// [Composite] walks the tree depth-first. Each area paints its occupied cells
// at its absolute origin, so children overwrite their parents and later
// siblings overwrite earlier ones. Cells no area occupies keep the
// [tiles.Void] glyph, so every canvas cell is defined.
//
//	c := render.Composite(result.Tree)
//	fmt.Println(render.Text(c))
//
// # Sinks
//
//   - [Text]: one rune per cell, one line per row
//   - [ANSI]: the same with 24-bit colours via lipgloss
//   - [SVG]: a coloured cell grid with optional glyphs and room outlines
//   - [WriteJSON]: a [Sheet] holding glyph rows plus the tile palette
//
// A [Sheet] round-trips: [Sheet.Canvas] rebuilds the canvas it came from.
package render
