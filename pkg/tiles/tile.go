package tiles

import "fmt"

// RGB is a 24-bit colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Glyph is the render data of a tile: one character with colours.
type Glyph struct {
	Rune rune `json:"rune"`
	FG   RGB  `json:"fg"`
	BG   RGB  `json:"bg"`
}

// Tile is the payload stored in each grid cell.
type Tile struct {
	Name        string `json:"name"`
	Walkable    bool   `json:"walkable"`
	Transparent bool   `json:"transparent"`
	Glyph       Glyph  `json:"glyph"`
}

var (
	white = RGB{255, 255, 255}
	night = RGB{5, 10, 20}
)

// Presets.
var (
	Void = Tile{
		Name:  "void",
		Glyph: Glyph{Rune: ' ', FG: white, BG: RGB{0, 128, 0}},
	}
	Floor = Tile{
		Name: "floor", Walkable: true, Transparent: true,
		Glyph: Glyph{Rune: '.', FG: white, BG: night},
	}
	Wall = Tile{
		Name:  "wall",
		Glyph: Glyph{Rune: '#', FG: white, BG: night},
	}
	Carpet = Tile{
		Name: "carpet", Walkable: true, Transparent: true,
		Glyph: Glyph{Rune: '~', FG: RGB{210, 105, 30}, BG: night},
	}
	Column = Tile{
		Name:  "column",
		Glyph: Glyph{Rune: 'O', FG: RGB{192, 192, 192}, BG: night},
	}
	Border = Tile{
		Name:  "border",
		Glyph: Glyph{Rune: 'B', FG: RGB{255, 0, 255}, BG: night},
	}
	Door = Tile{
		Name: "door", Walkable: true,
		Glyph: Glyph{Rune: '+', FG: RGB{210, 105, 30}, BG: night},
	}
)

// Presets lists every preset tile keyed by name.
var Presets = map[string]Tile{
	Void.Name:   Void,
	Floor.Name:  Floor,
	Wall.Name:   Wall,
	Carpet.Name: Carpet,
	Column.Name: Column,
	Border.Name: Border,
	Door.Name:   Door,
}
