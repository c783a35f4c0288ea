// Package dungeon is the portable snapshot of a generated map.
//
// A [Dungeon] records the inputs that produced it (seed, size, target
// density), the rooms and their adjacency, and the composited tiles as a
// [render.Sheet]. Snapshots are what the CLI writes to disk, what the HTTP
// API returns, and what the store persists. [Dungeon.Canvas] rebuilds the
// tile canvas, so a snapshot can be rendered again in any format without
// regenerating.
//
// The JSON form looks like:
//
//	{
//	  "id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
//	  "seed": 42,
//	  "size": {"h": 70, "w": 70},
//	  "target": 0.5,
//	  "density": 0.52,
//	  "rooms": [{"id": 1, "kind": "room", "origin": {"y": 3, "x": 9}, "size": {"h": 8, "w": 6}}],
//	  "edges": [{"a": 1, "b": 2, "direction": "east", "entrance": {...}}],
//	  "tiles": {"size": {...}, "rows": ["####..."], "palette": [...]}
//	}
package dungeon
