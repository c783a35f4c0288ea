// Package pkg provides the core libraries for roomgen procedural dungeons.
//
// # Overview
//
// Roomgen grows a dungeon map one room at a time. It seeds the map with a
// single room, then repeatedly picks a placed room, builds a new room
// footprint and fits it flush against a free wall of the chosen room. Growth
// stops when the rooms cover a target fraction of the map or no wall has
// room left. The pkg directory is organized into three areas:
//
//  1. Geometry - grid primitives, binary masks and typed tile grids
//  2. Generation - room footprints, the placement tree and the generator
//  3. Delivery - snapshots, rendering, caching, storage and the pipeline
//
// # Architecture
//
// The typical data flow through roomgen:
//
//	generator.Options (seed, size, density)
//	         ↓
//	    [generator] package (state machine over an [area] tree)
//	         ↓
//	    [dungeon] package (portable snapshot + room graph)
//	         ↓
//	    [render] package (canvas → text, ANSI, SVG, JSON)
//
// # Quick Start
//
//	res, err := generator.Generate(ctx, generator.DefaultOptions(42))
//	if err != nil {
//	    return err
//	}
//	d := dungeon.FromResult(res)
//	c, _ := d.Canvas()
//	fmt.Print(render.Text(c))
//
// # Main Packages
//
// ## Geometry
//
// [geom] - Points, sizes, the four placement directions and 4/8-connectivity.
//
// [mask] - Fixed-size boolean grids with union, intersection, shifting,
// border extraction and structuring-element erosion.
//
// [tiles] - Tile payloads layered over occupied and committed masks.
//
// ## Generation
//
// [room] - Rectangular, L-shaped and furnished room footprints.
//
// [area] - The tree of placed areas and the fitting search that finds legal
// positions next to a neighbour.
//
// [roomgraph] - Adjacency between placed rooms and reachability checks.
//
// [generator] - The placement state machine, retries and statistics.
//
// ## Delivery
//
// [dungeon] - JSON snapshots of a finished map.
//
// [render] - Canvas compositing and the text, ANSI and SVG writers.
//
// [pipeline] - Generate → render with caching, shared by the CLI and the
// HTTP API.
//
// [cache] - File, Redis and null caches for dungeons and artifacts.
//
// [store] - File, memory and MongoDB stores for saved dungeons.
//
// [errors] - Structured error codes.
//
// [observability] - Hooks for generation and request metrics.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/generator/...       # Specific package
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/geom
// [mask]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/mask
// [tiles]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/tiles
// [room]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/room
// [area]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/area
// [roomgraph]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/roomgraph
// [generator]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/generator
// [dungeon]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/dungeon
// [render]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/roomgen/pkg/observability
package pkg
